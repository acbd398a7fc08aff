package user

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// VehicleType is the means of transport of a delivery partner.
type VehicleType int

const (
	VehicleUnknown VehicleType = iota
	VehicleBicycle
	VehicleMotorcycle
	VehicleScooter
	VehicleCar
)

var vehicleNames = map[VehicleType]string{
	VehicleBicycle:    "bicycle",
	VehicleMotorcycle: "motorcycle",
	VehicleScooter:    "scooter",
	VehicleCar:        "car",
}

func (v VehicleType) String() string {
	if name, ok := vehicleNames[v]; ok {
		return name
	}
	return "unknown"
}

func (v VehicleType) Validate() error {
	if _, ok := vehicleNames[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

func ParseVehicleType(s string) (VehicleType, error) {
	for v, name := range vehicleNames {
		if name == s {
			return v, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a valid vehicle type", s))
}
