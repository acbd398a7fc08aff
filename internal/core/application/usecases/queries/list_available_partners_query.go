package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListAvailablePartnersQueryIsNotConstructed = errors.New(
	"ListAvailablePartnersQuery must be created via NewListAvailablePartnersQuery constructor",
)

// ListAvailablePartnersQuery lists the partners a manager can assign, best rated first.
type ListAvailablePartnersQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewListAvailablePartnersQuery(actor kernel.Actor) (ListAvailablePartnersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListAvailablePartnersQuery{}, err
	}
	return ListAvailablePartnersQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailablePartnersQueryIsNotConstructed)
}

type AvailablePartner struct {
	ID                  kernel.UUID `json:"id"`
	Name                string      `json:"name"`
	Phone               string      `json:"phone,omitempty"`
	VehicleType         string      `json:"vehicleType"`
	Rating              float64     `json:"rating"`
	CompletedDeliveries int         `json:"totalDeliveries"`
}
