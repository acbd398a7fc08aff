package order

import (
	"errors"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Customer is the recipient of an order.
type Customer struct {
	name    string
	phone   string
	address string
}

func NewCustomer(name, phone, address string) (Customer, error) {
	c := Customer{
		name:    strings.TrimSpace(name),
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
	}

	var nameErr, addressErr error
	if c.name == "" {
		nameErr = errs.NewValueIsRequiredError("customer.name")
	}
	if c.address == "" {
		addressErr = errs.NewValueIsRequiredError("customer.address")
	}
	if err := errors.Join(nameErr, addressErr); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (c Customer) Name() string { return c.name }
func (c Customer) Phone() string { return c.phone }
func (c Customer) Address() string { return c.address }
