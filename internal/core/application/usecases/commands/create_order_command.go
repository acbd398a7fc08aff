package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// CreateOrderParams is the raw input of a new order. Priority is a wire name ("HIGH")
// and may be empty.
type CreateOrderParams struct {
	CustomerName          string
	CustomerPhone         string
	CustomerAddress       string
	Items                 []OrderItemInput
	SpecialInstructions   string
	TotalAmount           *decimal.Decimal
	Priority              string
	PrepTime              int
	EstimatedDeliveryTime int
}

type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor kernel.Actor
	draft order.Draft

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(actor kernel.Actor, params CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.ID.Validate(),
		cmd.setCustomer(params),
		cmd.setItems(params.Items),
		cmd.setPriority(params.Priority),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.draft.SpecialInstructions = params.SpecialInstructions
	cmd.draft.TotalAmount = params.TotalAmount
	cmd.draft.PrepTime = params.PrepTime
	cmd.draft.EstimatedDeliveryTime = params.EstimatedDeliveryTime
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Draft() order.Draft {
	return c.draft
}

func (c *CreateOrderCommand) setCustomer(params CreateOrderParams) error {
	customer, err := order.NewCustomer(params.CustomerName, params.CustomerPhone, params.CustomerAddress)
	if err != nil {
		return err
	}
	c.draft.Customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []OrderItemInput) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	items := make([]order.Item, 0, len(inputs))
	var itemErrs []error
	for _, in := range inputs {
		item, err := order.NewItem(in.Name, in.Quantity, in.Price)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}
	c.draft.Items = items
	return nil
}

func (c *CreateOrderCommand) setPriority(priority string) error {
	if priority == "" {
		c.draft.Priority = order.DefaultPriority
		return nil
	}
	p, err := order.ParsePriority(priority)
	if err != nil {
		return err
	}
	c.draft.Priority = p
	return nil
}
