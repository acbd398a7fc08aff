package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateParams() commands.CreateOrderParams {
	return commands.CreateOrderParams{
		CustomerName:    "Ada",
		CustomerPhone:   "+44 20 7946 0000",
		CustomerAddress: "1 Analytical Way",
		Items: []commands.OrderItemInput{
			{Name: "Margherita", Quantity: 2, Price: decimal.RequireFromString("9.50")},
		},
		PrepTime: 15,
	}
}

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	actor := managerActor()
	cmd, err := commands.NewCreateOrderCommand(actor, validCreateParams())

	require.NoError(t, err)
	assert.Equal(t, actor, cmd.Actor())
	assert.Equal(t, order.DefaultPriority, cmd.Draft().Priority)
	assert.Len(t, cmd.Draft().Items, 1)
	assert.Equal(t, "Ada", cmd.Draft().Customer.Name())
}

func TestNewCreateOrderCommand_ParsesPriority(t *testing.T) {
	params := validCreateParams()
	params.Priority = "URGENT"

	cmd, err := commands.NewCreateOrderCommand(managerActor(), params)

	require.NoError(t, err)
	assert.Equal(t, order.PriorityUrgent, cmd.Draft().Priority)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	testCases := map[string]func(p *commands.CreateOrderParams){
		"no items":         func(p *commands.CreateOrderParams) { p.Items = nil },
		"no customer name": func(p *commands.CreateOrderParams) { p.CustomerName = "" },
		"no address":       func(p *commands.CreateOrderParams) { p.CustomerAddress = "  " },
		"unknown priority": func(p *commands.CreateOrderParams) { p.Priority = "ASAP" },
		"zero quantity":    func(p *commands.CreateOrderParams) { p.Items[0].Quantity = 0 },
	}

	for name, mutate := range testCases {
		t.Run(name, func(t *testing.T) {
			params := validCreateParams()
			mutate(&params)

			_, err := commands.NewCreateOrderCommand(managerActor(), params)

			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}
}

func TestNewCreateOrderCommand_InvalidActor(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.Actor{}, validCreateParams())

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
