package cmd

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
)

type SeedOptions struct {
	Managers         int
	Partners         int
	OrdersPerManager int
	Password         string
}

var (
	seedVehicles   = []string{user.VehicleBicycle.String(), user.VehicleMotorcycle.String(), user.VehicleScooter.String(), user.VehicleCar.String()}
	seedPriorities = []string{order.PriorityLow.String(), order.PriorityMedium.String(), order.PriorityHigh.String()}
	seedDishes     = []string{"Margherita", "Pad Thai", "Ramen", "Burrito", "Falafel Wrap", "Caesar Salad", "Pho", "Cheeseburger"}
)

// Seed registers demo accounts through the regular use cases and gives every manager a few pending orders.
// Accounts whose email is already taken are skipped.
func Seed(ctx context.Context, app *CompositionRoot, opts SeedOptions) error {
	fake := faker.New()
	register := app.CreateRegisterUserCommandHandler()
	createOrder := app.CreateCreateOrderCommandHandler()

	newAccount := func(role kernel.Role, vehicle string) (*user.User, error) {
		cmd, err := commands.NewRegisterUserCommand(commands.RegisterUserParams{
			Name:        fake.Person().Name(),
			Email:       fake.Internet().Email(),
			Phone:       fake.Phone().Number(),
			Password:    opts.Password,
			Role:        role.String(),
			VehicleType: vehicle,
		})
		if err != nil {
			return nil, err
		}
		created, err := register.Handle(ctx, cmd)
		if errors.Is(err, commands.ErrEmailIsTaken) {
			return nil, nil
		}
		return created, err
	}

	var managers []*user.User
	for range opts.Managers {
		manager, err := newAccount(kernel.RoleRestaurantManager, "")
		if err != nil {
			return fmt.Errorf("seed manager: %w", err)
		}
		if manager != nil {
			managers = append(managers, manager)
			app.logger.InfoContext(ctx, "Seeded manager", "email", manager.Email())
		}
	}
	for range opts.Partners {
		partner, err := newAccount(kernel.RoleDeliveryPartner, fake.RandomStringElement(seedVehicles))
		if err != nil {
			return fmt.Errorf("seed partner: %w", err)
		}
		if partner != nil {
			app.logger.InfoContext(ctx, "Seeded partner", "email", partner.Email())
		}
	}

	for _, manager := range managers {
		for range opts.OrdersPerManager {
			items := make([]commands.OrderItemInput, fake.IntBetween(1, 3))
			for i := range items {
				items[i] = commands.OrderItemInput{
					Name:     fake.RandomStringElement(seedDishes),
					Quantity: fake.IntBetween(1, 3),
					Price:    decimal.New(int64(fake.IntBetween(500, 3000)), -2),
				}
			}
			cmd, err := commands.NewCreateOrderCommand(manager.Actor(), commands.CreateOrderParams{
				CustomerName:    fake.Person().Name(),
				CustomerPhone:   fake.Phone().Number(),
				CustomerAddress: fake.Address().Address(),
				Items:           items,
				Priority:        fake.RandomStringElement(seedPriorities),
				PrepTime:        fake.IntBetween(10, 45),
			})
			if err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
			if _, err = createOrder.Handle(ctx, cmd); err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
		}
	}

	app.logger.InfoContext(ctx, "Seed complete", "managers", len(managers), "password", opts.Password)
	return nil
}
