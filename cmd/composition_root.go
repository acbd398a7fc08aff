package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/realtime"
	"fooddelivery/internal/adapters/out/auth"
	"fooddelivery/internal/adapters/out/fanout"
	"fooddelivery/internal/adapters/out/kafka"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      kernel.Clock
	uowFactory *postgres.GormUnitOfWorkFactory
	lifecycle  services.Lifecycle
	hasher     auth.BcryptHasher
	tokens     *auth.JWTIssuer
	registry   *realtime.Registry
	kafkaPub   *kafka.Publisher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := order.ParseDispatchPolicy(config.DispatchTimePolicy)
	if err != nil {
		return nil, err
	}
	clock := kernel.SystemClock{}
	tokens, err := auth.NewJWTIssuer(config.JWTSecret, config.JWTTTL, clock)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:    config,
		gormDB:    gormDB,
		logger:    logger,
		clock:     clock,
		lifecycle: services.NewLifecycle(policy),
		hasher:    auth.NewBcryptHasher(0),
		tokens:    tokens,
		registry:  realtime.NewRegistry(logger),
	}

	publishers := []ports.EventPublisher{fanout.NewRealtimePublisher(c.registry, logger)}
	if config.KafkaHost != "" {
		producer, err := kafka.NewProducer(config.KafkaHost)
		if err != nil {
			return nil, err
		}
		c.kafkaPub, err = kafka.NewPublisher(producer, config.KafkaOrderChangedTopic, logger)
		if err != nil {
			return nil, errors.Join(err, producer.Close())
		}
		publishers = append(publishers, c.kafkaPub)
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, fanout.NewMultiPublisher(publishers...), logger)
	return c, nil
}

// Close disconnects realtime clients and flushes the Kafka producer.
func (c *CompositionRoot) Close() error {
	c.registry.CloseAll()
	if c.kafkaPub != nil {
		return c.kafkaPub.Close()
	}
	return nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.userUoWFactory(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.fullUoWFactory(), c.lifecycle, c.clock)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	return commands.NewAssignPartnerCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory(), c.lifecycle, c.clock)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.fullUoWFactory(), c.lifecycle, c.clock)
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	return commands.NewSubmitRatingCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAddTrackingNoteCommandHandler() commands.AddTrackingNoteCommandHandler {
	return commands.NewAddTrackingNoteCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetPartnerAvailabilityCommandHandler() commands.SetPartnerAvailabilityCommandHandler {
	return commands.NewSetPartnerAvailabilityCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeactivatePartnerCommandHandler() commands.DeactivatePartnerCommandHandler {
	return commands.NewDeactivatePartnerCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReconcilePartnerAvailabilityCommandHandler() commands.ReconcilePartnerAvailabilityCommandHandler {
	return commands.NewReconcilePartnerAvailabilityCommandHandler(c.userUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListAvailablePartnersQueryHandler() queries.ListAvailablePartnersQueryHandler {
	return queries.NewListAvailablePartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardStatsQueryHandler() queries.GetDashboardStatsQueryHandler {
	return queries.NewGetDashboardStatsQueryHandler(c.gormDB, c.config.PartnerCommissionRate, c.clock)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcilePartnerAvailabilityCommandHandler(), c.config.ReconcileSchedule, c.logger)
}

func (c *CompositionRoot) CreateSocketHandler() http.Handler {
	return realtime.NewHandler(c.registry, c.tokens, c.config.WSSendBuffer, c.logger)
}

func (c *CompositionRoot) CreateEcho() *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		RegisterUser:      c.CreateRegisterUserCommandHandler(),
		Login:             c.CreateLoginCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrder:       c.CreateUpdateOrderCommandHandler(),
		AssignPartner:     c.CreateAssignPartnerCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		SubmitRating:      c.CreateSubmitRatingCommandHandler(),
		AddTrackingNote:   c.CreateAddTrackingNoteCommandHandler(),
		SetAvailability:   c.CreateSetPartnerAvailabilityCommandHandler(),
		DeactivatePartner: c.CreateDeactivatePartnerCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		AvailablePartners: c.CreateListAvailablePartnersQueryHandler(),
		DashboardStats:    c.CreateGetDashboardStatsQueryHandler(),
	}, c.tokens, c.CreateSocketHandler(), c.logger)
	return httpin.NewEcho(server)
}

func (c *CompositionRoot) Address() string {
	return fmt.Sprintf("0.0.0.0:%s", c.config.HTTPPort)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
