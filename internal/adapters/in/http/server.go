package http

import (
	"context"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Handler is a command or query handler as seen by the transport.
type Handler[I, R any] interface {
	Handle(ctx context.Context, in I) (R, error)
}

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	RegisterUser      Handler[commands.RegisterUserCommand, *user.User]
	Login             Handler[commands.LoginCommand, commands.LoginResult]
	CreateOrder       Handler[commands.CreateOrderCommand, *order.Order]
	UpdateOrder       Handler[commands.UpdateOrderCommand, *order.Order]
	AssignPartner     Handler[commands.AssignPartnerCommand, *order.Order]
	CancelOrder       Handler[commands.CancelOrderCommand, *order.Order]
	UpdateOrderStatus Handler[commands.UpdateOrderStatusCommand, *order.Order]
	SubmitRating      Handler[commands.SubmitRatingCommand, *order.Order]
	AddTrackingNote   Handler[commands.AddTrackingNoteCommand, *order.Order]
	SetAvailability   Handler[commands.SetPartnerAvailabilityCommand, *user.User]
	DeactivatePartner Handler[commands.DeactivatePartnerCommand, *user.User]

	// Query handlers
	GetOrder          Handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders        Handler[queries.ListOrdersQuery, queries.ListOrdersResult]
	AvailablePartners Handler[queries.ListAvailablePartnersQuery, []queries.AvailablePartner]
	DashboardStats    Handler[queries.GetDashboardStatsQuery, queries.DashboardStats]
}

// Server maps HTTP requests onto the application use cases.
type Server struct {
	handlers Handlers
	tokens   ports.TokenIssuer
	socket   http.Handler
	logger   *slog.Logger
}

// NewServer creates the HTTP server. socket serves the realtime endpoint and authenticates on its own.
func NewServer(handlers Handlers, tokens ports.TokenIssuer, socket http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		socket:   socket,
		logger:   logger.With("component", "http"),
	}
}

// NewEcho builds an echo instance with logging, panic recovery and every route registered.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleEchoError
	e.Use(s.requestLogger(), recoverer())
	s.RegisterRoutes(e)
	return e
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if s.socket != nil {
		e.GET("/api/v1/ws", echo.WrapHandler(s.socket))
	}

	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", s.Register)
	v1.POST("/auth/login", s.Login)

	private := v1.Group("", s.authenticate)

	private.GET("/orders", s.ListOrders)
	private.POST("/orders", s.CreateOrder)
	private.GET("/orders/:id", s.GetOrder)
	private.PATCH("/orders/:id", s.UpdateOrder)
	private.POST("/orders/:id/assign", s.AssignPartner)
	private.POST("/orders/:id/cancel", s.CancelOrder)
	private.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	private.POST("/orders/:id/rating", s.SubmitRating)
	private.POST("/orders/:id/notes", s.AddTrackingNote)

	private.GET("/partners/available", s.ListAvailablePartners)
	private.PATCH("/partners/me/availability", s.SetAvailability)
	private.POST("/partners/:id/deactivate", s.DeactivatePartner)

	private.GET("/stats/dashboard", s.GetDashboardStats)
}
