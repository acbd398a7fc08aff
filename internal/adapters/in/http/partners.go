package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Register handles POST /api/v1/auth/register.
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewRegisterUserCommand(req.params())
	if err != nil {
		return s.fail(c, err)
	}
	registered, err := s.handlers.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, queries.NewUserView(registered))
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      queries.NewUserView(result.User),
	})
}

// ListAvailablePartners handles GET /api/v1/partners/available.
func (s *Server) ListAvailablePartners(c echo.Context) error {
	query, err := queries.NewListAvailablePartnersQuery(actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	partners, err := s.handlers.AvailablePartners.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, partners)
}

// SetAvailability handles PATCH /api/v1/partners/me/availability.
func (s *Server) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, err)
	}
	if req.IsAvailable == nil {
		return s.fail(c, errs.NewValueIsRequiredError("isAvailable"))
	}

	cmd, err := commands.NewSetPartnerAvailabilityCommand(actorFrom(c), *req.IsAvailable)
	if err != nil {
		return s.fail(c, err)
	}
	partner, err := s.handlers.SetAvailability.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.NewUserView(partner))
}

// DeactivatePartner handles POST /api/v1/partners/:id/deactivate.
func (s *Server) DeactivatePartner(c echo.Context) error {
	partnerID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeactivatePartnerCommand(actorFrom(c), partnerID)
	if err != nil {
		return s.fail(c, err)
	}
	partner, err := s.handlers.DeactivatePartner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, queries.NewUserView(partner))
}

// GetDashboardStats handles GET /api/v1/stats/dashboard?period=today|week|month|all.
func (s *Server) GetDashboardStats(c echo.Context) error {
	query, err := queries.NewGetDashboardStatsQuery(actorFrom(c), c.QueryParam("period"))
	if err != nil {
		return s.fail(c, err)
	}
	stats, err := s.handlers.DashboardStats.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
