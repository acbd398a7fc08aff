package http

import (
	"net/http"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func orderResponse(c echo.Context, status int, o *order.Order) error {
	return c.JSON(status, queries.NewOrderView(o.Snapshot()))
}

// ListOrders handles GET /api/v1/orders?status=PENDING,PREP&priority=HIGH&limit=20&offset=0.
func (s *Server) ListOrders(c echo.Context) error {
	var rawStatuses []string
	var rawPriority string
	var params queries.ListOrdersParams
	if err := echo.QueryParamsBinder(c).
		Strings("status", &rawStatuses).
		String("priority", &rawPriority).
		Int("limit", &params.Limit).
		Int("offset", &params.Offset).
		BindError(); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("query", err))
	}

	for _, raw := range rawStatuses {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name == "" {
				continue
			}
			status, err := order.ParseStatus(name)
			if err != nil {
				return s.fail(c, err)
			}
			params.Statuses = append(params.Statuses, status)
		}
	}
	if rawPriority != "" {
		priority, err := order.ParsePriority(rawPriority)
		if err != nil {
			return s.fail(c, err)
		}
		params.Priority = &priority
	}

	query, err := queries.NewListOrdersQuery(actorFrom(c), params)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), req.params())
	if err != nil {
		return s.fail(c, err)
	}
	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusCreated, created)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req updateOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(actorFrom(c), orderID, commands.UpdateOrderParams{
		PrepTime:              req.PrepTime,
		EstimatedDeliveryTime: req.EstimatedDeliveryTime,
		Priority:              req.Priority,
		Status:                req.Status,
	})
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusOK, updated)
}

// AssignPartner handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignPartner(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req assignPartnerRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, err)
	}
	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("partnerId", err))
	}

	cmd, err := commands.NewAssignPartnerCommand(actorFrom(c), orderID, partnerID)
	if err != nil {
		return s.fail(c, err)
	}
	assigned, err := s.handlers.AssignPartner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusOK, assigned)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. The body is optional.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req cancelOrderRequest
	if c.Request().ContentLength > 0 {
		if err = c.Bind(&req); err != nil {
			return s.fail(c, err)
		}
	}

	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), orderID, req.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	cancelled, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusOK, cancelled)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status, the partner side of the lifecycle.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req updateStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(actorFrom(c), orderID, req.Status)
	if err != nil {
		return s.fail(c, err)
	}
	updated, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusOK, updated)
}

// SubmitRating handles POST /api/v1/orders/:id/rating.
func (s *Server) SubmitRating(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req ratingRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewSubmitRatingCommand(actorFrom(c), orderID,
		req.FoodQuality, req.DeliveryService, req.OverallExperience, req.Feedback)
	if err != nil {
		return s.fail(c, err)
	}
	rated, err := s.handlers.SubmitRating.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusOK, rated)
}

// AddTrackingNote handles POST /api/v1/orders/:id/notes.
func (s *Server) AddTrackingNote(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req noteRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAddTrackingNoteCommand(actorFrom(c), orderID, req.Text)
	if err != nil {
		return s.fail(c, err)
	}
	annotated, err := s.handlers.AddTrackingNote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return orderResponse(c, http.StatusCreated, annotated)
}
