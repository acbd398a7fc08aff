package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/adapters/out/auth"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const kindUnauthenticated = "Unauthenticated"

var errUnauthenticated = errors.New("authentication required")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code          int    `json:"code"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	CurrentStatus string `json:"currentStatus,omitempty"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindPermissionDenied, errs.KindNotAssigned:
		return http.StatusForbidden
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindInvalidTransition,
		errs.KindTerminalState,
		errs.KindInvalidState,
		errs.KindPartnerUnavailable,
		errs.KindPartnerBusy,
		errs.KindAlreadyRated,
		errs.KindConflict:
		return http.StatusConflict
	case errs.KindInternal:
	}
	return http.StatusInternalServerError
}

func (s *Server) errorResponse(c echo.Context, err error) ErrorResponse {
	if errors.Is(err, errUnauthenticated) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, commands.ErrInvalidCredentials) {
		return ErrorResponse{Code: http.StatusUnauthorized, Kind: kindUnauthenticated, Message: err.Error()}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind := errs.KindInternal.String()
		if httpErr.Code < http.StatusInternalServerError {
			kind = errs.KindValidation.String()
		}
		if httpErr.Code == http.StatusNotFound {
			kind = errs.KindNotFound.String()
		}
		return ErrorResponse{Code: httpErr.Code, Kind: kind, Message: http.StatusText(httpErr.Code)}
	}

	kind := errs.KindOf(err)
	resp := ErrorResponse{Code: statusOf(kind), Kind: kind.String(), Message: err.Error()}
	if status, ok := errs.CurrentStatus(err); ok {
		resp.CurrentStatus = status
	}
	if kind == errs.KindInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		resp.Message = "internal error"
	}
	return resp
}

// fail writes err as an ErrorResponse.
func (s *Server) fail(c echo.Context, err error) error {
	resp := s.errorResponse(c, err)
	return c.JSON(resp.Code, resp)
}

func (s *Server) handleEchoError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := s.fail(c, err); writeErr != nil {
		s.logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
	}
}
