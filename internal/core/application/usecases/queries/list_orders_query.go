package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersParams are the optional filters of ListOrdersQuery. Zero values do not filter.
type ListOrdersParams struct {
	Statuses []order.Status
	Priority *order.Priority
	Limit    int
	Offset   int
}

// ListOrdersQuery lists orders visible to actor, newest first.
type ListOrdersQuery struct {
	actor  kernel.Actor
	params ListOrdersParams

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, params ListOrdersParams) (ListOrdersQuery, error) {
	var statusErrs []error
	for _, s := range params.Statuses {
		statusErrs = append(statusErrs, s.Validate())
	}
	var priorityErr error
	if params.Priority != nil {
		priorityErr = params.Priority.Validate()
	}
	var pageErr error
	switch {
	case params.Limit < 0 || params.Limit > MaxPageSize:
		pageErr = errs.NewValueIsOutOfRangeError("limit", params.Limit, 0, MaxPageSize)
	case params.Offset < 0:
		pageErr = errs.NewValueIsInvalidError("offset")
	}
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate(), errors.Join(statusErrs...), priorityErr, pageErr); err != nil {
		return ListOrdersQuery{}, err
	}

	if params.Limit == 0 {
		params.Limit = DefaultPageSize
	}
	return ListOrdersQuery{actor: actor, params: params, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersResult is one page of orders plus the number of orders matching the filter.
type ListOrdersResult struct {
	Orders []OrderView `json:"orders"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
