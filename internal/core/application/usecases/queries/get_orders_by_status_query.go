package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery requests summaries of every order currently in a
// given status, oldest first. Presentation code uses it to build the
// per-stage order lists.
type GetOrdersByStatusQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates the query after validating the status.
func NewGetOrdersByStatusQuery(status order.Status) (GetOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetOrdersByStatusQuery{}, err
	}

	return GetOrdersByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Status returns the status to filter by.
func (q GetOrdersByStatusQuery) Status() order.Status {
	return q.status
}
