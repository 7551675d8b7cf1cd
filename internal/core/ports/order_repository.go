// Package ports defines the persistence contracts between the domain layer
// and infrastructure adapters, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates. All
// mutations reach storage through Add and Update with aggregates produced by
// domain methods; callers never write order state directly.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The full
	// mutation (status, items, assignment, history append) is applied
	// atomically per order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError for unknown ids. A repository
	// obtained from a unit of work locks the order until the unit of work
	// ends, so concurrent read-modify-write cycles on the same order id
	// are serialized; standalone repositories read without blocking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable
	// order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// oldest first.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
