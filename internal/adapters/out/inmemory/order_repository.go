package inmemory

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// orderLocker serializes access to an order id for the duration of a unit
// of work.
type orderLocker interface {
	lockOrder(id kernel.UUID)
}

// OrderRepository implements ports.OrderRepository over the shared store.
// Standalone repositories read committed state without blocking; a
// repository handed out by a unit of work carries a locker, and every order
// it touches stays locked until that unit of work ends.
type OrderRepository struct {
	store  *Store
	locker orderLocker
}

// NewOrderRepository creates a standalone order repository over the given
// store, for read paths outside a unit of work.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) lock(id kernel.UUID) {
	if r.locker != nil {
		r.locker.lockOrder(id)
	}
}

// Add persists a new order aggregate.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.lock(aggregate.ID())
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("orderID")
	}

	r.store.orders[aggregate.ID()] = clone
	r.store.ordersByNumber[aggregate.OrderNumber()] = aggregate.ID()
	return nil
}

// Update replaces the committed order state in one step.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.lock(aggregate.ID())
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[aggregate.ID()]; !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.store.orders[aggregate.ID()] = clone
	return nil
}

// Get retrieves an order by ID. Inside a unit of work the order stays locked
// afterwards, so the state read here cannot be overwritten by a concurrent
// mutation before this unit of work writes it back.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.lock(id)
	r.store.mu.RLock()
	stored, exists := r.store.orders[id]
	r.store.mu.RUnlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return cloneOrder(stored)
}

// GetByNumber retrieves an order by its human-readable order number.
func (r *OrderRepository) GetByNumber(_ context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	r.store.mu.RLock()
	id, exists := r.store.ordersByNumber[orderNumber]
	r.store.mu.RUnlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("order", orderNumber)
	}

	// The order is re-read after taking the per-order lock so a mutation
	// committed in between is not missed.
	r.lock(id)
	r.store.mu.RLock()
	stored := r.store.orders[id]
	r.store.mu.RUnlock()

	if stored == nil {
		return nil, errs.NewObjectNotFoundError("order", orderNumber)
	}

	return cloneOrder(stored)
}

// GetAllInStatus retrieves all orders in the given status, oldest first.
func (r *OrderRepository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	matched := make([]*order.Order, 0)
	for _, stored := range r.store.orders {
		if stored.Status() == status {
			matched = append(matched, stored)
		}
	}
	r.store.mu.RUnlock()

	orders := make([]*order.Order, 0, len(matched))
	for _, stored := range matched {
		clone, err := cloneOrder(stored)
		if err != nil {
			return nil, err
		}
		orders = append(orders, clone)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})
	return orders, nil
}
