// Package inmemory provides a process-local implementation of the
// persistence ports. It backs tests and local development without a
// database while preserving the semantics the postgres adapter guarantees:
// per-order atomic updates and a compare-and-swap partner reservation.
package inmemory

import (
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
)

// Store holds all aggregates behind a single mutex. Aggregates are cloned on
// the way in and out, so callers can never mutate committed state except
// through repository operations. A separate mutex per order id serializes
// whole read-modify-write cycles; units of work hold it from the first read
// of an order until commit or rollback.
type Store struct {
	mu             sync.RWMutex
	orders         map[kernel.UUID]*order.Order
	ordersByNumber map[string]kernel.UUID
	orderLocks     map[kernel.UUID]*sync.Mutex
	partners       map[kernel.UUID]*partner.DeliveryPartner
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:         make(map[kernel.UUID]*order.Order),
		ordersByNumber: make(map[string]kernel.UUID),
		orderLocks:     make(map[kernel.UUID]*sync.Mutex),
		partners:       make(map[kernel.UUID]*partner.DeliveryPartner),
	}
}

// orderLock returns the mutex serializing mutations of the given order id,
// creating it on first use. Locks are never removed; the store is
// process-local and its order set stays small.
func (s *Store) orderLock(id kernel.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.orderLocks[id]
	if !exists {
		lock = &sync.Mutex{}
		s.orderLocks[id] = lock
	}
	return lock
}

// cloneOrder rebuilds an order aggregate from its accessors so the copy
// shares no mutable state with the source.
func cloneOrder(src *order.Order) (*order.Order, error) {
	items := make([]*order.Item, 0, len(src.Items()))
	for _, item := range src.Items() {
		clone, err := order.RestoreItem(
			item.ID(), item.Name(), item.Quantity(), item.Unit(), item.TotalPrice(), item.IsPacked(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, clone)
	}

	var assignment *order.Assignment
	if a := src.Assignment(); a != nil {
		snapshot, err := order.NewAssignment(
			a.PartnerID(), a.PartnerName(), a.PartnerPhone(), a.EstimatedDeliveryTime(), a.AssignedAt(),
		)
		if err != nil {
			return nil, err
		}
		assignment = &snapshot
	}

	return order.RestoreOrder(
		src.ID(),
		src.OrderNumber(),
		src.Status(),
		src.Customer(),
		items,
		src.PaymentAmount(),
		src.PaymentStatus(),
		assignment,
		src.CreatedAt(),
		src.History(),
	)
}

// clonePartner rebuilds a partner aggregate from its accessors.
func clonePartner(src *partner.DeliveryPartner) (*partner.DeliveryPartner, error) {
	return partner.RestoreDeliveryPartner(
		src.ID(), src.Name(), src.PhoneNumber(), src.IsAvailable(), src.ActiveOrderID(),
	)
}
