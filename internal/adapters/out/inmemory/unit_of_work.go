package inmemory

import (
	"context"
	"errors"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit when Begin was never called.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates in-memory units of work over a shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork instance.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is the in-memory transaction boundary. Repository writes apply
// directly to the store, but the first time the unit of work touches an
// order it takes that order's mutex and holds it until Commit or Rollback.
// Two units of work mutating the same order id therefore run one after the
// other, never interleaved, which matches the row lock the postgres adapter
// takes on its write path. A UnitOfWork instance belongs to one goroutine.
type UnitOfWork struct {
	store  *Store
	active bool
	held   map[kernel.UUID]*sync.Mutex
}

// Begin starts the unit of work. Repeated calls are a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit ends the unit of work and releases all held order locks.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.releaseOrderLocks()
	return nil
}

// Rollback ends the unit of work without an error so the common
// defer-rollback-after-commit idiom stays silent. Any order locks still held
// are released.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.active = false
	uow.releaseOrderLocks()
	return nil
}

// lockOrder acquires the per-order mutex on the first touch of the id. The
// lock stays held until Commit or Rollback, so a concurrent unit of work
// cannot read the order mid-mutation and overwrite the result with a stale
// view.
func (uow *UnitOfWork) lockOrder(id kernel.UUID) {
	if _, holds := uow.held[id]; holds {
		return
	}

	lock := uow.store.orderLock(id)
	lock.Lock()

	if uow.held == nil {
		uow.held = make(map[kernel.UUID]*sync.Mutex)
	}
	uow.held[id] = lock
}

func (uow *UnitOfWork) releaseOrderLocks() {
	for _, lock := range uow.held {
		lock.Unlock()
	}
	uow.held = nil
}

// OrderRepository returns an order repository over the shared store. Orders
// it touches are locked for the remainder of the unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.store, locker: uow}
}

// PartnerRepository returns a partner repository over the shared store.
func (uow *UnitOfWork) PartnerRepository() ports.PartnerRepository {
	return NewPartnerRepository(uow.store)
}
