package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per request/command, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the order store and
// partner registry. Client code manages the transaction lifecycle
// explicitly.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Rolling back after a
	// successful commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// PartnerRepository returns a PartnerRepository bound to the current
	// transaction.
	PartnerRepository() PartnerRepository
}
