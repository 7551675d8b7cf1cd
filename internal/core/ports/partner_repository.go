package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
)

// PartnerRepository is the persistence contract for the delivery partner
// registry. Reserve and Release are the only operations that persist a
// partner's order binding; both are atomic so that of N concurrent
// reservation attempts for one partner exactly one succeeds.
type PartnerRepository interface {
	// Add persists a newly registered partner.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner, e.g. a
	// partner-initiated availability toggle.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner by its unique identifier.
	// Returns errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAllAvailable returns a snapshot of partners currently able to take
	// an order. The snapshot may be stale by the time a reservation is
	// attempted; Reserve remains the single source of truth.
	GetAllAvailable(ctx context.Context) ([]*partner.DeliveryPartner, error)

	// Reserve persists the reservation carried by the aggregate, guarded by
	// a compare-and-swap on the stored availability. Returns
	// partner.ErrPartnerUnavailable when another reservation won the race.
	Reserve(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Release frees a reserved partner, clearing the active order binding
	// and restoring availability. Releasing an unreserved partner is a
	// no-op.
	Release(ctx context.Context, id kernel.UUID) error
}
