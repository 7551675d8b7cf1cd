package inmemory

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"
)

// PartnerRepository implements ports.PartnerRepository over the shared
// store. Reserve performs its availability check and the write under one
// lock, giving the same exactly-one-winner guarantee as the postgres
// compare-and-swap.
type PartnerRepository struct {
	store *Store
}

// NewPartnerRepository creates a partner repository over the given store.
func NewPartnerRepository(store *Store) *PartnerRepository {
	return &PartnerRepository{store: store}
}

// Add persists a newly registered partner.
func (r *PartnerRepository) Add(_ context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := clonePartner(aggregate)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.partners[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("partnerID")
	}

	r.store.partners[aggregate.ID()] = clone
	return nil
}

// Update replaces the committed partner state.
func (r *PartnerRepository) Update(_ context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := clonePartner(aggregate)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.partners[aggregate.ID()]; !exists {
		return errs.NewObjectNotFoundError("partner", aggregate.ID().String())
	}

	r.store.partners[aggregate.ID()] = clone
	return nil
}

// Get retrieves a partner by ID.
func (r *PartnerRepository) Get(_ context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	stored, exists := r.store.partners[id]
	r.store.mu.RUnlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("partner", id.String())
	}

	return clonePartner(stored)
}

// GetAllAvailable returns a snapshot of partners currently able to take an
// order, sorted by name.
func (r *PartnerRepository) GetAllAvailable(_ context.Context) ([]*partner.DeliveryPartner, error) {
	r.store.mu.RLock()
	matched := make([]*partner.DeliveryPartner, 0)
	for _, stored := range r.store.partners {
		if stored.IsAvailable() {
			matched = append(matched, stored)
		}
	}
	r.store.mu.RUnlock()

	partners := make([]*partner.DeliveryPartner, 0, len(matched))
	for _, stored := range matched {
		clone, err := clonePartner(stored)
		if err != nil {
			return nil, err
		}
		partners = append(partners, clone)
	}

	sort.Slice(partners, func(i, j int) bool {
		return partners[i].Name() < partners[j].Name()
	})
	return partners, nil
}

// Reserve persists the reservation carried by the aggregate if the stored
// partner is still available. Of N concurrent attempts for one partner
// exactly one succeeds; the rest get partner.ErrPartnerUnavailable.
func (r *PartnerRepository) Reserve(_ context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	clone, err := clonePartner(aggregate)
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, exists := r.store.partners[aggregate.ID()]
	if !exists {
		return errs.NewObjectNotFoundError("partner", aggregate.ID().String())
	}

	if !stored.IsAvailable() {
		return partner.ErrPartnerUnavailable
	}

	r.store.partners[aggregate.ID()] = clone
	return nil
}

// Release frees a reserved partner. Releasing an unreserved partner is a
// no-op.
func (r *PartnerRepository) Release(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, exists := r.store.partners[id]
	if !exists {
		return errs.NewObjectNotFoundError("partner", id.String())
	}

	released, err := partner.RestoreDeliveryPartner(
		stored.ID(), stored.Name(), stored.PhoneNumber(), true, nil,
	)
	if err != nil {
		return err
	}

	r.store.partners[id] = released
	return nil
}
