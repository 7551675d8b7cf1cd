package commands

import (
	"context"
)

// SetPartnerAvailabilityCommandHandler applies partner availability toggles.
// A partner holding an active order cannot be made available; the binding is
// released only through the assignment lifecycle.
type SetPartnerAvailabilityCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerAvailabilityCommandHandler creates the handler with its unit
// of work factory.
func NewSetPartnerAvailabilityCommandHandler(uowFactory PartnerUoWFactory) SetPartnerAvailabilityCommandHandler {
	return SetPartnerAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the partner, applies the toggle, and persists the change.
// Fails with partner.ErrPartnerHasActiveOrder when trying to free a partner
// that still holds an order.
func (h SetPartnerAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetPartnerAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PartnerRepository()

	aggregate, err := repo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	if err = aggregate.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
