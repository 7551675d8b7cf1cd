package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/partner"
)

// RegisterPartnerCommandHandler persists newly registered delivery partners.
// New partners start available with no active order.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewRegisterPartnerCommandHandler creates the handler with its unit of work
// factory.
func NewRegisterPartnerCommandHandler(uowFactory PartnerUoWFactory) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle constructs the partner aggregate and persists it transactionally.
func (h RegisterPartnerCommandHandler) Handle(ctx context.Context, cmd RegisterPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := partner.NewDeliveryPartner(cmd.PartnerID(), cmd.Name(), cmd.PhoneNumber())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
