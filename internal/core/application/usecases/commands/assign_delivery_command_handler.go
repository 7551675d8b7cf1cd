package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AssignDeliveryCommandHandler is the assignment coordinator. It is the only
// component allowed to set a delivery assignment or flip a partner's
// availability, which preserves the at-most-one-active-order invariant.
//
// The handler runs the one compensating action in the engine: when the order
// mutation fails after the registry reservation succeeded, the reservation
// is released again so no partner is stranded as permanently reserved.
//
// Example:
//
//	handler := NewAssignDeliveryCommandHandler(uowFactory, registry, assigner, logger)
//	cmd, _ := NewAssignDeliveryCommand(orderID, partnerID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, partner.ErrPartnerUnavailable):
//	    // re-list available partners and let the caller pick another
//	case errors.Is(err, order.ErrIllegalTransition):
//	    // order was not ready
//	case err != nil:
//	    // infrastructure failure, reservation already compensated
//	}
type AssignDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   ports.PartnerRepository
	assigner   services.DeliveryAssigner
	logger     *slog.Logger
}

// NewAssignDeliveryCommandHandler creates the coordinator. The registry is
// used outside the order transaction: reservations commit atomically on
// their own, which is what makes the compensating release observable.
func NewAssignDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	registry ports.PartnerRepository,
	assigner services.DeliveryAssigner,
	logger *slog.Logger,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		assigner:   assigner,
		logger:     logger.With("component", "assign_delivery"),
	}
}

// Handle matches the order to the partner:
//
//  1. load both aggregates; unknown ids fail with errs.ObjectNotFoundError
//  2. pair them through the domain assigner — the order must be ready and
//     the partner available
//  3. persist the reservation with the registry's compare-and-swap; losing
//     the race fails with partner.ErrPartnerUnavailable and no retry
//  4. persist the order mutation; on failure release the reservation
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	partnerAggregate, err := h.registry.Get(ctx, cmd.PartnerID())
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

	orders := uow.OrderRepository()

	orderAggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.assigner.Assign(orderAggregate, partnerAggregate); err != nil {
		return err
	}

	if err = h.registry.Reserve(ctx, partnerAggregate); err != nil {
		return err
	}

	if err = orders.Update(ctx, orderAggregate); err != nil {
		h.releaseReservation(ctx, partnerAggregate.ID())
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.releaseReservation(ctx, partnerAggregate.ID())
		return err
	}

	return nil
}

// releaseReservation compensates a reservation after the order mutation
// failed. A failed release strands the partner as permanently reserved, so
// the error is logged for manual repair; the caller's error stays the order
// failure that triggered the compensation.
func (h AssignDeliveryCommandHandler) releaseReservation(ctx context.Context, partnerID kernel.UUID) {
	if err := h.registry.Release(ctx, partnerID); err != nil {
		h.logger.ErrorContext(ctx, "Compensating release failed, partner stuck reserved",
			"partner_id", partnerID.String(),
			"error", err,
		)
	}
}
