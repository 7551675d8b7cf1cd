package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// MarkReadyCommandHandler moves a preparing order to ready and reports the
// packing progress. The transition is a documented policy override: it never
// blocks on unpacked items, and the returned packed/total count makes the
// caller's decision explicit and auditable.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkReadyCommandHandler creates the handler with its unit of work factory.
func NewMarkReadyCommandHandler(uowFactory OrderUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the ready transition and returns the packed/total item
// count at the moment of the move.
func (h MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) (order.PackingProgress, error) {
	if err := cmd.Validate(); err != nil {
		return order.PackingProgress{}, err
	}

	var progress order.PackingProgress
	err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		var markErr error
		progress, markErr = aggregate.MarkReady()
		return markErr
	})
	if err != nil {
		return order.PackingProgress{}, err
	}

	return progress, nil
}
