package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler completes an out-for-delivery order.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkDeliveredCommandHandler creates the handler with its unit of work factory.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkDelivered()
	})
}
