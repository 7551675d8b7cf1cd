package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// MarkPaymentReceivedCommandHandler records payment confirmation on an order.
type MarkPaymentReceivedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkPaymentReceivedCommandHandler creates the handler with its unit of work factory.
func NewMarkPaymentReceivedCommandHandler(uowFactory OrderUoWFactory) MarkPaymentReceivedCommandHandler {
	return MarkPaymentReceivedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h MarkPaymentReceivedCommandHandler) Handle(ctx context.Context, cmd MarkPaymentReceivedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkPaymentReceived()
	})
}
