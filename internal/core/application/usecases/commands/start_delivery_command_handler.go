package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// StartDeliveryCommandHandler records the partner pickup of an assigned order.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartDeliveryCommandHandler creates the handler with its unit of work factory.
func NewStartDeliveryCommandHandler(uowFactory OrderUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.StartDelivery()
	})
}
