package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// StartPreparingCommandHandler moves an accepted order into preparing.
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartPreparingCommandHandler creates the handler with its unit of work factory.
func NewStartPreparingCommandHandler(uowFactory OrderUoWFactory) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the command, applies the transition on the aggregate, and
// persists the mutation atomically. Transition failures are surfaced to the
// caller and never retried.
func (h StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.StartPreparing()
	})
}
