package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// UpdateItemPackingCommandHandler applies a packing checklist update and
// persists the order atomically.
type UpdateItemPackingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateItemPackingCommandHandler creates the handler with its unit of
// work factory.
func NewUpdateItemPackingCommandHandler(uowFactory OrderUoWFactory) UpdateItemPackingCommandHandler {
	return UpdateItemPackingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle flips the item's packed flag. Fails with order.ErrPackingNotAllowed
// outside the accepted/preparing window and with *order.ItemNotFoundError
// for foreign item ids.
func (h UpdateItemPackingCommandHandler) Handle(ctx context.Context, cmd UpdateItemPackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.SetItemPacked(cmd.ItemID(), cmd.Packed())
	})
}
