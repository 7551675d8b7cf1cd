package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateItemPackingCommandIsNotConstructed = errors.New(
	"UpdateItemPackingCommand must be created via NewUpdateItemPackingCommand constructor",
)

// UpdateItemPackingCommand flips one item's packed flag on the order's
// checklist. Legal only while the order is accepted or preparing; updates
// commute and are idempotent.
type UpdateItemPackingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	packed  bool

	guard guard.ConstructorGuard
}

// NewUpdateItemPackingCommand creates the command after validating both ids.
func NewUpdateItemPackingCommand(orderID, itemID kernel.UUID, packed bool) (UpdateItemPackingCommand, error) {
	if err := errors.Join(orderID.Validate(), itemID.Validate()); err != nil {
		return UpdateItemPackingCommand{}, err
	}

	return UpdateItemPackingCommand{
		orderID: orderID,
		itemID:  itemID,
		packed:  packed,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemPackingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemPackingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order owning the item.
func (c UpdateItemPackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the checklist item.
func (c UpdateItemPackingCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Packed returns the target packed state.
func (c UpdateItemPackingCommand) Packed() bool {
	return c.packed
}
