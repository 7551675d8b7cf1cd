package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Domain errors for order items.
var (
	// ErrItemNotFound is the sentinel wrapped by ItemNotFoundError.
	ErrItemNotFound = errors.New("order item not found")

	// ErrItemIsNotConstructed is returned when an Item bypassed its constructor.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
)

// ItemNotFoundError reports a packing mutation that referenced an item id
// not belonging to the order.
type ItemNotFoundError struct {
	ItemID kernel.UUID
}

// NewItemNotFoundError creates an ItemNotFoundError for the given item id.
func NewItemNotFoundError(itemID kernel.UUID) *ItemNotFoundError {
	return &ItemNotFoundError{ItemID: itemID}
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("order item not found: %s", e.ItemID)
}

func (e *ItemNotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// Item is a line of the order's packing checklist. It belongs to exactly one
// Order aggregate; its packed flag is mutated only through the aggregate so
// the packing window invariant holds.
type Item struct {
	// id uniquely identifies the item within the engine
	id kernel.UUID
	// name is the human-readable product name
	name string
	// quantity is the ordered amount, in units of unit
	quantity int
	// unit is the measurement unit, e.g. "kg" or "pcs"
	unit string
	// totalPrice is the line total
	totalPrice decimal.Decimal
	// isPacked marks the item as confirmed ready for handoff
	isPacked bool
}

// NewItem creates an unpacked order item with validation.
//
// Business rules:
//   - id must be a valid UUID
//   - name and unit must be non-empty
//   - quantity must be positive
//   - totalPrice must not be negative
func NewItem(id kernel.UUID, name string, quantity int, unit string, totalPrice decimal.Decimal) (*Item, error) {
	item := &Item{}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnit(unit),
		item.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence, including its packed flag.
func RestoreItem(
	id kernel.UUID,
	name string,
	quantity int,
	unit string,
	totalPrice decimal.Decimal,
	isPacked bool,
) (*Item, error) {
	item, err := NewItem(id, name, quantity, unit, totalPrice)
	if err != nil {
		return nil, err
	}

	item.isPacked = isPacked
	return item, nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the human-readable product name.
func (i *Item) Name() string {
	return i.name
}

// Quantity returns the ordered amount.
func (i *Item) Quantity() int {
	return i.quantity
}

// Unit returns the measurement unit.
func (i *Item) Unit() string {
	return i.unit
}

// TotalPrice returns the line total.
func (i *Item) TotalPrice() decimal.Decimal {
	return i.totalPrice
}

// IsPacked reports whether the item is confirmed ready for handoff.
func (i *Item) IsPacked() bool {
	return i.isPacked
}

// setPacked flips the packed flag. Only the Order aggregate calls this,
// after checking its status allows packing mutations.
func (i *Item) setPacked(packed bool) {
	i.isPacked = packed
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnit(unit string) error {
	if unit == "" {
		return errs.NewValueIsRequiredError("item unit")
	}
	i.unit = unit
	return nil
}

func (i *Item) setTotalPrice(totalPrice decimal.Decimal) error {
	if totalPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total price", fmt.Errorf("%s is negative", totalPrice))
	}
	i.totalPrice = totalPrice
	return nil
}
