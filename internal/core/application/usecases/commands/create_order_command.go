package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// NewOrderItem carries one checklist line of an incoming order.
type NewOrderItem struct {
	ID         kernel.UUID
	Name       string
	Quantity   int
	Unit       string
	TotalPrice decimal.Decimal
}

// NewOrderCustomer carries the recipient snapshot of an incoming order.
type NewOrderCustomer struct {
	Name    string
	Phone   string
	Address string
}

// CreateOrderCommand represents an externally created order entering the
// engine. The order starts in status "new" with payment pending; deep
// validation of items and customer data happens in the domain constructors.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "ORD-1042", customer, items, amount)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderNumber   string
	customer      NewOrderCustomer
	items         []NewOrderItem
	paymentAmount decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register an incoming order.
// Validates that the order id is valid, the order number is not empty, and
// at least one item is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	customer NewOrderCustomer,
	items []NewOrderItem,
	paymentAmount decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer:      customer,
		paymentAmount: paymentAmount,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-readable order reference.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Customer returns the recipient snapshot.
func (c CreateOrderCommand) Customer() NewOrderCustomer {
	return c.customer
}

// Items returns the incoming checklist lines.
func (c CreateOrderCommand) Items() []NewOrderItem {
	return c.items
}

// PaymentAmount returns the total the customer owes.
func (c CreateOrderCommand) PaymentAmount() decimal.Decimal {
	return c.paymentAmount
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setItems(items []NewOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	c.items = make([]NewOrderItem, len(items))
	copy(c.items, items)
	return nil
}
