package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the ingress of externally created
// orders. Builds the aggregate in status "new" and persists it.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order ingress.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Constructs the customer
// snapshot, the item checklist, and the aggregate, then persists everything
// in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer, err := order.NewCustomer(cmd.Customer().Name, cmd.Customer().Phone, cmd.Customer().Address)
	if err != nil {
		return err
	}

	incoming := cmd.Items()
	items := make([]*order.Item, 0, len(incoming))
	for _, line := range incoming {
		item, itemErr := order.NewItem(line.ID, line.Name, line.Quantity, line.Unit, line.TotalPrice)
		if itemErr != nil {
			return itemErr
		}
		items = append(items, item)
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.OrderNumber(), customer, items, cmd.PaymentAmount())
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
