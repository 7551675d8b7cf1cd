package order_test

import (
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer(t *testing.T) order.Customer {
	t.Helper()
	customer, err := order.NewCustomer("Asha Rao", "+91-99-1234-5678", "14 MG Road, Bengaluru")
	require.NoError(t, err)
	return customer
}

func validItems(t *testing.T, count int) []*order.Item {
	t.Helper()
	items := make([]*order.Item, 0, count)
	for i := 0; i < count; i++ {
		item, err := order.NewItem(
			kernel.NewUUID(),
			fmt.Sprintf("Item %d", i+1),
			1,
			"pcs",
			decimal.NewFromInt(100),
		)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func newTestOrder(t *testing.T, itemCount int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-1042",
		validCustomer(t),
		validItems(t, itemCount),
		decimal.NewFromInt(300),
	)
	require.NoError(t, err)
	return o
}

func orderInStatus(t *testing.T, target order.Status) *order.Order {
	t.Helper()
	o := newTestOrder(t, 3)

	steps := []func() error{
		o.Accept,
		o.StartPreparing,
		func() error {
			_, err := o.MarkReady()
			return err
		},
		func() error {
			return o.Assign(kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", time.Now().UTC().Add(45*time.Minute))
		},
		o.StartDelivery,
		o.MarkDelivered,
	}

	for _, step := range steps {
		if o.Status() == target {
			return o
		}
		require.NoError(t, step())
	}

	require.Equal(t, target, o.Status())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order in new status with seeded history", func(t *testing.T) {
		o := newTestOrder(t, 2)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "ORD-1042", o.OrderNumber())
		assert.Len(t, o.Items(), 2)
		assert.Nil(t, o.Assignment())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusNew, history[0].Status())
	})

	t.Run("should fail with empty order number", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "", validCustomer(t), validItems(t, 1), decimal.NewFromInt(100),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", validCustomer(t), nil, decimal.NewFromInt(100),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with duplicate item ids", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), "Milk", 1, "litre", decimal.NewFromInt(50))
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", validCustomer(t),
			[]*order.Item{item, item}, decimal.NewFromInt(100),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "duplicate item id")
	})

	t.Run("should fail with negative payment amount", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", validCustomer(t), validItems(t, 1), decimal.NewFromInt(-1),
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("should fail with incomplete customer", func(t *testing.T) {
		var emptyCustomer order.Customer

		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", emptyCustomer, validItems(t, 1), decimal.NewFromInt(100),
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject assigned status without assignment", func(t *testing.T) {
		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-1", order.StatusAssigned,
			validCustomer(t), validItems(t, 1), decimal.NewFromInt(100),
			order.PaymentPending, nil, time.Now().UTC(), nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "no delivery assignment")
	})

	t.Run("should reject early status carrying an assignment", func(t *testing.T) {
		assignment, err := order.NewAssignment(
			kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210",
			time.Now().UTC().Add(time.Hour), time.Now().UTC(),
		)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-1", order.StatusPreparing,
			validCustomer(t), validItems(t, 1), decimal.NewFromInt(100),
			order.PaymentPending, &assignment, time.Now().UTC(), nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should restore a delivered order with its assignment and history", func(t *testing.T) {
		now := time.Now().UTC()
		assignment, err := order.NewAssignment(
			kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", now.Add(time.Hour), now,
		)
		require.NoError(t, err)

		entry, err := order.NewHistoryEntry(order.StatusNew, now.Add(-time.Hour), "")
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-1", order.StatusDelivered,
			validCustomer(t), validItems(t, 1), decimal.NewFromInt(100),
			order.PaymentReceived, &assignment, now.Add(-2*time.Hour),
			[]order.HistoryEntry{entry},
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusDelivered, o.Status())
		require.NotNil(t, o.Assignment())
		assert.Len(t, o.History(), 1)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk the full happy path and record history", func(t *testing.T) {
		o := newTestOrder(t, 2)

		require.NoError(t, o.Accept())
		require.NoError(t, o.StartPreparing())
		for _, item := range o.Items() {
			require.NoError(t, o.SetItemPacked(item.ID(), true))
		}

		progress, err := o.MarkReady()
		require.NoError(t, err)
		assert.Equal(t, order.PackingProgress{Packed: 2, Total: 2}, progress)

		require.NoError(t, o.Assign(
			kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", time.Now().UTC().Add(45*time.Minute),
		))
		require.NotNil(t, o.Assignment())
		assert.Equal(t, order.StatusAssigned, o.Status())

		require.NoError(t, o.StartDelivery())
		require.NoError(t, o.MarkDelivered())
		assert.Equal(t, order.StatusDelivered, o.Status())

		statuses := make([]order.Status, 0)
		for _, entry := range o.History() {
			statuses = append(statuses, entry.Status())
		}
		assert.Equal(t, []order.Status{
			order.StatusNew, order.StatusAccepted, order.StatusPreparing,
			order.StatusReady, order.StatusAssigned, order.StatusOutForDelivery,
			order.StatusDelivered,
		}, statuses)
	})

	t.Run("should reject skipping stages", func(t *testing.T) {
		o := newTestOrder(t, 1)

		err := o.StartPreparing()
		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.StatusNew, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("should require a reason to decline", func(t *testing.T) {
		o := newTestOrder(t, 1)

		err := o.Decline("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.StatusNew, o.Status())

		require.NoError(t, o.Decline("out of stock"))
		assert.Equal(t, order.StatusDeclined, o.Status())

		history := o.History()
		assert.Equal(t, "out of stock", history[len(history)-1].Note())
	})

	t.Run("should require a reason to cancel", func(t *testing.T) {
		o := newTestOrder(t, 1)

		err := o.Cancel("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		require.NoError(t, o.Cancel("customer changed their mind"))
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should not cancel once a partner is assigned", func(t *testing.T) {
		o := orderInStatus(t, order.StatusAssigned)

		err := o.Cancel("too late")
		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.StatusAssigned, o.Status())
	})

	t.Run("should freeze terminal orders", func(t *testing.T) {
		o := orderInStatus(t, order.StatusDelivered)

		require.ErrorIs(t, o.Accept(), order.ErrOrderTerminal)
		require.ErrorIs(t, o.Cancel("no"), order.ErrOrderTerminal)
		_, err := o.MarkReady()
		require.ErrorIs(t, err, order.ErrOrderTerminal)
	})
}

func TestOrder_MarkReady(t *testing.T) {
	t.Run("should not require a complete checklist", func(t *testing.T) {
		o := newTestOrder(t, 3)
		require.NoError(t, o.Accept())
		require.NoError(t, o.StartPreparing())

		progress, err := o.MarkReady()

		require.NoError(t, err)
		assert.Equal(t, order.PackingProgress{Packed: 0, Total: 3}, progress)
		assert.Equal(t, order.StatusReady, o.Status())

		history := o.History()
		assert.Equal(t, "packed 0 of 3 items", history[len(history)-1].Note())
	})

	t.Run("should report partial progress in the history note", func(t *testing.T) {
		o := newTestOrder(t, 3)
		require.NoError(t, o.Accept())
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.SetItemPacked(o.Items()[0].ID(), true))

		progress, err := o.MarkReady()

		require.NoError(t, err)
		assert.Equal(t, order.PackingProgress{Packed: 1, Total: 3}, progress)

		history := o.History()
		assert.Equal(t, "packed 1 of 3 items", history[len(history)-1].Note())
	})
}

func TestOrder_SetItemPacked(t *testing.T) {
	t.Run("should be legal only while accepted or preparing", func(t *testing.T) {
		o := newTestOrder(t, 1)
		itemID := o.Items()[0].ID()

		require.ErrorIs(t, o.SetItemPacked(itemID, true), order.ErrPackingNotAllowed)

		require.NoError(t, o.Accept())
		require.NoError(t, o.SetItemPacked(itemID, true))

		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.SetItemPacked(itemID, false))

		_, err := o.MarkReady()
		require.NoError(t, err)
		require.ErrorIs(t, o.SetItemPacked(itemID, true), order.ErrPackingNotAllowed)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		o := newTestOrder(t, 2)
		require.NoError(t, o.Accept())
		itemID := o.Items()[0].ID()

		require.NoError(t, o.SetItemPacked(itemID, true))
		require.NoError(t, o.SetItemPacked(itemID, true))

		assert.Equal(t, order.PackingProgress{Packed: 1, Total: 2}, o.PackingProgress())
	})

	t.Run("should reject ids not belonging to the order", func(t *testing.T) {
		o := newTestOrder(t, 1)
		require.NoError(t, o.Accept())

		err := o.SetItemPacked(kernel.NewUUID(), true)

		require.ErrorIs(t, err, order.ErrItemNotFound)

		var notFound *order.ItemNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("should report terminal before packing window", func(t *testing.T) {
		o := newTestOrder(t, 1)
		require.NoError(t, o.Cancel("dup"))

		err := o.SetItemPacked(o.Items()[0].ID(), true)
		require.ErrorIs(t, err, order.ErrOrderTerminal)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should bind the partner snapshot from ready", func(t *testing.T) {
		o := orderInStatus(t, order.StatusReady)
		partnerID := kernel.NewUUID()
		eta := time.Now().UTC().Add(45 * time.Minute)

		require.NoError(t, o.Assign(partnerID, "Ravi Kumar", "+91-98-7654-3210", eta))

		assignment := o.Assignment()
		require.NotNil(t, assignment)
		assert.Equal(t, partnerID, assignment.PartnerID())
		assert.Equal(t, "Ravi Kumar", assignment.PartnerName())
		assert.True(t, eta.Equal(assignment.EstimatedDeliveryTime()))
		assert.False(t, assignment.AssignedAt().IsZero())

		history := o.History()
		assert.Equal(t, "assigned to Ravi Kumar", history[len(history)-1].Note())
	})

	t.Run("should reject assignment outside ready", func(t *testing.T) {
		o := newTestOrder(t, 1)

		err := o.Assign(kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210", time.Now().UTC().Add(time.Hour))

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Nil(t, o.Assignment())
	})
}

func TestOrder_MarkPaymentReceived(t *testing.T) {
	t.Run("should be idempotent", func(t *testing.T) {
		o := newTestOrder(t, 1)

		require.NoError(t, o.MarkPaymentReceived())
		require.NoError(t, o.MarkPaymentReceived())

		assert.Equal(t, order.PaymentReceived, o.PaymentStatus())
	})

	t.Run("should be allowed after delivery", func(t *testing.T) {
		o := orderInStatus(t, order.StatusDelivered)

		require.NoError(t, o.MarkPaymentReceived())
		assert.Equal(t, order.PaymentReceived, o.PaymentStatus())
	})

	t.Run("should be rejected on cancelled and declined orders", func(t *testing.T) {
		cancelled := newTestOrder(t, 1)
		require.NoError(t, cancelled.Cancel("dup"))
		require.ErrorIs(t, cancelled.MarkPaymentReceived(), order.ErrOrderTerminal)

		declined := newTestOrder(t, 1)
		require.NoError(t, declined.Decline("out of stock"))
		require.ErrorIs(t, declined.MarkPaymentReceived(), order.ErrOrderTerminal)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero-value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
	})
}
