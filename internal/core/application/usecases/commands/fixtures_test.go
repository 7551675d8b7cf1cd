package commands_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	items := make([]*order.Item, 0, 2)
	for i := 0; i < 2; i++ {
		item, err := order.NewItem(
			kernel.NewUUID(), fmt.Sprintf("Item %d", i+1), 1, "pcs", decimal.NewFromInt(100),
		)
		require.NoError(t, err)
		items = append(items, item)
	}

	customer, err := order.NewCustomer("Asha Rao", "+91-99-1234-5678", "14 MG Road, Bengaluru")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1042", customer, items, decimal.NewFromInt(200))
	require.NoError(t, err)

	if status == order.StatusNew {
		return o
	}
	require.NoError(t, o.Accept())
	if status == order.StatusAccepted {
		return o
	}
	require.NoError(t, o.StartPreparing())
	if status == order.StatusPreparing {
		return o
	}
	_, err = o.MarkReady()
	require.NoError(t, err)
	require.Equal(t, status, order.StatusReady)
	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildPartner(t *testing.T) *partner.DeliveryPartner {
	t.Helper()
	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi Kumar", "+91-98-7654-3210")
	require.NoError(t, err)
	return p
}
