package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrdersByStatusQueryResponse is a one-line order summary with the
// packing progress the seller sees on the stage lists.
type GetOrdersByStatusQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerName  string
	PaymentAmount decimal.Decimal
	PackedCount   int
	TotalCount    int
	CreatedAt     time.Time
}

// GetOrdersByStatusQueryHandler lists orders in one pipeline stage.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for stage listings.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the listing, oldest order first.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_name,
			o.payment_amount,
			COUNT(i.id) FILTER (WHERE i.is_packed) AS packed_count,
			COUNT(i.id) AS total_count,
			o.created_at
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = ?
		GROUP BY o.id, o.order_number, o.customer_name, o.payment_amount, o.created_at
		ORDER BY o.created_at
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByStatusQueryResponse, 0)
	for rows.Next() {
		var (
			summary GetOrdersByStatusQueryResponse
			id      uuid.UUID
		)

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&summary.CustomerName,
			&summary.PaymentAmount,
			&summary.PackedCount,
			&summary.TotalCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		orders = append(orders, summary)
	}

	return orders, rows.Err()
}
