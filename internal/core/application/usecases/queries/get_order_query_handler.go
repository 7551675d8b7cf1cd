package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemView is the read model of one checklist line.
type OrderItemView struct {
	ID         kernel.UUID
	Name       string
	Quantity   int
	Unit       string
	TotalPrice decimal.Decimal
	IsPacked   bool
}

// OrderAssignmentView is the read model of the delivery binding.
type OrderAssignmentView struct {
	PartnerID             kernel.UUID
	PartnerName           string
	PartnerPhone          string
	EstimatedDeliveryTime time.Time
	AssignedAt            time.Time
}

// OrderHistoryView is the read model of one status history entry.
type OrderHistoryView struct {
	Status    string
	Timestamp time.Time
	Note      string
}

// GetOrderQueryResponse is the full order read model, including the legal
// actions for the current status and the packing progress feeding the
// ready-override decision.
type GetOrderQueryResponse struct {
	ID               kernel.UUID
	OrderNumber      string
	Status           string
	Items            []OrderItemView
	PaymentAmount    decimal.Decimal
	PaymentStatus    string
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	Assignment       *OrderAssignmentView
	CreatedAt        time.Time
	History          []OrderHistoryView
	AvailableActions []order.Action
	PackedCount      int
	TotalCount       int
}

// GetOrderQueryHandler reads a single order with its items and history.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the read. Returns errs.ObjectNotFoundError for unknown
// order ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, status, err := h.readOrderRow(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.Items, err = h.readItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.History, err = h.readHistory(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.AvailableActions = order.AvailableActions(status)
	response.TotalCount = len(response.Items)
	for _, item := range response.Items {
		if item.IsPacked {
			response.PackedCount++
		}
	}

	return response, nil
}

func (h GetOrderQueryHandler) readOrderRow(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, order.Status, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			payment_amount,
			payment_status,
			customer_name,
			customer_phone,
			customer_address,
			partner_id,
			partner_name,
			partner_phone,
			estimated_delivery_time,
			assigned_at,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	var (
		response      GetOrderQueryResponse
		id            uuid.UUID
		status        int
		paymentStatus int
		partnerID     *uuid.UUID
		partnerName   sql.NullString
		partnerPhone  sql.NullString
		estimatedAt   sql.NullTime
		assignedAt    sql.NullTime
	)

	err := row.Scan(
		&id,
		&response.OrderNumber,
		&status,
		&response.PaymentAmount,
		&paymentStatus,
		&response.CustomerName,
		&response.CustomerPhone,
		&response.CustomerAddress,
		&partnerID,
		&partnerName,
		&partnerPhone,
		&estimatedAt,
		&assignedAt,
		&response.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetOrderQueryResponse{}, 0, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, 0, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, 0, err
	}

	orderStatus := order.Status(status)
	response.Status = orderStatus.String()
	response.PaymentStatus = order.PaymentStatus(paymentStatus).String()

	if partnerID != nil {
		assignmentPartnerID, idErr := kernel.UUIDFromBytes((*partnerID)[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, 0, idErr
		}
		response.Assignment = &OrderAssignmentView{
			PartnerID:             assignmentPartnerID,
			PartnerName:           partnerName.String,
			PartnerPhone:          partnerPhone.String,
			EstimatedDeliveryTime: estimatedAt.Time,
			AssignedAt:            assignedAt.Time,
		}
	}

	return response, orderStatus, nil
}

func (h GetOrderQueryHandler) readItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, quantity, unit, total_price, is_packed
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item OrderItemView
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &item.Name, &item.Quantity, &item.Unit, &item.TotalPrice, &item.IsPacked); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) readHistory(ctx context.Context, orderID kernel.UUID) ([]OrderHistoryView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, recorded_at, note
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]OrderHistoryView, 0)
	for rows.Next() {
		var (
			entry  OrderHistoryView
			status int
			note   sql.NullString
		)

		if err = rows.Scan(&status, &entry.Timestamp, &note); err != nil {
			return nil, err
		}

		entry.Status = order.Status(status).String()
		entry.Note = note.String
		history = append(history, entry)
	}

	return history, rows.Err()
}
