// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. The assignment snapshot is denormalized into nullable columns
// on the order row; items and status history live in child tables keyed by
// order id.
type OrderDTO struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber           string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status                int             `gorm:"type:int;not null;index"`
	PaymentAmount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus         int             `gorm:"type:int;not null"`
	CustomerName          string          `gorm:"type:varchar(255);not null"`
	CustomerPhone         string          `gorm:"type:varchar(32);not null"`
	CustomerAddress       string          `gorm:"type:text;not null"`
	PartnerID             *uuid.UUID      `gorm:"type:uuid;index"`
	PartnerName           *string         `gorm:"type:varchar(255)"`
	PartnerPhone          *string         `gorm:"type:varchar(32)"`
	EstimatedDeliveryTime *time.Time      `gorm:"type:timestamptz"`
	AssignedAt            *time.Time      `gorm:"type:timestamptz"`
	CreatedAt             time.Time       `gorm:"type:timestamptz;not null"`
	Items                 []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History               []HistoryDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the order_items table. Position
// preserves the line order the order was created with.
type ItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"type:int;not null"`
	Unit       string          `gorm:"type:varchar(32);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsPacked   bool            `gorm:"type:boolean;not null"`
	Position   int             `gorm:"type:int;not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one status history row. The autoincrement id doubles
// as the append order, so reads sorted by id reproduce the lifecycle
// sequence.
type HistoryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     int       `gorm:"type:int;not null"`
	RecordedAt time.Time `gorm:"type:timestamptz;not null"`
	Note       string    `gorm:"type:text;not null;default:''"`
}

// TableName specifies the database table name for status history entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation,
// including line items, history entries, and the optional assignment
// snapshot.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    orderID,
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Unit:       item.Unit(),
			TotalPrice: item.TotalPrice(),
			IsPacked:   item.IsPacked(),
			Position:   i,
		})
	}

	history := make([]HistoryDTO, 0, len(aggregate.History()))
	for _, entry := range aggregate.History() {
		history = append(history, HistoryDTO{
			OrderID:    orderID,
			Status:     int(entry.Status()),
			RecordedAt: entry.Timestamp(),
			Note:       entry.Note(),
		})
	}

	dto := OrderDTO{
		ID:              orderID,
		OrderNumber:     aggregate.OrderNumber(),
		Status:          int(aggregate.Status()),
		PaymentAmount:   aggregate.PaymentAmount(),
		PaymentStatus:   int(aggregate.PaymentStatus()),
		CustomerName:    aggregate.Customer().Name(),
		CustomerPhone:   aggregate.Customer().Phone(),
		CustomerAddress: aggregate.Customer().Address(),
		CreatedAt:       aggregate.CreatedAt(),
		Items:           items,
		History:         history,
	}

	if assignment := aggregate.Assignment(); assignment != nil {
		partnerID := assignment.PartnerID().Bytes()
		partnerName := assignment.PartnerName()
		partnerPhone := assignment.PartnerPhone()
		estimated := assignment.EstimatedDeliveryTime()
		assignedAt := assignment.AssignedAt()

		dto.PartnerID = &partnerID
		dto.PartnerName = &partnerName
		dto.PartnerPhone = &partnerPhone
		dto.EstimatedDeliveryTime = &estimated
		dto.AssignedAt = &assignedAt
	}

	return dto
}

// toDomain converts a database DTO to an order aggregate. Items must be
// loaded sorted by position and history by id so the reconstructed aggregate
// preserves line order and lifecycle sequence.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.CustomerAddress)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDto := range dto.History {
		entry, historyErr := order.NewHistoryEntry(
			order.Status(historyDto.Status),
			historyDto.RecordedAt,
			historyDto.Note,
		)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, entry)
	}

	var assignment *order.Assignment
	if dto.PartnerID != nil {
		partnerID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		restored, assignErr := order.NewAssignment(
			partnerID,
			derefString(dto.PartnerName),
			derefString(dto.PartnerPhone),
			derefTime(dto.EstimatedDeliveryTime),
			derefTime(dto.AssignedAt),
		)
		if assignErr != nil {
			return nil, assignErr
		}
		assignment = &restored
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		order.Status(dto.Status),
		customer,
		items,
		dto.PaymentAmount,
		order.PaymentStatus(dto.PaymentStatus),
		assignment,
		dto.CreatedAt,
		history,
	)
}

// itemToDomain converts an order line DTO to its domain entity.
func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, dto.Name, dto.Quantity, dto.Unit, dto.TotalPrice, dto.IsPacked)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
