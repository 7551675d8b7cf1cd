// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence. The reservation operations use
// availability as a compare-and-swap guard so only one of N concurrent
// reservation attempts for a partner can succeed.
package partnerrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates.
type PartnerDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(255);not null"`
	PhoneNumber   string     `gorm:"type:varchar(32);not null"`
	IsAvailable   bool       `gorm:"type:boolean;not null;index"`
	ActiveOrderID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	var activeOrderID *uuid.UUID
	if id := aggregate.ActiveOrderID(); id != nil {
		raw := id.Bytes()
		activeOrderID = &raw
	}

	return PartnerDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		PhoneNumber:   aggregate.PhoneNumber(),
		IsAvailable:   aggregate.IsAvailable(),
		ActiveOrderID: activeOrderID,
	}
}

// toDomain converts a database DTO to a partner aggregate using
// RestoreDeliveryPartner.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var activeOrderID *kernel.UUID
	if dto.ActiveOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.ActiveOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrderID = &orderID
	}

	return partner.RestoreDeliveryPartner(id, dto.Name, dto.PhoneNumber, dto.IsAvailable, activeOrderID)
}
