package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
)

// defaultDeliveryWindow is the estimate used when no window is configured.
const defaultDeliveryWindow = 45 * time.Minute

// DeliveryAssigner is the domain service that binds a ready order to a
// delivery partner.
//
// The pairing is transactional at the aggregate level: the partner is
// reserved first, and if the order then refuses the assignment the
// reservation is released again, so a failed pairing never strands a
// reserved partner.
//
// Example:
//
//	assigner := services.NewDeliveryAssigner(0)
//	if err := assigner.Assign(o, p); err != nil {
//	    if errors.Is(err, partner.ErrPartnerUnavailable) {
//	        // caller should re-list partners and pick another
//	    }
//	    return err
//	}
type DeliveryAssigner struct {
	deliveryWindow time.Duration
}

// NewDeliveryAssigner creates a DeliveryAssigner. A non-positive
// deliveryWindow selects the default estimate of 45 minutes.
func NewDeliveryAssigner(deliveryWindow time.Duration) DeliveryAssigner {
	if deliveryWindow <= 0 {
		deliveryWindow = defaultDeliveryWindow
	}
	return DeliveryAssigner{deliveryWindow: deliveryWindow}
}

// Assign reserves the partner for the order and binds the partner snapshot
// to the order.
//
// Returns:
//   - partner.ErrPartnerUnavailable when the partner is already reserved or
//     off shift; the caller decides whether to retry with another partner
//   - *order.IllegalTransitionError when the order is not ready
//   - validation errors for improperly constructed aggregates
//
// On any failure after the reservation the partner is released again, and
// both aggregates are left unchanged.
func (a DeliveryAssigner) Assign(o *order.Order, p *partner.DeliveryPartner) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := p.Reserve(o.ID()); err != nil {
		return err
	}

	eta := time.Now().UTC().Add(a.deliveryWindow)
	if err := o.Assign(p.ID(), p.Name(), p.PhoneNumber(), eta); err != nil {
		p.Release()
		return err
	}

	return nil
}
