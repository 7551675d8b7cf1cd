package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Assignment binds an order to a delivery partner. The partner's name and
// phone are copied at assignment time, not referenced, because registry data
// may change while the delivery is in flight.
type Assignment struct {
	partnerID             kernel.UUID
	partnerName           string
	partnerPhone          string
	estimatedDeliveryTime time.Time
	assignedAt            time.Time
}

// NewAssignment creates a validated assignment snapshot.
func NewAssignment(
	partnerID kernel.UUID,
	partnerName string,
	partnerPhone string,
	estimatedDeliveryTime time.Time,
	assignedAt time.Time,
) (Assignment, error) {
	var a Assignment

	if err := errors.Join(
		a.setPartnerID(partnerID),
		a.setPartnerName(partnerName),
		a.setPartnerPhone(partnerPhone),
		a.setTimes(estimatedDeliveryTime, assignedAt),
	); err != nil {
		return Assignment{}, err
	}

	return a, nil
}

// PartnerID returns the assigned partner's identifier.
func (a Assignment) PartnerID() kernel.UUID {
	return a.partnerID
}

// PartnerName returns the partner name snapshot taken at assignment time.
func (a Assignment) PartnerName() string {
	return a.partnerName
}

// PartnerPhone returns the partner phone snapshot taken at assignment time.
func (a Assignment) PartnerPhone() string {
	return a.partnerPhone
}

// EstimatedDeliveryTime returns the expected delivery completion time.
func (a Assignment) EstimatedDeliveryTime() time.Time {
	return a.estimatedDeliveryTime
}

// AssignedAt returns when the assignment was made.
func (a Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

func (a *Assignment) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	a.partnerID = partnerID
	return nil
}

func (a *Assignment) setPartnerName(partnerName string) error {
	if partnerName == "" {
		return errs.NewValueIsRequiredError("partner name")
	}
	a.partnerName = partnerName
	return nil
}

func (a *Assignment) setPartnerPhone(partnerPhone string) error {
	if partnerPhone == "" {
		return errs.NewValueIsRequiredError("partner phone")
	}
	a.partnerPhone = partnerPhone
	return nil
}

func (a *Assignment) setTimes(estimatedDeliveryTime, assignedAt time.Time) error {
	if assignedAt.IsZero() {
		return errs.NewValueIsRequiredError("assigned at")
	}
	a.estimatedDeliveryTime = estimatedDeliveryTime
	a.assignedAt = assignedAt
	return nil
}
