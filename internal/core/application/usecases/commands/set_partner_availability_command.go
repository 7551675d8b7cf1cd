package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetPartnerAvailabilityCommandIsNotConstructed = errors.New(
	"SetPartnerAvailabilityCommand must be created via NewSetPartnerAvailabilityCommand constructor",
)

// SetPartnerAvailabilityCommand applies a partner-initiated availability
// toggle (going on or off shift). It is distinct from reservation: the
// assignment coordinator alone binds partners to orders.
type SetPartnerAvailabilityCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetPartnerAvailabilityCommand creates the command after validating the
// partner id.
func NewSetPartnerAvailabilityCommand(partnerID kernel.UUID, available bool) (SetPartnerAvailabilityCommand, error) {
	if err := partnerID.Validate(); err != nil {
		return SetPartnerAvailabilityCommand{}, err
	}

	return SetPartnerAvailabilityCommand{
		partnerID: partnerID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerAvailabilityCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to toggle.
func (c SetPartnerAvailabilityCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Available returns the requested availability state.
func (c SetPartnerAvailabilityCommand) Available() bool {
	return c.available
}
