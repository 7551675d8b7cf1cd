package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterPartnerCommandIsNotConstructed = errors.New(
	"RegisterPartnerCommand must be created via NewRegisterPartnerCommand constructor",
)

// RegisterPartnerCommand adds a delivery partner to the registry. Partners
// register externally; the engine only tracks their availability and active
// order from that point on.
type RegisterPartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID   kernel.UUID
	name        string
	phoneNumber string

	guard guard.ConstructorGuard
}

// NewRegisterPartnerCommand creates the command after validating the id,
// name, and phone number.
func NewRegisterPartnerCommand(partnerID kernel.UUID, name, phoneNumber string) (RegisterPartnerCommand, error) {
	cmd := RegisterPartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
		cmd.setPhoneNumber(phoneNumber),
	); err != nil {
		return RegisterPartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterPartnerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPartnerCommandIsNotConstructed)
}

// PartnerID returns the new partner's identifier.
func (c RegisterPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the partner's display name.
func (c RegisterPartnerCommand) Name() string {
	return c.name
}

// PhoneNumber returns the partner's contact phone.
func (c RegisterPartnerCommand) PhoneNumber() string {
	return c.phoneNumber
}

func (c *RegisterPartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *RegisterPartnerCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *RegisterPartnerCommand) setPhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return errs.NewValueIsRequiredError("phone number")
	}

	c.phoneNumber = phoneNumber
	return nil
}
