package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
)

// Customer is read-only reference data identifying the recipient of an
// order. The engine does not own customer records; it only carries the
// snapshot needed for fulfillment and delivery handoff.
type Customer struct {
	name    string
	phone   string
	address string
}

// NewCustomer creates a customer snapshot with validation.
// Name, phone, and address are all required.
func NewCustomer(name, phone, address string) (Customer, error) {
	var c Customer

	if err := errors.Join(
		c.setName(name),
		c.setPhone(phone),
		c.setAddress(address),
	); err != nil {
		return Customer{}, err
	}

	return c, nil
}

// Validate checks the snapshot is complete. A zero-value Customer fails.
func (c Customer) Validate() error {
	if c.name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if c.phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	if c.address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	return nil
}

// Name returns the customer's name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's contact phone.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the delivery address.
func (c Customer) Address() string {
	return c.address
}

func (c *Customer) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("customer address")
	}
	c.address = address
	return nil
}
