package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus tracks whether the order's payment has been received.
// The engine records the flag for the seller's benefit; it never computes
// prices, taxes, or settlements.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not been confirmed yet.
	PaymentPending

	// PaymentReceived means payment has been confirmed.
	PaymentReceived
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentPending:  "pending",
		PaymentReceived: "received",
	}
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the value is pending or received.
func (p PaymentStatus) Validate() error {
	if p != PaymentPending && p != PaymentReceived {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}
