package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle stage of an order. It implements a state
// machine whose only legal moves are listed in the statusTransitions edge
// table; everything else fails with an IllegalTransitionError, and any move
// out of a terminal status fails with ErrOrderTerminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status of an externally created order,
	// waiting for the seller to accept or decline it.
	StatusNew

	// StatusAccepted means the seller confirmed the order.
	// Item packing becomes legal in this status.
	StatusAccepted

	// StatusPreparing means the seller is actively packing items.
	StatusPreparing

	// StatusReady means the order can be matched to a delivery partner.
	StatusReady

	// StatusAssigned means a delivery partner has been reserved and bound
	// to the order.
	StatusAssigned

	// StatusOutForDelivery means the partner picked up the order.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusCancelled is the terminal status for orders cancelled before
	// assignment completes the handoff.
	StatusCancelled

	// StatusDeclined is the terminal status for orders the seller refused.
	StatusDeclined
)

// Domain errors for status transitions.
var (
	// ErrIllegalTransition is the sentinel wrapped by IllegalTransitionError.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrOrderTerminal is returned when mutating an order in a terminal status.
	ErrOrderTerminal = errors.New("order is in a terminal status")
)

// IllegalTransitionError reports a transition attempt that is not an edge of
// the status graph. It leaves the order unchanged.
type IllegalTransitionError struct {
	From Status
	To   Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given edge.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// statusTransitions is the edge table of the order state machine.
// These edges are the only legal moves.
func statusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:            {StatusAccepted, StatusDeclined, StatusCancelled},
		StatusAccepted:       {StatusPreparing, StatusCancelled},
		StatusPreparing:      {StatusReady, StatusCancelled},
		StatusReady:          {StatusAssigned, StatusCancelled},
		StatusAssigned:       {StatusOutForDelivery},
		StatusOutForDelivery: {StatusDelivered},
		StatusDelivered:      {},
		StatusCancelled:      {},
		StatusDeclined:       {},
	}
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusNew:            "new",
		StatusAccepted:       "accepted",
		StatusPreparing:      "preparing",
		StatusReady:          "ready",
		StatusAssigned:       "assigned",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusCancelled:      "cancelled",
		StatusDeclined:       "declined",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns an error for unknown or empty input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status value is one of the defined statuses.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := statusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	edges, ok := statusTransitions()[s]
	return ok && len(edges) == 0
}

// CanTransitionTo reports whether next is a legal edge from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, edge := range statusTransitions()[s] {
		if edge == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move from s to next and returns the new status.
//
// Returns:
//   - (next, nil) when next is an edge of the status graph
//   - (0, ErrOrderTerminal) when s is terminal
//   - (0, *IllegalTransitionError) for any other non-edge
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, ErrOrderTerminal
	}
	if !s.CanTransitionTo(next) {
		return 0, NewIllegalTransitionError(s, next)
	}
	return next, nil
}

// ValidateCanHaveAssignment validates the consistency between the status and
// the presence of a delivery assignment. An assignment must exist exactly
// while the order is assigned, out for delivery, or delivered.
func (s Status) ValidateCanHaveAssignment(assigned bool) error {
	requiresAssignment := s == StatusAssigned || s == StatusOutForDelivery || s == StatusDelivered

	if assigned && !requiresAssignment {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a delivery assignment", s),
		)
	}

	if !assigned && requiresAssignment {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no delivery assignment", s),
		)
	}

	return nil
}

// AllowsPacking reports whether item packing mutations are legal in this status.
func (s Status) AllowsPacking() bool {
	return s == StatusAccepted || s == StatusPreparing
}
