package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for the Order aggregate.
var (
	// ErrOrderIsNotConstructed is returned when an Order bypassed its constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrReasonIsRequired is returned when declining or cancelling without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")

	// ErrPackingNotAllowed is returned when mutating item packing outside the
	// accepted/preparing window.
	ErrPackingNotAllowed = errors.New("items can only be packed while the order is accepted or preparing")
)

// PackingProgress reports how many items of the order are confirmed packed.
// It is returned by MarkReady so a partial-pack override is an explicit,
// auditable decision of the caller rather than a silent side effect.
type PackingProgress struct {
	Packed int
	Total  int
}

// Order is the aggregate root of the fulfillment pipeline. It owns the
// status state machine, the per-item packing checklist, the append-only
// status history, and the optional delivery assignment.
//
// Invariants:
//   - status only moves along the edges documented in the package comment
//   - a delivery assignment exists iff status is assigned, out_for_delivery,
//     or delivered
//   - item packing is only mutable while status is accepted or preparing
//   - history is append-only
//
// All mutations go through aggregate methods; a failed mutation leaves the
// order unchanged.
type Order struct {
	// id is the immutable unique identifier of the order
	id kernel.UUID

	// orderNumber is the human-readable unique order reference
	orderNumber string

	// status is the current stage in the fulfillment pipeline
	status Status

	// items is the packing checklist, in the order given at creation
	items []*Item

	// paymentAmount is the total the customer owes
	paymentAmount decimal.Decimal

	// paymentStatus tracks whether payment has been confirmed
	paymentStatus PaymentStatus

	// customer is the read-only recipient snapshot
	customer Customer

	// assignment is the delivery partner binding (nil while unassigned)
	assignment *Assignment

	// createdAt is when the order entered the engine
	createdAt time.Time

	// history is the append-only record of statuses passed through
	history []HistoryEntry

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an order in status new with a pending payment and a
// seeded history entry. This is the ingress used when an externally created
// order enters the engine.
//
// Business rules:
//   - id must be a valid UUID and orderNumber non-empty
//   - the order must carry at least one item, with unique item ids
//   - paymentAmount must not be negative
//   - the customer snapshot must be complete
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	items []*Item,
	paymentAmount decimal.Decimal,
) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		status:        StatusNew,
		paymentStatus: PaymentPending,
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setItems(items),
		o.setPaymentAmount(paymentAmount),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, HistoryEntry{status: StatusNew, timestamp: now})
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its status,
// assignment, payment state, and history. It re-validates the coupling
// between status and assignment so corrupt rows cannot produce an aggregate
// that violates the invariants.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	status Status,
	customer Customer,
	items []*Item,
	paymentAmount decimal.Decimal,
	paymentStatus PaymentStatus,
	assignment *Assignment,
	createdAt time.Time,
	history []HistoryEntry,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customer),
		o.setItems(items),
		o.setPaymentAmount(paymentAmount),
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateCanHaveAssignment(assignment != nil),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.assignment = assignment
	o.createdAt = createdAt
	o.history = append(o.history, history...)
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's immutable unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the packing checklist. The slice is a copy; items are
// mutated only through SetItemPacked.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// PaymentAmount returns the total the customer owes.
func (o *Order) PaymentAmount() decimal.Decimal {
	return o.paymentAmount
}

// PaymentStatus reports whether payment has been confirmed.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Customer returns the read-only recipient snapshot.
func (o *Order) Customer() Customer {
	return o.customer
}

// Assignment returns the delivery partner binding, or nil while unassigned.
func (o *Order) Assignment() *Assignment {
	return o.assignment
}

// CreatedAt returns when the order entered the engine.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// History returns a copy of the append-only status history.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// AvailableActions returns the legal actions for the current status.
func (o *Order) AvailableActions() []Action {
	return AvailableActions(o.status)
}

// PackingProgress reports the packed/total item counts.
func (o *Order) PackingProgress() PackingProgress {
	progress := PackingProgress{Total: len(o.items)}
	for _, item := range o.items {
		if item.isPacked {
			progress.Packed++
		}
	}
	return progress
}

// Accept moves the order from new to accepted.
func (o *Order) Accept() error {
	return o.transitionTo(StatusAccepted, "")
}

// Decline moves the order from new to declined. The reason is mandatory and
// is persisted in the history note.
func (o *Order) Decline(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	return o.transitionTo(StatusDeclined, reason)
}

// StartPreparing moves the order from accepted to preparing.
func (o *Order) StartPreparing() error {
	return o.transitionTo(StatusPreparing, "")
}

// MarkReady moves the order from preparing to ready and reports the packing
// progress. Unpacked items never block the transition; the packed/total
// count is returned to the caller and recorded in the history note so the
// override decision stays auditable.
func (o *Order) MarkReady() (PackingProgress, error) {
	progress := o.PackingProgress()
	note := fmt.Sprintf("packed %d of %d items", progress.Packed, progress.Total)

	if err := o.transitionTo(StatusReady, note); err != nil {
		return PackingProgress{}, err
	}
	return progress, nil
}

// Assign moves the order from ready to assigned and binds the partner
// snapshot. The caller (the assignment coordinator) must already hold the
// partner's reservation.
func (o *Order) Assign(
	partnerID kernel.UUID,
	partnerName string,
	partnerPhone string,
	estimatedDeliveryTime time.Time,
) error {
	assignment, err := NewAssignment(partnerID, partnerName, partnerPhone, estimatedDeliveryTime, time.Now().UTC())
	if err != nil {
		return err
	}

	note := fmt.Sprintf("assigned to %s", assignment.PartnerName())
	if err = o.transitionTo(StatusAssigned, note); err != nil {
		return err
	}

	o.assignment = &assignment
	return nil
}

// StartDelivery moves the order from assigned to out_for_delivery.
func (o *Order) StartDelivery() error {
	return o.transitionTo(StatusOutForDelivery, "")
}

// MarkDelivered moves the order from out_for_delivery to delivered. The
// assignment snapshot is retained on the delivered order.
func (o *Order) MarkDelivered() error {
	return o.transitionTo(StatusDelivered, "")
}

// Cancel moves the order to cancelled. Legal from new, accepted, preparing,
// and ready; assigned and later stages cannot be cancelled. The reason is
// mandatory and is persisted in the history note.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}
	return o.transitionTo(StatusCancelled, reason)
}

// SetItemPacked flips an item's packed flag. Legal only while the order is
// accepted or preparing. Packing updates commute and are idempotent.
//
// Returns:
//   - ErrOrderTerminal when the order is in a terminal status
//   - ErrPackingNotAllowed outside the accepted/preparing window
//   - *ItemNotFoundError when itemID does not belong to the order
func (o *Order) SetItemPacked(itemID kernel.UUID, packed bool) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	if !o.status.AllowsPacking() {
		return ErrPackingNotAllowed
	}

	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			item.setPacked(packed)
			return nil
		}
	}

	return NewItemNotFoundError(itemID)
}

// MarkPaymentReceived records that payment for the order was confirmed.
// The operation is idempotent.
func (o *Order) MarkPaymentReceived() error {
	if o.status.IsTerminal() && o.status != StatusDelivered {
		return ErrOrderTerminal
	}
	o.paymentStatus = PaymentReceived
	return nil
}

// transitionTo validates the status move and appends a history entry.
// A failed validation leaves the order unchanged.
func (o *Order) transitionTo(next Status, note string) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.history = append(o.history, HistoryEntry{
		status:    newStatus,
		timestamp: time.Now().UTC(),
		note:      note,
	})
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if item == nil {
			return ErrItemIsNotConstructed
		}
		if _, ok := seen[item.id]; ok {
			return errs.NewValueIsInvalidErrorWithCause("order items", fmt.Errorf("duplicate item id %s", item.id))
		}
		seen[item.id] = struct{}{}
	}

	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setPaymentAmount(paymentAmount decimal.Decimal) error {
	if paymentAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("payment amount", fmt.Errorf("%s is negative", paymentAmount))
	}
	o.paymentAmount = paymentAmount
	return nil
}
