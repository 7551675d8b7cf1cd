// Package order implements the Order aggregate and its status state machine.
//
// An order moves through a fixed fulfillment pipeline driven by seller
// actions:
//
//	new ──> accepted ──> preparing ──> ready ──> assigned ──> out_for_delivery ──> delivered
//	 │          │            │           │
//	 ├──> declined           │           │
//	 └──────────┴────────────┴───────────┴──> cancelled
//
// Status transitions only follow the edges above. Declined, delivered, and
// cancelled are terminal. Moves to declined or cancelled carry a mandatory
// reason that is persisted in the order's status history.
//
// The aggregate owns per-item packing state: items may only be packed or
// unpacked while the order is accepted or preparing. Marking an order ready
// never blocks on unpacked items; the packed/total count is reported to the
// caller and recorded in the history so the override stays auditable.
//
// A delivery assignment is present if and only if the order is assigned,
// out for delivery, or delivered. The assignment holds a snapshot of the
// partner's name and phone, copied at assignment time.
package order
