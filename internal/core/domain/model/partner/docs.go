// Package partner implements the DeliveryPartner aggregate.
//
// A delivery partner carries at most one active order at a time. Whenever a
// partner holds an active order they are unavailable; reservation and
// release of a partner funnel exclusively through the assignment
// coordinator, while availability toggles (going on or off shift) are
// partner-initiated and refuse to free a partner that still holds an active
// order.
package partner
