// Package services contains domain services that coordinate behavior across
// multiple aggregates. DeliveryAssigner pairs a ready order with an
// available delivery partner while preserving the single-active-order
// invariant of the partner aggregate.
package services
