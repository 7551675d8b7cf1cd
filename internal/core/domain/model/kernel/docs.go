// Package kernel provides core domain primitives shared across the
// fulfillment domain model.
//
// It currently contains a single building block:
//   - UUID: an immutable value object for entity and aggregate identifiers,
//     with validation and comparison behavior.
//
// Kernel types are immutable and thread-safe, enforce their own invariants,
// and can only be created through factory functions.
package kernel
