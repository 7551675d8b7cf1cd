// Package guard provides the constructor guard pattern used by domain
// objects to detect zero-value instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes
// a nil validation error and the object was not properly constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their designated
// constructor from zero-value instances. Embed it as a private field and set
// it with NewConstructorGuard inside the constructor; a zero-value struct
// carries a zero-value guard and fails validation.
//
// Example:
//
//	type Order struct {
//	    id    kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func NewOrder(id kernel.UUID) Order {
//	    return Order{id: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (o Order) Validate() error {
//	    return o.guard.Validate(ErrOrderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
