// Package guard provides a small defensive-programming helper that makes it
// possible to tell whether a struct was created through its constructor or
// left as a zero value. Commands and value objects embed a ConstructorGuard
// and check it in their Validate methods.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller does not
// supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been built through its designated
// constructor. The zero value fails validation, so structs initialized with a
// composite literal are rejected before any operation runs on them.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state. Call it from
// the owning type's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
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
