// Package guard provides a construction marker for value objects,
// commands and queries. Embedding a ConstructorGuard lets a type distinguish
// instances built through its constructor from zero values, so validation can
// reject objects that bypassed the factory function.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value reports the object as not constructed.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object as
// constructed. Call it inside the object's constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was built through its constructor.
// Otherwise it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
