// Package guard provides a defensive-construction helper for commands and
// value objects: embedding a ConstructorGuard lets Validate detect structs
// that were created as zero values instead of through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a zero-value guard
// is validated and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes properly constructed objects from zero
// values. The internal flag can only be set through NewConstructorGuard,
// so any struct embedding a guard fails Validate unless it went through
// its designated constructor.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as
// properly constructed. Call it in every constructor:
//
//	func NewCloseOrderCommand(...) (CloseOrderCommand, error) {
//	    cmd := CloseOrderCommand{guard: guard.NewConstructorGuard()}
//	    ...
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns validationError, or ErrDefaultConstructorGuard when
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
