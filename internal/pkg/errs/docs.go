// Package errs provides standardized error types for the tracking application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed or incomplete input, recoverable by caller correction
//   - ObjectNotFoundError: a referenced order, milestone, template or row
//     does not exist
//   - InvalidTransitionError: an attempted status change violates the
//     order or milestone state machine
//   - CannotCloseError: closure preconditions unmet, carrying the
//     human-readable reason shown in review workflows
//   - InvalidOperationError: structural rule violations such as deleting
//     a non-draft order or deactivating the default template
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
package errs
