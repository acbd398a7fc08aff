// Package errs provides standardized error types for the food delivery service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain model, the use cases and the transport adapters.
//
// The package includes several groups of error types:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - Lookup: ObjectNotFoundError
//   - Concurrency: VersionIsInvalidError (optimistic lock conflicts)
//   - Order lifecycle: InvalidTransitionError, TerminalStateError, InvalidStateError,
//     PermissionDeniedError, NotAssignedError, AlreadyRatedError
//   - Assignment: PartnerUnavailableError, PartnerBusyError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf classifies any error into a Kind so that transports can map failures
// to responses without knowing every concrete type, and CurrentStatus exposes
// the order status an error was raised against so clients can explain why an
// action was rejected.
package errs
