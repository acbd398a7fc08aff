package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound is the sentinel for missing entities.
	ErrObjectNotFound = errors.New("object not found")
	// ErrVersionIsInvalid is the sentinel for optimistic lock conflicts: the entity was
	// modified by somebody else between read and write.
	ErrVersionIsInvalid = errors.New("version is invalid")
)

// ObjectNotFoundError reports that an entity with the given ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError that wraps the cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// VersionIsInvalidError reports a stale write: the stored version of the entity no
// longer matches the version the caller read.
type VersionIsInvalidError struct {
	ParamName string
	ID        any
	Version   int
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError for the entity read at version.
func NewVersionIsInvalidError(paramName string, id any, version int) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, ID: id, Version: version}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError that wraps the cause.
func NewVersionIsInvalidErrorWithCause(paramName string, id any, version int, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, ID: id, Version: version, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s %v was modified concurrently (read at version %d)",
		ErrVersionIsInvalid, e.ParamName, e.ID, e.Version)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
