package pickup

import "errors"

var (
	// ErrNotFound is returned when the referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when another agent already claimed the pickup
	ErrConflict = errors.New("pickup already assigned to another agent")

	// ErrForbidden is returned when the actor has no rights over the target
	ErrForbidden = errors.New("not authorized")

	// ErrInvalidStatus is returned for unrecognized status values
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidTransition is returned for backward or repeated transitions
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned when required fields are missing or malformed
	ErrInvalidInput = errors.New("invalid input")
)
