package models

import "errors"

// ValidationError reports malformed or missing input: required fields
// left empty, a status or priority outside the enumerated sets, a
// deadline in the wrong format, or a bad parent reference.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports that a project or task id did not resolve.
// Callers should treat this as stale data rather than a crash.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + e.Key
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}
