package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources. Lookups scoped
	// to a tenant report entities owned by another tenant the same way, so
	// existence never leaks across tenants.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrForbidden is a generic sentinel for plan-limit and subscription
	// status rejections.
	ErrForbidden = errors.New("forbidden")
)
