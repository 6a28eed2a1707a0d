package domain

import "errors"

// Domain error kinds. Workflow functions return these instead of raw storage
// errors; the HTTP layer alone decides the status code for each kind.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)
