// Package apperrors defines sentinel errors shared across services and
// handlers. Handlers translate these into HTTP statuses with errors.Is.
package apperrors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidRole        = errors.New("invalid role")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleFilled         = errors.New("role already has an accepted application")
	ErrProfileNotApproved = errors.New("student profile not approved")
	ErrNotFunded          = errors.New("project is not funded")
	ErrAlreadyDistributed = errors.New("project salaries already distributed")
	ErrSplitExceeded      = errors.New("salary split total exceeds 100 percent")
)
