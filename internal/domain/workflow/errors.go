package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not valid for the
	// order's current status
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRoleDenied is returned when the transition exists but the acting
	// user's role is not in its allowed set
	ErrRoleDenied = errors.New("role not permitted for transition")

	// ErrInvalidStatus is returned when a status is not one of the six
	// lifecycle statuses
	ErrInvalidStatus = errors.New("invalid status")
)
