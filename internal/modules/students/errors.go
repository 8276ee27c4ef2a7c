package students

import "errors"

var (
	// ErrNotActionable means the student row was missing or not in a
	// status that allows the requested transition (zero rows updated).
	ErrNotActionable = errors.New("student not actionable")

	ErrNotFound = errors.New("student not found")

	// ErrDuplicate covers the unique email/uli constraints.
	ErrDuplicate = errors.New("email or ULI already registered")
)
