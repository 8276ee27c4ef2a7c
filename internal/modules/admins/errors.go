package admins

import "errors"

var (
	ErrNotFound          = errors.New("admin user not found")
	ErrBadCredentials    = errors.New("invalid username or password")
	ErrIncorrectPassword = errors.New("current password is incorrect")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
	ErrUsernameTaken     = errors.New("username already in use")
	ErrEmailTaken        = errors.New("email already in use")
)

// PolicyError is a password-complexity failure with a user-facing
// message. Checks run in a fixed order; the first failure wins.
type PolicyError struct {
	Msg string
}

func (e *PolicyError) Error() string { return e.Msg }
