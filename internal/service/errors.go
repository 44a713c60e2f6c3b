package service

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserNotFound is returned when an email or id matches no user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidToken is returned when a reset token is unknown or has
	// already been consumed.
	ErrInvalidToken = errors.New("invalid reset token")
	// ErrEmptyCredentials is returned by Register for a blank email or
	// password. No stronger password policy is enforced.
	ErrEmptyCredentials = errors.New("email and password must not be empty")
)
