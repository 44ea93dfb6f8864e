package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidPrecondition = errors.New("invalid precondition")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrForbidden           = errors.New("forbidden")

	// ErrNotCheckedIn is returned by CheckOut when there is no check-in for today.
	ErrNotCheckedIn = fmt.Errorf("not checked in today: %w", ErrInvalidPrecondition)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %q: %w", what, id, ErrNotFound)
}
