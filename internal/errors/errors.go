package errors

import (
	"errors"
	"fmt"
)

// Common error types for the library server
var (
	// Authentication errors
	ErrInvalidPassword    = errors.New("invalid password")
	ErrDuplicateAccount   = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Catalog errors
	ErrBookNotFound = errors.New("book not found")

	// Loan errors
	ErrLoanNotFound      = errors.New("loan not found")
	ErrNoLoanRecords     = errors.New("no loan records found for this user")
	ErrLoanAlreadyClosed = errors.New("loan already returned")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
