package application

import (
	"errors"
	"fmt"
)

// Error classes. Every specific error below wraps exactly one of them, so
// callers can match either the class or the specific error with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrFieldsMissing    = fmt.Errorf("%w: username, email and password are required", ErrValidation)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be at least 1", ErrValidation)

	ErrEmailTaken = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuth)
	ErrNotAuthenticated   = fmt.Errorf("%w: login required", ErrAuth)
	ErrForbidden          = fmt.Errorf("%w: insufficient role", ErrAuth)

	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	ErrCheckoutIncomplete = errors.New("some purchase lines could not be recorded")
	ErrExportUnavailable  = errors.New("history export storage not configured")
)
