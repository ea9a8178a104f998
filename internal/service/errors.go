package service

import (
	"errors"
	"fmt"

	"github.com/rongwang/txvault/internal/repository"
)

var (
	// ErrValidation marks every business-rule rejection
	ErrValidation = errors.New("validation failed")

	// ErrRecordNotFound is the store's not-found condition
	ErrRecordNotFound = repository.ErrRecordNotFound

	ErrAccountNotFound     = fmt.Errorf("requested account_id not found: %w", ErrRecordNotFound)
	ErrMainUserConflict    = errors.New("main user already exists, cannot create another one")
	ErrImmutableField      = errors.New("invalid is_main property: is_main cannot be changed")
	ErrMainUserProtected   = errors.New("cannot delete main user")
	ErrInvalidCurrencyCode = errors.New("invalid currency string")
	ErrNoMainParty         = errors.New("neither user is main")
)

// ValidationError is a rejection of a requested mutation. errors.Is matches
// both ErrValidation and the wrapped kind.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// invalid wraps kind with the offending value
func invalid(kind error, format string, args ...interface{}) error {
	return &ValidationError{Err: fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)}
}

// asValidation turns a not-found lookup met during a check into a
// validation failure; other errors pass through untouched.
func asValidation(err error) error {
	if errors.Is(err, ErrRecordNotFound) && !errors.Is(err, ErrValidation) {
		return &ValidationError{Err: err}
	}
	return err
}
