package errs

import (
	"errors"
	"fmt"
)

// StoreError wraps a driver error together with the repository operation that produced it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

// Unwrap exposes the driver error.
func (e *StoreError) Unwrap() error { return e.Err }

// Is makes every StoreError match ErrStore.
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Store wraps err as a StoreError. Nil stays nil; domain sentinels and
// already wrapped errors pass through untouched.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, s := range []error{ErrNotFound, ErrInvalidTransition, ErrInvalidProgress, ErrValidation, ErrUnauthorized} {
		if errors.Is(err, s) {
			return err
		}
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
