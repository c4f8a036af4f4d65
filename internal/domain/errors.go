package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a missing product/customer/order. Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ValidationError is a caller mistake: bad sale mode, non-positive price or
// quantity, duplicate product name, missing required field. Maps to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError means the store did not return the data a multi-step
// operation expected (e.g. an order header insert that cannot be read back).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence: %s", e.Op)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
