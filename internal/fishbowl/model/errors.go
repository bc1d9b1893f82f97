package model

import (
	"errors"
	"fmt"
)

var (
	// ErrOperationNotAllowed marks an action that is not valid in the current state.
	// Nothing is mutated when it is returned.
	ErrOperationNotAllowed = fmt.Errorf("operation not allowed")
	ErrSupplyShortfall     = fmt.Errorf("content supply shortfall")
	ErrUnknownTeam         = fmt.Errorf("unknown team")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// SupplyShortfallError reports how many titles a source could supply out of the requested count.
type SupplyShortfallError struct {
	Requested int
	Supplied  int
}

func (e *SupplyShortfallError) Error() string {
	return fmt.Sprintf("%v: supplied %d of %d", ErrSupplyShortfall, e.Supplied, e.Requested)
}

func (e *SupplyShortfallError) Is(target error) bool {
	return target == ErrSupplyShortfall
}
