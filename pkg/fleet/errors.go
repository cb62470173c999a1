package fleet

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ValidationError reports a recoverable, field-scoped input problem. The HTTP
// layer maps these back to the offending form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

type ConflictKind string

const (
	ConflictVehicleRoute       ConflictKind = "vehicle_route"
	ConflictVehicleMaintenance ConflictKind = "vehicle_maintenance"
	ConflictDriverRoute        ConflictKind = "driver_route"
)

// ConflictError reports a scheduling overlap. Resource names the already
// committed vehicle plate or driver so the caller can surface it.
type ConflictError struct {
	Kind     ConflictKind
	Resource string
}

func (e *ConflictError) Error() string {
	switch e.Kind {
	case ConflictVehicleRoute:
		return fmt.Sprintf("vehicle %s already has a route in this window", e.Resource)
	case ConflictVehicleMaintenance:
		return fmt.Sprintf("vehicle %s has a maintenance scheduled in this window", e.Resource)
	case ConflictDriverRoute:
		return fmt.Sprintf("driver %s already has a route in this window", e.Resource)
	}
	return fmt.Sprintf("scheduling conflict with %s", e.Resource)
}

func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// ProviderError carries the descriptive text returned by an external costing
// provider. It aborts the in-progress route write; nothing is persisted.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

func NewProviderError(format string, args ...any) *ProviderError {
	return &ProviderError{Message: fmt.Sprintf(format, args...)}
}

func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	ok := errors.As(err, &pe)
	return pe, ok
}
