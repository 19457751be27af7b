package service

import (
	"errors"
	"fmt"
	"strings"
)

// Every failure the service reports belongs to exactly one of five kinds:
// validation, dangling reference, delete conflict, capacity exhaustion or
// missing document. Store faults are wrapped in ErrUnavailable so callers can
// tell infrastructure trouble apart from domain rejections.

// ErrUnavailable marks storage-level failures (connectivity, serialization).
var ErrUnavailable = errors.New("storage unavailable")

// ValidationError reports the first violated field of a malformed payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

// ReferenceError reports a foreign reference that does not resolve.
type ReferenceError struct {
	Field string
	ID    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references missing document %q", e.Field, e.ID)
}

// ConflictError reports a delete blocked by live dependents.
type ConflictError struct {
	Dependent string // kind of the dependent documents, e.g. "event"
	IDs       []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("delete blocked by %d dependent %s(s): %s",
		len(e.IDs), e.Dependent, strings.Join(e.IDs, ", "))
}

// CapacityError reports a booking that would exceed the event capacity.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d seat(s) but only %d available", e.Requested, e.Available)
}

// NotFoundError reports a lookup by id that missed.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
