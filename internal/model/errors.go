// Package model holds the value objects and entities of the planner: cinemas,
// their theaters, movies and the tags shared between them. Every value object
// validates its raw input at construction so an entity can never be built from
// malformed fields.
package model

import (
	"errors"
	"fmt"
)

// ErrInvalidField is matched by every *ValidationError via errors.Is.
var ErrInvalidField = errors.New("invalid field")

// ErrDuplicateTheater is returned when two theaters of one cinema share a number.
var ErrDuplicateTheater = errors.New("duplicate theater number")

// ErrTheaterNotFound is returned when a cinema has no theater with the given number.
var ErrTheaterNotFound = errors.New("theater not found")

// ValidationError reports a raw value rejected by a value object constructor.
//
// Fields:
//  Field   – name of the rejected field (e.g. "email").
//  Value   – the raw input as received.
//  Message – constraint the input violated, suitable for showing to a user.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// Is lets callers test for ErrInvalidField without caring which field failed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidField
}

func invalid(field, value, message string) error {
	return &ValidationError{Field: field, Value: value, Message: message}
}
