// Package storage converts the planner to and from its XML document and keeps
// that document in a single file, optionally encrypted with a password-derived
// key. Errors come in three kinds a caller can tell apart: ErrFileNotFound
// (no prior data), ErrFormat (the bytes are not a valid planner document) and
// ErrIO (the filesystem failed).
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound means there is no data file yet. Callers usually start
	// from sample or empty data.
	ErrFileNotFound = errors.New("data file not found")
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("data file format error")
	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("data file io error")
	// ErrMissingField marks a required element absent from the document.
	ErrMissingField = errors.New("missing field")
	// ErrEmptyDocument marks a file with no content at all.
	ErrEmptyDocument = errors.New("empty document")
)

// FormatError says which entity and field of the document could not be read.
//
// Fields:
//  Path   – data file.
//  Entity – "planner", "cinema", "theater" or "movie".
//  Index  – zero-based position of the entity in its list, -1 for the root.
//  Field  – XML element at fault, empty when the whole entity is.
//  Err    – underlying cause (ErrMissingField, a model.ValidationError, ...).
type FormatError struct {
	Path   string
	Entity string
	Index  int
	Field  string
	Err    error
}

func (e *FormatError) Error() string {
	where := e.Entity
	if e.Index >= 0 {
		where = fmt.Sprintf("%s #%d", e.Entity, e.Index+1)
	}
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("%s: %s is missing field %q", e.Path, where, e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s field %q: %v", e.Path, where, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, where, e.Err)
}

func (e *FormatError) Unwrap() error        { return e.Err }
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// IOError wraps a filesystem failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string        { return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err) }
func (e *IOError) Unwrap() error        { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }
