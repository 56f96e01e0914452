package planner

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-planner/internal/collection"
)

// Re-exported so callers of the planner need not import collection to branch
// on the outcome of an add, update or remove.
var (
	ErrDuplicate = collection.ErrDuplicate
	ErrNotFound  = collection.ErrNotFound
)

var (
	// ErrTagNotFound is returned by RemoveTag when no cinema or movie carries the tag.
	ErrTagNotFound = errors.New("tag not found")
	// ErrIncomplete is returned for a zero-value entity that skipped its constructor.
	ErrIncomplete = errors.New("entity has unset required fields")
)

// IntegrityError describes a snapshot that breaks planner invariants: a
// duplicate entity or a tag reference with no live tag behind it. It only
// arises from a programming error upstream, so Reset panics with it instead
// of returning it.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("planner integrity violated: %s", e.Reason)
}
