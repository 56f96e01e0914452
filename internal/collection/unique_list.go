// Package collection provides an ordered list that refuses duplicate entries
// and a read-only view of it. Duplicates are decided by the element's own
// SameAs method, never by pointer identity.
package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned when an operation would store two equivalent items.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrNotFound is returned when the item to replace or remove is absent.
	ErrNotFound = errors.New("entry not found")
)

// Equivalent is implemented by anything that can live in a UniqueList.
type Equivalent[T any] interface {
	SameAs(other T) bool
}

// UniqueList keeps items in insertion order and never holds two items for
// which SameAs reports true. The zero value is an empty list ready to use.
// It is not safe for concurrent use.
type UniqueList[T Equivalent[T]] struct {
	items []T
}

// NewUniqueList builds a list from items, failing on internal duplicates.
func NewUniqueList[T Equivalent[T]](items ...T) (*UniqueList[T], error) {
	l := &UniqueList[T]{}
	if err := l.ReplaceAll(items); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *UniqueList[T]) indexOf(item T) int {
	for i, x := range l.items {
		if x.SameAs(item) {
			return i
		}
	}
	return -1
}

// Contains reports whether an equivalent item is stored.
func (l *UniqueList[T]) Contains(item T) bool {
	return l.indexOf(item) >= 0
}

// Len returns the number of stored items.
func (l *UniqueList[T]) Len() int { return len(l.items) }

// Add appends item unless an equivalent one is already present.
func (l *UniqueList[T]) Add(item T) error {
	if l.Contains(item) {
		return fmt.Errorf("add %T: %w", item, ErrDuplicate)
	}
	l.items = append(l.items, item)
	return nil
}

// Replace swaps target for replacement in place. Replacing an item with an
// equivalent of itself is always allowed; clashing with any other stored item
// is not.
func (l *UniqueList[T]) Replace(target, replacement T) error {
	i := l.indexOf(target)
	if i < 0 {
		return fmt.Errorf("replace %T: %w", target, ErrNotFound)
	}
	if !target.SameAs(replacement) && l.Contains(replacement) {
		return fmt.Errorf("replace %T: %w", target, ErrDuplicate)
	}
	l.items[i] = replacement
	return nil
}

// Remove deletes the item equivalent to item.
func (l *UniqueList[T]) Remove(item T) error {
	i := l.indexOf(item)
	if i < 0 {
		return fmt.Errorf("remove %T: %w", item, ErrNotFound)
	}
	l.items = append(l.items[:i:i], l.items[i+1:]...)
	return nil
}

// ReplaceAll resets the list to items. On ErrDuplicate the list is unchanged.
func (l *UniqueList[T]) ReplaceAll(items []T) error {
	next := make([]T, 0, len(items))
	for _, it := range items {
		for _, x := range next {
			if x.SameAs(it) {
				return fmt.Errorf("replace all %T: %w", it, ErrDuplicate)
			}
		}
		next = append(next, it)
	}
	l.items = next
	return nil
}

// View returns a read-only window onto the list. The view tracks later
// changes to the list.
func (l *UniqueList[T]) View() View[T] {
	return View[T]{list: l}
}

// Clone returns an independent copy.
func (l *UniqueList[T]) Clone() *UniqueList[T] {
	return &UniqueList[T]{items: append([]T(nil), l.items...)}
}
