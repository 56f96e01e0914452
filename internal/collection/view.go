package collection

import "iter"

// View is a read-only window onto a UniqueList. It has no mutating methods,
// and Slice hands out a copy, so holders of a View cannot change the list
// behind it. The zero View is empty.
type View[T Equivalent[T]] struct {
	list *UniqueList[T]
}

// Len returns the number of items.
func (v View[T]) Len() int {
	if v.list == nil {
		return 0
	}
	return len(v.list.items)
}

// At returns the i-th item in insertion order. It panics when i is out of range.
func (v View[T]) At(i int) T {
	return v.list.items[i]
}

// Contains reports whether an equivalent item is present.
func (v View[T]) Contains(item T) bool {
	return v.list != nil && v.list.Contains(item)
}

// All iterates over index/item pairs in insertion order.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.list == nil {
			return
		}
		for i, it := range v.list.items {
			if !yield(i, it) {
				return
			}
		}
	}
}

// Slice returns a copy of the items.
func (v View[T]) Slice() []T {
	if v.list == nil {
		return nil
	}
	return append([]T(nil), v.list.items...)
}
