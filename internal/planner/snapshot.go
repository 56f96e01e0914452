package planner

import (
	"github.com/iliyamo/cinema-planner/internal/collection"
	"github.com/iliyamo/cinema-planner/internal/model"
)

// ReadOnlyPlanner is what observers, storage and the viewer get to see: the
// three lists as read-only views and nothing that can change them.
type ReadOnlyPlanner interface {
	Cinemas() collection.View[model.Cinema]
	Movies() collection.View[model.Movie]
	Tags() collection.View[model.Tag]
}

// Snapshot is a frozen copy of planner state. Entities are immutable values,
// so copying the three lists is enough to decouple a snapshot from later
// mutations.
type Snapshot struct {
	cinemas *collection.UniqueList[model.Cinema]
	movies  *collection.UniqueList[model.Movie]
	tags    *collection.UniqueList[model.Tag]
}

// NewSnapshot freezes the state of p.
func NewSnapshot(p ReadOnlyPlanner) *Snapshot {
	return &Snapshot{
		cinemas: listOf(p.Cinemas().Slice()),
		movies:  listOf(p.Movies().Slice()),
		tags:    listOf(p.Tags().Slice()),
	}
}

// listOf wraps items already known to be duplicate free.
func listOf[T collection.Equivalent[T]](items []T) *collection.UniqueList[T] {
	l, err := collection.NewUniqueList(items...)
	if err != nil {
		panic(&IntegrityError{Reason: err.Error()})
	}
	return l
}

func (s *Snapshot) Cinemas() collection.View[model.Cinema] { return s.cinemas.View() }
func (s *Snapshot) Movies() collection.View[model.Movie]   { return s.movies.View() }
func (s *Snapshot) Tags() collection.View[model.Tag]       { return s.tags.View() }

// Counts returns the number of cinemas, movies and tags.
func (s *Snapshot) Counts() (cinemas, movies, tags int) {
	return s.cinemas.Len(), s.movies.Len(), s.tags.Len()
}

// Equal reports whether two read-only planners hold the same data: cinemas
// and movies field by field in order, tags as a set.
func Equal(a, b ReadOnlyPlanner) bool {
	ac, bc := a.Cinemas(), b.Cinemas()
	am, bm := a.Movies(), b.Movies()
	at, bt := a.Tags(), b.Tags()
	if ac.Len() != bc.Len() || am.Len() != bm.Len() || at.Len() != bt.Len() {
		return false
	}
	for i, c := range ac.All() {
		if !c.Equal(bc.At(i)) {
			return false
		}
	}
	for i, m := range am.All() {
		if !m.Equal(bm.At(i)) {
			return false
		}
	}
	for _, t := range at.All() {
		if !bt.Contains(t) {
			return false
		}
	}
	return true
}
