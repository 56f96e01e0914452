package planner

import (
	"strings"

	"github.com/iliyamo/cinema-planner/internal/collection"
	"github.com/iliyamo/cinema-planner/internal/model"
)

// Predicate selects entities for a filtered listing. Predicates only read.
type Predicate[T any] func(T) bool

// FilterCinemas returns the cinemas matching pred in list order. A nil
// predicate matches everything.
func (p *Planner) FilterCinemas(pred Predicate[model.Cinema]) []model.Cinema {
	return Select(p.cinemas.View(), pred)
}

// FilterMovies returns the movies matching pred in list order.
func (p *Planner) FilterMovies(pred Predicate[model.Movie]) []model.Movie {
	return Select(p.movies.View(), pred)
}

// Select returns the items of v matching pred in list order. It works on any
// view, so snapshots handed to listeners filter the same way the planner does.
func Select[T collection.Equivalent[T]](v collection.View[T], pred Predicate[T]) []T {
	if pred == nil {
		return v.Slice()
	}
	out := make([]T, 0, v.Len())
	for _, it := range v.All() {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// CinemaNameContains matches cinemas whose name has a word equal to any
// keyword, ignoring case.
func CinemaNameContains(keywords []string) Predicate[model.Cinema] {
	return func(c model.Cinema) bool {
		return anyWord(c.Name().String(), keywords)
	}
}

// CinemaTagContains matches cinemas carrying a tag equal to any keyword.
func CinemaTagContains(keywords []string) Predicate[model.Cinema] {
	return func(c model.Cinema) bool {
		return anyTag(c.Tags(), keywords)
	}
}

// MovieNameContains matches movies whose name has a word equal to any keyword.
func MovieNameContains(keywords []string) Predicate[model.Movie] {
	return func(m model.Movie) bool {
		return anyWord(m.Name().String(), keywords)
	}
}

// MovieDateContains matches movies whose start date contains any keyword,
// so "2019" or "12/2019" select by year or month.
func MovieDateContains(keywords []string) Predicate[model.Movie] {
	return func(m model.Movie) bool {
		date := m.StartDate().String()
		for _, k := range keywords {
			if k = strings.TrimSpace(k); k != "" && strings.Contains(date, k) {
				return true
			}
		}
		return false
	}
}

// MovieTagContains matches movies carrying a tag equal to any keyword.
func MovieTagContains(keywords []string) Predicate[model.Movie] {
	return func(m model.Movie) bool {
		return anyTag(m.Tags(), keywords)
	}
}

// And combines predicates; every one must match.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p != nil && !p(v) {
				return false
			}
		}
		return true
	}
}

func anyWord(text string, keywords []string) bool {
	words := strings.Fields(text)
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		for _, w := range words {
			if strings.EqualFold(w, k) {
				return true
			}
		}
	}
	return false
}

func anyTag(tags []model.Tag, keywords []string) bool {
	for _, k := range keywords {
		for _, t := range tags {
			if strings.EqualFold(t.Label(), strings.TrimSpace(k)) {
				return true
			}
		}
	}
	return false
}
