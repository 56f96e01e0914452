// Package planner holds the Planner aggregate: the canonical cinema and movie
// lists plus the registry of tags they reference. All mutations go through
// the Planner so it can keep three invariants:
//
//   - no duplicate cinemas (by identity tuple) or movies (by name);
//   - every tag on a cinema or movie is live in the registry;
//   - the registry holds no tag that nothing references.
//
// The Planner is single-writer and does no locking. Observers get read-only
// views or frozen Snapshots through change events.
package planner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/collection"
	"github.com/iliyamo/cinema-planner/internal/model"
)

// Planner is the aggregate root. The zero value is not usable; call New.
type Planner struct {
	cinemas collection.UniqueList[model.Cinema]
	movies  collection.UniqueList[model.Movie]
	tags    collection.UniqueList[model.Tag]

	subs    []subscription
	nextSub int

	log *zap.Logger
	now func() time.Time
}

// Option customizes a Planner.
type Option func(*Planner)

// WithLogger sets the logger used to report failing listeners.
func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock overrides the clock stamped on change events.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		if now != nil {
			p.now = now
		}
	}
}

// New returns an empty planner.
func New(opts ...Option) *Planner {
	p := &Planner{log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

// FromSnapshot returns a planner holding a copy of src. It panics with an
// *IntegrityError when src breaks the planner invariants, like Reset.
func FromSnapshot(src ReadOnlyPlanner, opts ...Option) *Planner {
	p := New(opts...)
	p.reset(src)
	return p
}

func (p *Planner) Cinemas() collection.View[model.Cinema] { return p.cinemas.View() }
func (p *Planner) Movies() collection.View[model.Movie]   { return p.movies.View() }
func (p *Planner) Tags() collection.View[model.Tag]       { return p.tags.View() }

// Snapshot freezes the current state.
func (p *Planner) Snapshot() *Snapshot { return NewSnapshot(p) }

func (p *Planner) HasCinema(c model.Cinema) bool { return p.cinemas.Contains(c) }
func (p *Planner) HasMovie(m model.Movie) bool   { return p.movies.Contains(m) }
func (p *Planner) HasTag(t model.Tag) bool       { return p.tags.Contains(t) }

// AddCinema stores c, registers its tags and emits a change event.
func (p *Planner) AddCinema(c model.Cinema) error {
	if err := checkCinema(c); err != nil {
		return err
	}
	if err := p.cinemas.Add(c); err != nil {
		return fmt.Errorf("add cinema %s: %w", c.Name(), err)
	}
	p.commit()
	return nil
}

// UpdateCinema replaces target with replacement. The replacement may be the
// same cinema with other theaters or tags; it may not collide with a
// different cinema already stored.
func (p *Planner) UpdateCinema(target, replacement model.Cinema) error {
	if err := checkCinema(replacement); err != nil {
		return err
	}
	if err := p.cinemas.Replace(target, replacement); err != nil {
		return fmt.Errorf("update cinema %s: %w", target.Name(), err)
	}
	p.commit()
	return nil
}

// RemoveCinema deletes c and prunes tags only it referenced.
func (p *Planner) RemoveCinema(c model.Cinema) error {
	if err := p.cinemas.Remove(c); err != nil {
		return fmt.Errorf("remove cinema %s: %w", c.Name(), err)
	}
	p.commit()
	return nil
}

// AddMovie stores m, registers its tags and emits a change event.
func (p *Planner) AddMovie(m model.Movie) error {
	if err := checkMovie(m); err != nil {
		return err
	}
	if err := p.movies.Add(m); err != nil {
		return fmt.Errorf("add movie %s: %w", m.Name(), err)
	}
	p.commit()
	return nil
}

// UpdateMovie replaces target with replacement under the same rules as
// UpdateCinema.
func (p *Planner) UpdateMovie(target, replacement model.Movie) error {
	if err := checkMovie(replacement); err != nil {
		return err
	}
	if err := p.movies.Replace(target, replacement); err != nil {
		return fmt.Errorf("update movie %s: %w", target.Name(), err)
	}
	p.commit()
	return nil
}

// RemoveMovie deletes m and prunes tags only it referenced.
func (p *Planner) RemoveMovie(m model.Movie) error {
	if err := p.movies.Remove(m); err != nil {
		return fmt.Errorf("remove movie %s: %w", m.Name(), err)
	}
	p.commit()
	return nil
}

// RemoveTag strips t from every cinema and movie carrying it and drops it from
// the registry. The new lists are built aside and swapped in together, so a
// failure part way leaves the planner untouched.
func (p *Planner) RemoveTag(t model.Tag) error {
	if !p.referenced(t) {
		return fmt.Errorf("remove tag %s: %w", t.Label(), ErrTagNotFound)
	}

	cinemas := p.cinemas.View().Slice()
	for i, c := range cinemas {
		if c.HasTag(t) {
			cinemas[i] = c.WithoutTag(t)
		}
	}
	movies := p.movies.View().Slice()
	for i, m := range movies {
		if m.HasTag(t) {
			movies[i] = m.WithoutTag(t)
		}
	}

	nextCinemas := p.cinemas.Clone()
	if err := nextCinemas.ReplaceAll(cinemas); err != nil {
		panic(&IntegrityError{Reason: "remove tag: " + err.Error()})
	}
	nextMovies := p.movies.Clone()
	if err := nextMovies.ReplaceAll(movies); err != nil {
		panic(&IntegrityError{Reason: "remove tag: " + err.Error()})
	}

	p.cinemas = *nextCinemas
	p.movies = *nextMovies
	p.commit()
	return nil
}

// Reset replaces the whole planner with a copy of src and emits one event.
// src is expected to satisfy every invariant already; a duplicate or a
// dangling tag reference is an *IntegrityError panic.
func (p *Planner) Reset(src ReadOnlyPlanner) {
	p.reset(src)
	p.emit()
}

func (p *Planner) reset(src ReadOnlyPlanner) {
	var cinemas collection.UniqueList[model.Cinema]
	if err := cinemas.ReplaceAll(src.Cinemas().Slice()); err != nil {
		panic(&IntegrityError{Reason: "reset: " + err.Error()})
	}
	var movies collection.UniqueList[model.Movie]
	if err := movies.ReplaceAll(src.Movies().Slice()); err != nil {
		panic(&IntegrityError{Reason: "reset: " + err.Error()})
	}
	var tags collection.UniqueList[model.Tag]
	if err := tags.ReplaceAll(src.Tags().Slice()); err != nil {
		panic(&IntegrityError{Reason: "reset: " + err.Error()})
	}
	for _, t := range referencedTags(cinemas.View(), movies.View()) {
		if !tags.Contains(t) {
			panic(&IntegrityError{Reason: fmt.Sprintf("reset: tag %s is referenced but not registered", t.Label())})
		}
	}
	p.cinemas, p.movies, p.tags = cinemas, movies, tags
	p.syncTags()
}

// commit reconciles the tag registry and announces the change.
func (p *Planner) commit() {
	p.syncTags()
	p.emit()
}

// syncTags makes the registry exactly the set of referenced tags: known tags
// keep their position, new ones are appended, orphans are dropped.
func (p *Planner) syncTags() {
	live := referencedTags(p.cinemas.View(), p.movies.View())
	liveSet, _ := collection.NewUniqueList(live...)

	next := make([]model.Tag, 0, len(live))
	for _, t := range p.tags.View().All() {
		if liveSet.Contains(t) {
			next = append(next, t)
		}
	}
	for _, t := range live {
		if !p.tags.Contains(t) {
			next = append(next, t)
		}
	}
	if err := p.tags.ReplaceAll(next); err != nil {
		panic(&IntegrityError{Reason: "sync tags: " + err.Error()})
	}
}

func (p *Planner) referenced(t model.Tag) bool {
	for _, c := range p.cinemas.View().All() {
		if c.HasTag(t) {
			return true
		}
	}
	for _, m := range p.movies.View().All() {
		if m.HasTag(t) {
			return true
		}
	}
	return false
}

// referencedTags lists every distinct tag in first-seen order, cinemas first.
func referencedTags(cinemas collection.View[model.Cinema], movies collection.View[model.Movie]) []model.Tag {
	var seen collection.UniqueList[model.Tag]
	for _, c := range cinemas.All() {
		for _, t := range c.Tags() {
			_ = seen.Add(t)
		}
	}
	for _, m := range movies.All() {
		for _, t := range m.Tags() {
			_ = seen.Add(t)
		}
	}
	return seen.View().Slice()
}

func checkCinema(c model.Cinema) error {
	if c.Name() == (model.Name{}) || c.Phone() == (model.Phone{}) ||
		c.Email() == (model.Email{}) || c.Address() == (model.Address{}) {
		return fmt.Errorf("cinema: %w", ErrIncomplete)
	}
	return nil
}

func checkMovie(m model.Movie) error {
	if m.Name() == (model.Name{}) || m.Duration() == (model.Duration{}) ||
		m.Rating() == (model.Rating{}) || m.StartDate() == (model.StartDate{}) {
		return fmt.Errorf("movie: %w", ErrIncomplete)
	}
	return nil
}
