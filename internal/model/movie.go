package model

import (
	"fmt"
	"strings"
)

// Movie is a film the planner tracks. Its identity is its name: two movies
// with the same name are the same movie whatever their other fields.
//
// Fields:
//  name      – identity.
//  duration  – running time in minutes.
//  rating    – short classification label.
//  startDate – release date, DD/MM/YYYY.
//  tags      – labels, a set kept in first-seen order.
type Movie struct {
	name      Name
	duration  Duration
	rating    Rating
	startDate StartDate
	tags      []Tag
}

func NewMovie(name Name, duration Duration, rating Rating, startDate StartDate, tags []Tag) Movie {
	return Movie{
		name:      name,
		duration:  duration,
		rating:    rating,
		startDate: startDate,
		tags:      tagSet(tags),
	}
}

func (m Movie) Name() Name           { return m.name }
func (m Movie) Duration() Duration   { return m.duration }
func (m Movie) Rating() Rating       { return m.rating }
func (m Movie) StartDate() StartDate { return m.startDate }

// Tags returns a copy of the movie's tags.
func (m Movie) Tags() []Tag { return append([]Tag(nil), m.tags...) }

func (m Movie) HasTag(t Tag) bool { return hasTag(m.tags, t) }

func (m Movie) WithTags(tags []Tag) Movie {
	m.tags = tagSet(tags)
	return m
}

func (m Movie) WithoutTag(t Tag) Movie {
	m.tags = withoutTag(m.tags, t)
	return m
}

// SameAs compares names only.
func (m Movie) SameAs(other Movie) bool { return m.name == other.name }

// Equal compares every field, tags as a set.
func (m Movie) Equal(other Movie) bool {
	return m.name == other.name &&
		m.duration == other.duration &&
		m.rating == other.rating &&
		m.startDate == other.startDate &&
		sameTagSet(m.tags, other.tags)
}

func (m Movie) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Duration: %s Rating: %s Start Date: %s Tags: ",
		m.name, m.duration, m.rating, m.startDate)
	for _, t := range m.tags {
		b.WriteString(t.String())
	}
	return b.String()
}
