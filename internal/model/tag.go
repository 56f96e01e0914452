package model

import (
	"regexp"
	"strings"
)

const TagConstraint = "tag names should be a single alphanumeric word"

var tagRe = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// Tag is a label shared between cinemas and movies. Its identity is its label;
// entities hold tags by value and the planner keeps the registry of live labels.
type Tag struct{ label string }

func NewTag(raw string) (Tag, error) {
	s := strings.TrimSpace(raw)
	if !tagRe.MatchString(s) {
		return Tag{}, invalid("tag", raw, TagConstraint)
	}
	return Tag{label: s}, nil
}

// MustTag is NewTag for literals known to be valid; it panics otherwise.
func MustTag(raw string) Tag {
	t, err := NewTag(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Label returns the tag text.
func (t Tag) Label() string { return t.label }

func (t Tag) String() string { return "[" + t.label + "]" }

// SameAs reports whether both tags carry the same label.
func (t Tag) SameAs(other Tag) bool { return t.label == other.label }

// tagSet deduplicates tags while keeping first-seen order.
func tagSet(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t.label] {
			continue
		}
		seen[t.label] = true
		out = append(out, t)
	}
	return out
}

func hasTag(tags []Tag, t Tag) bool {
	for _, x := range tags {
		if x.label == t.label {
			return true
		}
	}
	return false
}

func withoutTag(tags []Tag, t Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, x := range tags {
		if x.label != t.label {
			out = append(out, x)
		}
	}
	return out
}

func sameTagSet(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for _, t := range a {
		if !hasTag(b, t) {
			return false
		}
	}
	return true
}
