package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-planner/internal/collection"
)

// Cinema is a venue listed in the planner. Two cinemas are the same cinema
// when name, phone, email and address all match; theaters and tags are not
// part of that identity. A Cinema is never modified in place: every With*
// method returns a new value and the planner swaps it in through UpdateCinema.
//
// Fields:
//  name, phone, email, address – identity tuple.
//  theaters – screening rooms, unique by theater number.
//  tags     – labels, a set kept in first-seen order.
type Cinema struct {
	name     Name
	phone    Phone
	email    Email
	address  Address
	theaters *collection.UniqueList[Theater]
	tags     []Tag
}

// NewCinema assembles a cinema from validated fields. Theaters sharing a
// number are rejected with ErrDuplicateTheater; repeated tags collapse.
func NewCinema(name Name, phone Phone, email Email, address Address, theaters []Theater, tags []Tag) (Cinema, error) {
	list, err := collection.NewUniqueList(theaters...)
	if err != nil {
		return Cinema{}, fmt.Errorf("cinema %s: %w", name, ErrDuplicateTheater)
	}
	return Cinema{
		name:     name,
		phone:    phone,
		email:    email,
		address:  address,
		theaters: list,
		tags:     tagSet(tags),
	}, nil
}

func (c Cinema) Name() Name       { return c.name }
func (c Cinema) Phone() Phone     { return c.phone }
func (c Cinema) Email() Email     { return c.email }
func (c Cinema) Address() Address { return c.address }

// Theaters returns a read-only view of the cinema's theaters.
func (c Cinema) Theaters() collection.View[Theater] {
	if c.theaters == nil {
		return collection.View[Theater]{}
	}
	return c.theaters.View()
}

// Tags returns a copy of the cinema's tags.
func (c Cinema) Tags() []Tag { return append([]Tag(nil), c.tags...) }

// HasTag reports whether the cinema carries t.
func (c Cinema) HasTag(t Tag) bool { return hasTag(c.tags, t) }

// WithTags returns a copy carrying exactly tags.
func (c Cinema) WithTags(tags []Tag) Cinema {
	c.tags = tagSet(tags)
	return c
}

// WithoutTag returns a copy with t stripped. Stripping an absent tag is a no-op.
func (c Cinema) WithoutTag(t Tag) Cinema {
	c.tags = withoutTag(c.tags, t)
	return c
}

// WithTheaters returns a copy whose theaters are replaced wholesale.
func (c Cinema) WithTheaters(theaters []Theater) (Cinema, error) {
	list, err := collection.NewUniqueList(theaters...)
	if err != nil {
		return Cinema{}, fmt.Errorf("cinema %s: %w", c.name, ErrDuplicateTheater)
	}
	c.theaters = list
	return c, nil
}

// AddTheater returns a copy with t appended.
func (c Cinema) AddTheater(t Theater) (Cinema, error) {
	next := c.cloneTheaters()
	if err := next.Add(t); err != nil {
		return Cinema{}, fmt.Errorf("cinema %s theater %d: %w", c.name, t.number.n, ErrDuplicateTheater)
	}
	c.theaters = next
	return c, nil
}

// UpdateTheater returns a copy with target replaced by replacement.
func (c Cinema) UpdateTheater(target, replacement Theater) (Cinema, error) {
	next := c.cloneTheaters()
	if err := next.Replace(target, replacement); err != nil {
		return Cinema{}, c.theaterErr(target, err)
	}
	c.theaters = next
	return c, nil
}

// RemoveTheater returns a copy without the theater numbered like t.
func (c Cinema) RemoveTheater(t Theater) (Cinema, error) {
	next := c.cloneTheaters()
	if err := next.Remove(t); err != nil {
		return Cinema{}, c.theaterErr(t, err)
	}
	c.theaters = next
	return c, nil
}

func (c Cinema) cloneTheaters() *collection.UniqueList[Theater] {
	if c.theaters == nil {
		return &collection.UniqueList[Theater]{}
	}
	return c.theaters.Clone()
}

func (c Cinema) theaterErr(t Theater, err error) error {
	if errors.Is(err, collection.ErrNotFound) {
		return fmt.Errorf("cinema %s theater %d: %w", c.name, t.number.n, ErrTheaterNotFound)
	}
	return fmt.Errorf("cinema %s theater %d: %w", c.name, t.number.n, ErrDuplicateTheater)
}

// SameAs compares the identity tuple only.
func (c Cinema) SameAs(other Cinema) bool {
	return c.name == other.name &&
		c.phone == other.phone &&
		c.email == other.email &&
		c.address == other.address
}

// Equal compares every field; theaters in order, tags as a set.
func (c Cinema) Equal(other Cinema) bool {
	if !c.SameAs(other) || !sameTagSet(c.tags, other.tags) {
		return false
	}
	a, b := c.Theaters(), other.Theaters()
	if a.Len() != b.Len() {
		return false
	}
	for i, t := range a.All() {
		if !t.Equal(b.At(i)) {
			return false
		}
	}
	return true
}

func (c Cinema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Phone: %s Email: %s Address: %s Theaters: %d Tags: ",
		c.name, c.phone, c.email, c.address, c.Theaters().Len())
	for _, t := range c.tags {
		b.WriteString(t.String())
	}
	return b.String()
}
