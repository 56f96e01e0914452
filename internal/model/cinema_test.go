package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func theater(num, seats, status string) Theater {
	return must(ParseTheater(num, seats, status))
}

func cinema(t *testing.T, name string, theaters []Theater, tags ...string) Cinema {
	t.Helper()
	var ts []Tag
	for _, l := range tags {
		ts = append(ts, MustTag(l))
	}
	c, err := NewCinema(
		must(NewName(name)),
		must(NewPhone("61234567")),
		must(NewEmail("info@example.com")),
		must(NewAddress("1 Main Street")),
		theaters, ts)
	require.NoError(t, err)
	return c
}

func TestNewCinema_DuplicateTheater(t *testing.T) {
	_, err := NewCinema(
		must(NewName("Shaw")),
		must(NewPhone("123")),
		must(NewEmail("a@bc")),
		must(NewAddress("x")),
		[]Theater{theater("1", "10", "Available"), theater("1", "20", "Maintenance")},
		nil)
	assert.ErrorIs(t, err, ErrDuplicateTheater)
}

func TestCinema_TagsAreASet(t *testing.T) {
	c := cinema(t, "Shaw", nil, "imax", "gold", "imax")
	require.Len(t, c.Tags(), 2)
	assert.Equal(t, "imax", c.Tags()[0].Label())
	assert.True(t, c.HasTag(MustTag("gold")))

	stripped := c.WithoutTag(MustTag("imax"))
	assert.False(t, stripped.HasTag(MustTag("imax")))
	assert.True(t, c.HasTag(MustTag("imax")), "receiver must be untouched")
	assert.Equal(t, c, c.WithoutTag(MustTag("absent")).WithTags(c.Tags()))
}

func TestCinema_TagsReturnsCopy(t *testing.T) {
	c := cinema(t, "Shaw", nil, "imax")
	tags := c.Tags()
	tags[0] = MustTag("other")
	assert.True(t, c.HasTag(MustTag("imax")))
}

func TestCinema_TheaterOps(t *testing.T) {
	c := cinema(t, "Shaw", []Theater{theater("1", "100", "Available")})

	added, err := c.AddTheater(theater("2", "80", "Available"))
	require.NoError(t, err)
	assert.Equal(t, 2, added.Theaters().Len())
	assert.Equal(t, 1, c.Theaters().Len(), "AddTheater must not touch the receiver")

	_, err = added.AddTheater(theater("2", "10", "Unavailable"))
	assert.ErrorIs(t, err, ErrDuplicateTheater)

	updated, err := added.UpdateTheater(theater("2", "80", "Available"), theater("2", "80", "Maintenance"))
	require.NoError(t, err)
	assert.Equal(t, StatusMaintenance, updated.Theaters().At(1).Status())

	_, err = added.UpdateTheater(theater("2", "80", "Available"), theater("1", "80", "Available"))
	assert.ErrorIs(t, err, ErrDuplicateTheater)

	removed, err := updated.RemoveTheater(theater("1", "1", "Available"))
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Theaters().Len())

	_, err = removed.RemoveTheater(theater("9", "1", "Available"))
	assert.ErrorIs(t, err, ErrTheaterNotFound)
}

func TestCinema_SameAsAndEqual(t *testing.T) {
	a := cinema(t, "Shaw", []Theater{theater("1", "100", "Available")}, "imax", "gold")
	b := cinema(t, "Shaw", nil, "gold")
	assert.True(t, a.SameAs(b))
	assert.False(t, a.Equal(b))

	c := cinema(t, "Shaw", []Theater{theater("1", "100", "Available")}, "gold", "imax")
	assert.True(t, a.Equal(c), "tag order does not matter")

	d := cinema(t, "Cathay", nil)
	assert.False(t, a.SameAs(d))
}

func TestMovie_SameAsAndEqual(t *testing.T) {
	m := NewMovie(must(NewName("Joker")), must(NewDuration("122")), must(NewRating("M18")),
		must(NewStartDate("03/10/2019")), []Tag{MustTag("drama"), MustTag("drama")})
	assert.Len(t, m.Tags(), 1)

	other := NewMovie(must(NewName("Joker")), must(NewDuration("90")), must(NewRating("PG")),
		must(NewStartDate("01/01/2020")), nil)
	assert.True(t, m.SameAs(other))
	assert.False(t, m.Equal(other))
	assert.True(t, m.Equal(m.WithTags(m.Tags())))
	assert.False(t, m.WithoutTag(MustTag("drama")).HasTag(MustTag("drama")))
	assert.Contains(t, m.String(), "Duration: 122")
}
