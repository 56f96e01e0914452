package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TheaterNumberConstraint = "theater number should be a positive whole number"
	SeatCountConstraint     = "seat count should be a positive whole number"
	TheaterStatusConstraint = "theater status should be one of Available, Maintenance, Unavailable"
)

// TheaterNumber identifies a theater inside its cinema.
type TheaterNumber struct{ n int }

func NewTheaterNumber(raw string) (TheaterNumber, error) {
	n, ok := positiveInt(raw)
	if !ok {
		return TheaterNumber{}, invalid("theaterNumber", raw, TheaterNumberConstraint)
	}
	return TheaterNumber{n: n}, nil
}

func (t TheaterNumber) Int() int       { return t.n }
func (t TheaterNumber) String() string { return strconv.Itoa(t.n) }

// SeatCount is the capacity of a theater. It is kept as the validated text so
// a stored "0120" round-trips unchanged.
type SeatCount struct{ value string }

func NewSeatCount(raw string) (SeatCount, error) {
	s := strings.TrimSpace(raw)
	if _, ok := positiveInt(s); !ok {
		return SeatCount{}, invalid("seats", raw, SeatCountConstraint)
	}
	return SeatCount{value: s}, nil
}

// Int returns the capacity as a number; the constructor guarantees it parses.
func (s SeatCount) Int() int {
	n, _ := strconv.Atoi(s.value)
	return n
}

func (s SeatCount) String() string { return s.value }

// TheaterStatus is the operating state of a theater.
type TheaterStatus string

const (
	StatusAvailable   TheaterStatus = "Available"
	StatusMaintenance TheaterStatus = "Maintenance"
	StatusUnavailable TheaterStatus = "Unavailable"
)

// ParseTheaterStatus accepts any letter case and returns the canonical value.
func ParseTheaterStatus(raw string) (TheaterStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available":
		return StatusAvailable, nil
	case "maintenance":
		return StatusMaintenance, nil
	case "unavailable":
		return StatusUnavailable, nil
	}
	return "", invalid("status", raw, TheaterStatusConstraint)
}

// Theater is one screening room of a cinema.
//
// Fields:
//  number – unique within the owning cinema.
//  seats  – capacity.
//  status – Available, Maintenance or Unavailable.
type Theater struct {
	number TheaterNumber
	seats  SeatCount
	status TheaterStatus
}

// NewTheater builds a theater from validated parts. A zero status defaults to
// Available, matching how new theaters are opened.
func NewTheater(number TheaterNumber, seats SeatCount, status TheaterStatus) Theater {
	if status == "" {
		status = StatusAvailable
	}
	return Theater{number: number, seats: seats, status: status}
}

// ParseTheater validates all three raw fields at once.
func ParseTheater(number, seats, status string) (Theater, error) {
	n, err := NewTheaterNumber(number)
	if err != nil {
		return Theater{}, err
	}
	s, err := NewSeatCount(seats)
	if err != nil {
		return Theater{}, err
	}
	st, err := ParseTheaterStatus(status)
	if err != nil {
		return Theater{}, err
	}
	return NewTheater(n, s, st), nil
}

func (t Theater) Number() TheaterNumber { return t.number }
func (t Theater) Seats() SeatCount      { return t.seats }
func (t Theater) Status() TheaterStatus { return t.status }

// WithStatus returns a copy of the theater in another state.
func (t Theater) WithStatus(s TheaterStatus) Theater {
	t.status = s
	return t
}

// SameAs treats theaters with the same number as the same theater.
func (t Theater) SameAs(other Theater) bool { return t.number == other.number }

// Equal compares all three fields.
func (t Theater) Equal(other Theater) bool { return t == other }

func (t Theater) String() string {
	return fmt.Sprintf("Theater %d (%s seats, %s)", t.number.n, t.seats.value, t.status)
}

func positiveInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
