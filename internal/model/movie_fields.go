package model

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DurationConstraint  = "duration should be a positive whole number of minutes, at most 10000"
	RatingConstraint    = "rating should be 1 to 4 alphanumeric characters"
	StartDateConstraint = "start date should be in the format DD/MM/YYYY"

	maxDuration = 10000
)

var (
	ratingRe    = regexp.MustCompile(`^[A-Za-z0-9]{1,4}$`)
	startDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// Duration is the running time of a movie in minutes.
type Duration struct{ minutes int }

func NewDuration(raw string) (Duration, error) {
	s := strings.TrimSpace(raw)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxDuration || s[0] == '+' {
		return Duration{}, invalid("duration", raw, DurationConstraint)
	}
	return Duration{minutes: n}, nil
}

// Minutes returns the running time.
func (d Duration) Minutes() int { return d.minutes }

func (d Duration) String() string { return strconv.Itoa(d.minutes) }

// Rating is a short classification label such as "PG13" or "M18".
type Rating struct{ value string }

func NewRating(raw string) (Rating, error) {
	s := strings.TrimSpace(raw)
	if !ratingRe.MatchString(s) {
		return Rating{}, invalid("rating", raw, RatingConstraint)
	}
	return Rating{value: s}, nil
}

func (r Rating) String() string { return r.value }

// StartDate is the release date of a movie. Only the DD/MM/YYYY shape is
// checked; 31/02/2020 is accepted.
type StartDate struct{ value string }

func NewStartDate(raw string) (StartDate, error) {
	s := strings.TrimSpace(raw)
	if !startDateRe.MatchString(s) {
		return StartDate{}, invalid("startDate", raw, StartDateConstraint)
	}
	return StartDate{value: s}, nil
}

func (d StartDate) String() string { return d.value }
