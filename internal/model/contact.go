package model

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Constraint messages shown to users when contact fields are rejected.
const (
	NameConstraint    = "names should only contain alphanumeric characters and spaces, and should not be blank"
	PhoneConstraint   = "phone numbers should only contain digits and be at least 3 digits long"
	EmailConstraint   = "emails should be of the format local-part@domain"
	AddressConstraint = "addresses can take any printable text but should not be blank"
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRe = regexp.MustCompile(`^\d{3,}$`)
	// local part: alphanumerics and +_.- not at either end; domain: labels of
	// alphanumerics joined by . or -, last label at least two characters.
	emailRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9+_.\-]*[A-Za-z0-9])?@[A-Za-z0-9]+([.\-][A-Za-z0-9]+)*$`)
)

// Name is the display name of a cinema or movie.
type Name struct{ value string }

// NewName validates a raw cinema or movie name.
func NewName(raw string) (Name, error) {
	s := strings.TrimSpace(raw)
	if !nameRe.MatchString(s) {
		return Name{}, invalid("name", raw, NameConstraint)
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Phone is a cinema contact number.
type Phone struct{ value string }

func NewPhone(raw string) (Phone, error) {
	s := strings.TrimSpace(raw)
	if !phoneRe.MatchString(s) {
		return Phone{}, invalid("phone", raw, PhoneConstraint)
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// Email is a cinema contact address.
type Email struct{ value string }

func NewEmail(raw string) (Email, error) {
	s := strings.TrimSpace(raw)
	if !emailRe.MatchString(s) {
		return Email{}, invalid("email", raw, EmailConstraint)
	}
	// the domain's last label must be at least two characters
	domain := s[strings.LastIndexByte(s, '@')+1:]
	if i := strings.LastIndexAny(domain, ".-"); i >= 0 && len(domain)-i-1 < 2 {
		return Email{}, invalid("email", raw, EmailConstraint)
	}
	if len(domain) < 2 {
		return Email{}, invalid("email", raw, EmailConstraint)
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

// Address is the street address of a cinema.
type Address struct{ value string }

func NewAddress(raw string) (Address, error) {
	s := strings.TrimSpace(raw)
	if s == "" || !xmlText(s) {
		return Address{}, invalid("address", raw, AddressConstraint)
	}
	return Address{value: s}, nil
}

func (a Address) String() string { return a.value }

// xmlText reports whether s is valid UTF-8 made only of characters an XML 1.0
// document can carry, so it survives a save and load unchanged.
func xmlText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= utf8.MaxRune:
		default:
			return false
		}
	}
	return true
}
