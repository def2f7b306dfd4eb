package model

import (
	"fmt"
	"strings"
)

// Weekday identifies the day a program meets. The zero value is invalid so a
// forgotten assignment never silently reads as Monday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays lists every valid day, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// String returns the full English day name.
func (d Weekday) String() string {
	switch d {
	case Monday:
		return "Monday"
	case Tuesday:
		return "Tuesday"
	case Wednesday:
		return "Wednesday"
	case Thursday:
		return "Thursday"
	case Friday:
		return "Friday"
	case Saturday:
		return "Saturday"
	case Sunday:
		return "Sunday"
	default:
		return "unknown"
	}
}

// Short returns the three-letter abbreviation.
func (d Weekday) Short() string {
	if !d.Valid() {
		return "???"
	}
	return d.String()[:3]
}

// Valid reports whether d is one of the seven days.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// ParseWeekday accepts full names, plural forms ("Mondays") and three-letter
// abbreviations, ignoring case.
func ParseWeekday(s string) (Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) > 3 {
		v = strings.TrimSuffix(v, "s")
	}
	for _, d := range Weekdays {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(b []byte) error {
	v, err := ParseWeekday(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ProgramType tells whether a program runs at the child's school or elsewhere.
type ProgramType int

const (
	ProgramTypeUnset ProgramType = iota
	OnSite
	OffSite
)

// String returns the catalog spelling of the type.
func (t ProgramType) String() string {
	switch t {
	case OnSite:
		return "On-site"
	case OffSite:
		return "Off-site"
	default:
		return ""
	}
}

// ParseProgramType maps catalog values to a ProgramType. Blank input is
// ProgramTypeUnset.
func ParseProgramType(s string) (ProgramType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "", " ", "", "_", "").Replace(v)
	switch v {
	case "":
		return ProgramTypeUnset, nil
	case "onsite":
		return OnSite, nil
	case "offsite":
		return OffSite, nil
	default:
		return ProgramTypeUnset, fmt.Errorf("invalid program type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t ProgramType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ProgramType) UnmarshalText(b []byte) error {
	v, err := ParseProgramType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
