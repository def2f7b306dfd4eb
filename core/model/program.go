package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Program is one catalog row: a single activity session offered by one
// provider on one weekday and time slot. Programs are treated as immutable.
type Program struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ProviderName string            `json:"provider_name"`
	Day          Weekday           `json:"day"`
	Start        timeofday.Minutes `json:"start_time"`
	End          timeofday.Minutes `json:"end_time"`
	MinAge       float64           `json:"min_age"`
	MaxAge       float64           `json:"max_age"`
	Categories   TagSet            `json:"categories"`
	ProgramType  ProgramType       `json:"program_type,omitempty"`
	GradeLevels  TagSet            `json:"grade_levels,omitempty"`
	Address      string            `json:"address"`

	// Optional fields. Nil or zero values mean the catalog left them blank.
	Cost             *float64  `json:"cost,omitempty"`
	CostPerClass     *float64  `json:"cost_per_class,omitempty"`
	EnrollmentType   string    `json:"enrollment_type,omitempty"`
	Website          string    `json:"website,omitempty"`
	ContactPhone     string    `json:"contact_phone,omitempty"`
	SchoolPickupFrom string    `json:"school_pickup_from,omitempty"`
	StartDate        time.Time `json:"start_date,omitempty"`
	EndDate          time.Time `json:"end_date,omitempty"`
}

// ProgramID derives the stable identifier of a program. The catalog has no
// primary key, so the session tuple is used.
func ProgramID(name, provider string, day Weekday, start timeofday.Minutes) string {
	return strings.Join([]string{
		strings.TrimSpace(name),
		strings.TrimSpace(provider),
		day.String(),
		timeofday.Format(start),
	}, "|")
}

// Validate checks the record invariants.
func (p Program) Validate() error {
	if !p.Day.Valid() {
		return fmt.Errorf("invalid day of week")
	}
	if !p.Start.Known() || !p.End.Known() {
		return fmt.Errorf("start and end time are required")
	}
	if p.Start >= p.End {
		return fmt.Errorf("start time %s must be before end time %s", p.Start, p.End)
	}
	if p.MinAge > p.MaxAge {
		return fmt.Errorf("min age %g exceeds max age %g", p.MinAge, p.MaxAge)
	}
	return nil
}

// AcceptsAge reports whether age lies within the inclusive age bounds.
func (p Program) AcceptsAge(age float64) bool {
	return p.MinAge <= age && age <= p.MaxAge
}

// Match is a program that passed a filter, with its catalog position and the
// distance from the caregiver's home when it could be computed.
type Match struct {
	Program  Program  `json:"program"`
	Index    int      `json:"index"`
	Distance *float64 `json:"distance_miles,omitempty"`
}
