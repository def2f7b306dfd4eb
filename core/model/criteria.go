package model

import "github.com/MakerMama/afterschool-finder/core/timeofday"

// TimeWindow is the part of the day a caregiver can cover. A program
// qualifies only when it lies fully inside the window.
type TimeWindow struct {
	EarliestStart timeofday.Minutes `json:"earliest_start"`
	LatestEnd     timeofday.Minutes `json:"latest_end"`
}

// FilterCriteria is a caregiver's search request. Every field is optional;
// an unset field disables its predicate.
type FilterCriteria struct {
	ChildAge         *float64      `json:"child_age,omitempty"`
	GradeLevel       string        `json:"grade_level,omitempty"`
	ProgramTypes     []ProgramType `json:"program_types,omitempty"`
	Categories       []string      `json:"categories,omitempty"`
	Days             []Weekday     `json:"days,omitempty"`
	TimeWindow       *TimeWindow   `json:"time_window,omitempty"`
	HomeAddress      string        `json:"home_address,omitempty"`
	MaxDistanceMiles *float64      `json:"max_distance_miles,omitempty"`
}

// HasDay reports whether d is among the requested days.
func (c FilterCriteria) HasDay(d Weekday) bool {
	for _, v := range c.Days {
		if v == d {
			return true
		}
	}
	return false
}

// HasProgramType reports whether t is among the requested program types.
func (c FilterCriteria) HasProgramType(t ProgramType) bool {
	for _, v := range c.ProgramTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Float returns a pointer to v, for optional numeric criteria.
func Float(v float64) *float64 { return &v }
