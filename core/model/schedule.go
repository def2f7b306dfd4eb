package model

import (
	"strings"

	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// ScheduleKey identifies a bookable session. Two entries with the same key
// are the same save.
type ScheduleKey struct {
	ProgramName  string            `json:"program_name"`
	ProviderName string            `json:"provider_name"`
	Day          Weekday           `json:"day"`
	Start        timeofday.Minutes `json:"start_time"`
}

// ScheduleEntry is a snapshot of a program taken when it is saved, so the
// entry survives later catalog changes.
type ScheduleEntry struct {
	ProgramID    string            `json:"program_id,omitempty"`
	ProgramName  string            `json:"program_name"`
	ProviderName string            `json:"provider_name"`
	Day          Weekday           `json:"day"`
	Start        timeofday.Minutes `json:"start_time"`
	End          timeofday.Minutes `json:"end_time"`
	Category     string            `json:"category,omitempty"`
	Cost         *float64          `json:"cost,omitempty"`
	CostPerClass *float64          `json:"cost_per_class,omitempty"`
	Address      string            `json:"address,omitempty"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	Website      string            `json:"website,omitempty"`
}

// NewScheduleEntry snapshots the schedule-relevant fields of p.
func NewScheduleEntry(p Program) ScheduleEntry {
	return ScheduleEntry{
		ProgramID:    p.ID,
		ProgramName:  p.Name,
		ProviderName: p.ProviderName,
		Day:          p.Day,
		Start:        p.Start,
		End:          p.End,
		Category:     strings.Join(p.Categories.Sorted(), ", "),
		Cost:         copyFloat(p.Cost),
		CostPerClass: copyFloat(p.CostPerClass),
		Address:      p.Address,
		ContactPhone: p.ContactPhone,
		Website:      p.Website,
	}
}

// Key returns the de-duplication identity of the entry.
func (e ScheduleEntry) Key() ScheduleKey {
	return ScheduleKey{
		ProgramName:  e.ProgramName,
		ProviderName: e.ProviderName,
		Day:          e.Day,
		Start:        e.Start,
	}
}

// Conflict is a pair of entries in one schedule that meet on the same day at
// overlapping times.
type Conflict struct {
	Day    Weekday       `json:"day"`
	First  ScheduleEntry `json:"first"`
	Second ScheduleEntry `json:"second"`
}

// LabeledEntry is an entry of the family view tagged with the schedule it
// came from.
type LabeledEntry struct {
	Entry          ScheduleEntry `json:"entry"`
	SourceSchedule string        `json:"source_schedule"`
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
