package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"Monday":    Monday,
		"mondays":   Monday,
		"Tue":       Tuesday,
		"THURSDAYS": Thursday,
		" sunday ":  Sunday,
		"sat":       Saturday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "Funday", "M", "weekday"} {
		_, err := ParseWeekday(bad)
		assert.Error(t, err, bad)
	}
	var zero Weekday
	assert.False(t, zero.Valid())
	assert.Equal(t, "Wed", Wednesday.Short())
}

func TestWeekdayJSON(t *testing.T) {
	b, err := json.Marshal([]Weekday{Monday, Friday})
	require.NoError(t, err)
	assert.JSONEq(t, `["Monday","Friday"]`, string(b))

	var days []Weekday
	require.NoError(t, json.Unmarshal([]byte(`["tue","Saturdays"]`), &days))
	assert.Equal(t, []Weekday{Tuesday, Saturday}, days)
}

func TestParseProgramType(t *testing.T) {
	for in, want := range map[string]ProgramType{
		"On-site":  OnSite,
		"onsite":   OnSite,
		"Off-Site": OffSite,
		"off site": OffSite,
		"":         ProgramTypeUnset,
	} {
		got, err := ParseProgramType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseProgramType("hybrid")
	assert.Error(t, err)
}

func TestTagSet(t *testing.T) {
	s := ParseTagSet("Art, STEM,,  Music ")
	assert.Len(t, s, 3)
	assert.True(t, s.Has("STEM"))
	assert.True(t, s.Intersects([]string{"Sports", "Art"}))
	assert.False(t, s.Intersects([]string{"Sports"}))
	assert.False(t, s.Intersects(nil))
	assert.Equal(t, []string{"Art", "Music", "STEM"}, s.Sorted())
	assert.Empty(t, ParseTagSet(""))

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `["Art","Music","STEM"]`, string(b))
}

func TestProgramValidate(t *testing.T) {
	p := Program{Day: Monday, Start: timeofday.Of(15, 0), End: timeofday.Of(16, 0), MinAge: 3, MaxAge: 5}
	assert.NoError(t, p.Validate())

	bad := p
	bad.End = p.Start
	assert.Error(t, bad.Validate())

	bad = p
	bad.MinAge = 6
	assert.Error(t, bad.Validate())

	bad = p
	bad.Day = 0
	assert.Error(t, bad.Validate())
}

func TestAcceptsAgeInclusive(t *testing.T) {
	p := Program{MinAge: 3, MaxAge: 5}
	assert.True(t, p.AcceptsAge(3))
	assert.True(t, p.AcceptsAge(5))
	assert.True(t, p.AcceptsAge(4.5))
	assert.False(t, p.AcceptsAge(2.99))
	assert.False(t, p.AcceptsAge(5.01))
}

func TestScheduleEntrySnapshot(t *testing.T) {
	cost := 120.0
	p := Program{
		ID:           ProgramID("Clay", "Studio", Monday, timeofday.Of(15, 0)),
		Name:         "Clay",
		ProviderName: "Studio",
		Day:          Monday,
		Start:        timeofday.Of(15, 0),
		End:          timeofday.Of(16, 0),
		Categories:   NewTagSet("STEM", "Art"),
		Cost:         &cost,
	}
	e := NewScheduleEntry(p)
	assert.Equal(t, "Art, STEM", e.Category)
	assert.Equal(t, ScheduleKey{ProgramName: "Clay", ProviderName: "Studio", Day: Monday, Start: timeofday.Of(15, 0)}, e.Key())
	assert.Equal(t, "Clay|Studio|Monday|3:00 PM", e.ProgramID)

	cost = 999
	require.NotNil(t, e.Cost)
	assert.Equal(t, 120.0, *e.Cost, "entry must not alias catalog values")
}
