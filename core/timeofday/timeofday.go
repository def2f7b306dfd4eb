package timeofday

import (
	"fmt"
	"strings"
	"time"
)

// Minutes is a time of day expressed as minutes since midnight.
type Minutes int

// Unknown marks a time that could not be parsed.
const Unknown Minutes = -1

const minutesPerDay = 24 * 60

// layouts are tried in order after the input is trimmed and upper-cased.
var layouts = []string{
	"3:04 PM",
	"3:04PM",
	"15:04",
	"15:04:05",
}

// Known reports whether m holds a parsed time.
func (m Minutes) Known() bool { return m >= 0 && m < minutesPerDay }

// Of builds a Minutes value from an hour (0-23) and minute.
func Of(hour, minute int) Minutes { return Minutes(hour*60 + minute) }

// Parse converts s to minutes since midnight. It accepts "h:mm AM/PM" in any
// case, with or without the space, and 24-hour "HH:MM". Any failure yields
// Unknown.
func Parse(s string) Minutes {
	m, err := ParseStrict(s)
	if err != nil {
		return Unknown
	}
	return m
}

// ParseStrict is Parse with an error describing the failure.
func ParseStrict(s string) (Minutes, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return Unknown, fmt.Errorf("empty time")
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return Of(t.Hour(), t.Minute()), nil
		}
	}
	return Unknown, fmt.Errorf("invalid time %q: want h:mm AM/PM or HH:MM", s)
}

// Format renders m as "h:mm AM" / "h:mm PM". Unknown renders as "".
func Format(m Minutes) string {
	if m == Unknown {
		return ""
	}
	v := int(m) % minutesPerDay
	if v < 0 {
		v += minutesPerDay
	}
	h, min := v/60, v%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, min, suffix)
}

func (m Minutes) String() string { return Format(m) }

// Contains reports whether [innerStart, innerEnd] lies fully inside
// [outerStart, outerEnd]. Any Unknown bound makes the check fail.
func Contains(outerStart, outerEnd, innerStart, innerEnd Minutes) bool {
	if !allKnown(outerStart, outerEnd, innerStart, innerEnd) {
		return false
	}
	return innerStart >= outerStart && innerEnd <= outerEnd
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Any Unknown bound yields false.
func Overlaps(aStart, aEnd, bStart, bEnd Minutes) bool {
	if !allKnown(aStart, aEnd, bStart, bEnd) {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}

// HourlyOptions lists every full hour of the day in display form, starting
// at midnight.
func HourlyOptions() []string {
	out := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		out = append(out, Format(Of(h, 0)))
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (m Minutes) MarshalText() ([]byte, error) {
	return []byte(Format(m)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value decodes
// to Unknown.
func (m *Minutes) UnmarshalText(b []byte) error {
	if strings.TrimSpace(string(b)) == "" {
		*m = Unknown
		return nil
	}
	v, err := ParseStrict(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func allKnown(ms ...Minutes) bool {
	for _, m := range ms {
		if !m.Known() {
			return false
		}
	}
	return true
}
