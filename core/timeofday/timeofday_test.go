package timeofday

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Minutes
	}{
		{"3:00 PM", Of(15, 0)},
		{"03:30 PM", Of(15, 30)},
		{"3:45pm", Of(15, 45)},
		{"12:00 AM", 0},
		{"12:15 PM", Of(12, 15)},
		{"9:05 am", Of(9, 5)},
		{"15:00", Of(15, 0)},
		{"08:00", Of(8, 0)},
		{"  7:10 PM ", Of(19, 10)},
		{"", Unknown},
		{"noon", Unknown},
		{"25:00", Unknown},
		{"13:00 PM", Unknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Parse(c.in), "Parse(%q)", c.in)
	}
}

func TestParseDistinguishesMidnightFromFailure(t *testing.T) {
	midnight := Parse("12:00 AM")
	bad := Parse("not a time")
	assert.True(t, midnight.Known())
	assert.False(t, bad.Known())
	assert.NotEqual(t, midnight, bad)

	_, err := ParseStrict("not a time")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12:00 AM", Format(0))
	assert.Equal(t, "9:05 AM", Format(Of(9, 5)))
	assert.Equal(t, "12:00 PM", Format(Of(12, 0)))
	assert.Equal(t, "3:30 PM", Format(Of(15, 30)))
	assert.Equal(t, "11:59 PM", Format(Of(23, 59)))
	assert.Equal(t, "", Format(Unknown))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for m := Minutes(0); m < minutesPerDay; m += 7 {
		if got := Parse(Format(m)); got != m {
			t.Fatalf("round trip %d -> %q -> %d", m, Format(m), got)
		}
	}
}

func TestContains(t *testing.T) {
	eight, six := Parse("8:00 AM"), Parse("6:00 PM")
	assert.True(t, Contains(eight, six, Parse("9:00 AM"), Parse("5:00 PM")))
	assert.False(t, Contains(eight, six, Parse("7:00 AM"), Parse("5:00 PM")), "starts before window")
	assert.False(t, Contains(eight, six, Parse("9:00 AM"), Parse("7:00 PM")), "ends after window")
	assert.True(t, Contains(eight, six, eight, six), "bounds are inclusive")
	assert.False(t, Contains(eight, six, Unknown, Parse("5:00 PM")))
}

func TestOverlaps(t *testing.T) {
	nine, ten, eleven := Of(9, 0), Of(10, 0), Of(11, 0)
	assert.False(t, Overlaps(nine, ten, ten, eleven), "back-to-back")
	assert.True(t, Overlaps(nine, eleven, ten, eleven))
	assert.True(t, Overlaps(nine, eleven, Of(9, 30), Of(9, 45)), "nested")
	assert.False(t, Overlaps(nine, ten, Unknown, eleven))

	intervals := [][2]Minutes{
		{nine, ten}, {Of(9, 30), Of(10, 30)}, {ten, eleven}, {Of(8, 0), Of(12, 0)}, {Of(13, 0), Of(14, 0)},
	}
	for _, a := range intervals {
		for _, b := range intervals {
			if Overlaps(a[0], a[1], b[0], b[1]) != Overlaps(b[0], b[1], a[0], a[1]) {
				t.Fatalf("overlap not symmetric for %v %v", a, b)
			}
		}
	}
}

func TestHourlyOptions(t *testing.T) {
	opts := HourlyOptions()
	assert.Len(t, opts, 24)
	assert.Equal(t, "12:00 AM", opts[0])
	assert.Equal(t, "12:00 PM", opts[12])
	assert.Equal(t, "11:00 PM", opts[23])
}

func TestTextMarshal(t *testing.T) {
	b, err := Of(15, 0).MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "3:00 PM", string(b))

	var m Minutes
	assert.NoError(t, m.UnmarshalText([]byte("08:15 AM")))
	assert.Equal(t, Of(8, 15), m)
	assert.NoError(t, m.UnmarshalText(nil))
	assert.Equal(t, Unknown, m)
	assert.Error(t, m.UnmarshalText([]byte("later")))
}
