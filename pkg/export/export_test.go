package export

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

func entries() []model.LabeledEntry {
	cost := 120.0
	return []model.LabeledEntry{
		{SourceSchedule: "Emma", Entry: model.ScheduleEntry{
			ProgramName: "Clay, Wheel", ProviderName: "Studio", Day: model.Monday,
			Start: timeofday.Of(15, 0), End: timeofday.Of(16, 0), Category: "Art", Cost: &cost,
		}},
		{SourceSchedule: "Leo", Entry: model.ScheduleEntry{
			ProgramName: "Robots", ProviderName: "Lab", Day: model.Tuesday,
			Start: timeofday.Of(15, 30), End: timeofday.Of(16, 30),
		}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries()))
	want := "schedule,day,start_time,end_time,program,provider,category,cost,cost_per_class,address,contact_phone,website\n" +
		"Emma,Monday,3:00 PM,4:00 PM,\"Clay, Wheel\",Studio,Art,120.00,,,,\n" +
		"Leo,Tuesday,3:30 PM,4:30 PM,Robots,Lab,,,,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries()))
	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Leo", got[1]["source_schedule"])
	entry := got[0]["entry"].(map[string]any)
	assert.Equal(t, "Monday", entry["day"])
	assert.Equal(t, "3:00 PM", entry["start_time"])
}
