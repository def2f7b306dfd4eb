package metrics

import "time"

// SearchEvent summarises one catalog search.
type SearchEvent struct {
	RequestID    string
	Candidates   int
	Matches      int
	WithAddress  bool
	HomeResolved bool
	Duration     time.Duration
	Time         time.Time
}

// MetricsSink records search results for observability purposes.
type MetricsSink interface {
	RecordSearch(ev SearchEvent) error
}

// GeocodeOutcome classifies a geocode resolution.
type GeocodeOutcome string

const (
	// GeocodeHit is served from the cache without an outbound call.
	GeocodeHit GeocodeOutcome = "hit"
	// GeocodeResolved is a fresh lookup that returned a coordinate.
	GeocodeResolved GeocodeOutcome = "resolved"
	// GeocodeUnresolved is a fresh lookup that failed or found nothing.
	GeocodeUnresolved GeocodeOutcome = "unresolved"
)

// GeocodeEvent captures one call to the geocode cache.
type GeocodeEvent struct {
	Outcome GeocodeOutcome
	Latency time.Duration
	Time    time.Time
}

// GeocodeRecorder records geocode cache activity.
type GeocodeRecorder interface {
	RecordGeocode(ev GeocodeEvent) error
}

// ScheduleEvent captures a change to a named schedule.
type ScheduleEvent struct {
	Action   string
	Schedule string
	Time     time.Time
}

// ScheduleRecorder records schedule store changes.
type ScheduleRecorder interface {
	RecordScheduleChange(ev ScheduleEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordSearch(SearchEvent) error           { return nil }
func (NopSink) RecordGeocode(GeocodeEvent) error         { return nil }
func (NopSink) RecordScheduleChange(ScheduleEvent) error { return nil }
