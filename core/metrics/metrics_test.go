package metrics

import (
	"errors"
	"slices"
	"testing"

	"github.com/MakerMama/afterschool-finder/core/factory"
)

type recordSink struct {
	searches  int
	geocodes  int
	schedules int
	err       error
}

func (r *recordSink) RecordSearch(SearchEvent) error {
	r.searches++
	return r.err
}

func (r *recordSink) RecordGeocode(GeocodeEvent) error {
	r.geocodes++
	return nil
}

func (r *recordSink) RecordScheduleChange(ScheduleEvent) error {
	r.schedules++
	return nil
}

// searchOnly does not implement the optional recorders.
type searchOnly struct{ n int }

func (s *searchOnly) RecordSearch(SearchEvent) error {
	s.n++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	s3 := &searchOnly{}
	m := NewMultiSink(s1, s2, s3)
	if err := m.RecordSearch(SearchEvent{Matches: 2}); err != nil {
		t.Fatalf("record search: %v", err)
	}
	if err := m.RecordGeocode(GeocodeEvent{Outcome: GeocodeHit}); err != nil {
		t.Fatalf("record geocode: %v", err)
	}
	if err := m.RecordScheduleChange(ScheduleEvent{Action: "added"}); err != nil {
		t.Fatalf("record schedule: %v", err)
	}
	if s1.searches != 1 || s2.searches != 1 || s3.n != 1 {
		t.Fatalf("searches not forwarded")
	}
	if s1.geocodes != 1 || s2.schedules != 1 {
		t.Fatalf("optional events not forwarded")
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	failing := &recordSink{err: errors.New("boom")}
	after := &recordSink{}
	m := NewMultiSink(failing, after)
	if err := m.RecordSearch(SearchEvent{}); err == nil {
		t.Fatal("expected error")
	}
	if after.searches != 0 {
		t.Fatalf("sink after failure should not be called")
	}
}

func TestNewMetricsSink(t *testing.T) {
	s, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create nop default: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}

	s, err = NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}

	if _, err := NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !slices.Contains(SinkTypes(), "nop") {
		t.Fatalf("nop not registered: %v", SinkTypes())
	}
}
