package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
)

type bodyRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (b *bodyRecorder) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, strings.TrimSpace(string(data)))
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
}

func lineProtocol(p *write.Point) string {
	return strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
}

func TestInfluxSink_RecordSearch(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server()
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	ev := coremetrics.SearchEvent{
		RequestID:    "req1",
		Candidates:   40,
		Matches:      3,
		WithAddress:  true,
		HomeResolved: false,
		Duration:     1500 * time.Microsecond,
		Time:         now,
	}
	if err := sink.RecordSearch(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("search").
		AddTag("request_id", "req1").
		AddTag("with_address", "true").
		AddTag("home_resolved", "false").
		AddField("candidates", 40).
		AddField("matches", 3).
		AddField("duration_ms", 1.5).
		SetTime(now)
	if len(rec.bodies) != 1 || rec.bodies[0] != lineProtocol(p) {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestInfluxSink_RecordGeocodeAndSchedule(t *testing.T) {
	rec := &bodyRecorder{}
	srv := rec.server()
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()
	now := time.Now()
	if err := sink.RecordGeocode(coremetrics.GeocodeEvent{Outcome: coremetrics.GeocodeResolved, Latency: 250 * time.Millisecond, Time: now}); err != nil {
		t.Fatalf("record geocode: %v", err)
	}
	if err := sink.RecordScheduleChange(coremetrics.ScheduleEvent{Action: "added", Schedule: "Ami", Time: now}); err != nil {
		t.Fatalf("record schedule: %v", err)
	}
	geo := write.NewPointWithMeasurement("geocode").
		AddTag("outcome", "resolved").
		AddField("latency_ms", 250.0).
		SetTime(now)
	sched := write.NewPointWithMeasurement("schedule_change").
		AddTag("action", "added").
		AddTag("schedule", "Ami").
		AddField("count", 1).
		SetTime(now)
	if len(rec.bodies) != 2 || rec.bodies[0] != lineProtocol(geo) || rec.bodies[1] != lineProtocol(sched) {
		t.Errorf("unexpected bodies: %#v", rec.bodies)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
