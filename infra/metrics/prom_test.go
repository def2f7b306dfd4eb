package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordSearch(coremetrics.SearchEvent{Matches: 3, WithAddress: true, HomeResolved: true, Duration: 20 * time.Millisecond}))
	require.NoError(t, sink.RecordSearch(coremetrics.SearchEvent{Matches: 0}))
	require.NoError(t, sink.RecordGeocode(coremetrics.GeocodeEvent{Outcome: coremetrics.GeocodeHit}))
	require.NoError(t, sink.RecordGeocode(coremetrics.GeocodeEvent{Outcome: coremetrics.GeocodeUnresolved, Latency: time.Second}))
	require.NoError(t, sink.RecordScheduleChange(coremetrics.ScheduleEvent{Action: "added", Schedule: "Ami"}))

	assert.Equal(t, 1.0, testutil.ToFloat64(sink.searches.WithLabelValues("true", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.searches.WithLabelValues("false", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.geocodes.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.geocodes.WithLabelValues("unresolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.scheduleChanges.WithLabelValues("added")))
	assert.Equal(t, 2, testutil.CollectAndCount(sink.matches))
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, first.RecordScheduleChange(coremetrics.ScheduleEvent{Action: "removed"}))
	require.NoError(t, second.RecordScheduleChange(coremetrics.ScheduleEvent{Action: "removed"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(first.scheduleChanges.WithLabelValues("removed")))
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordSearch(coremetrics.SearchEvent{Matches: 1}))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "afterschool_searches_total"))
}
