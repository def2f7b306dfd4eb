package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/MakerMama/afterschool-finder/core/metrics"
)

// PromSink records search, geocode and schedule activity in Prometheus
// metrics.
type PromSink struct {
	searches        *prometheus.CounterVec
	matches         prometheus.Histogram
	searchDuration  prometheus.Histogram
	geocodes        *prometheus.CounterVec
	geocodeLatency  *prometheus.HistogramVec
	scheduleChanges *prometheus.CounterVec
}

// NewPromSink registers metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.searches, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "afterschool_searches_total",
		Help: "Total number of catalog searches",
	}, []string{"with_address", "home_resolved"})); err != nil {
		return nil, err
	}
	if s.matches, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "afterschool_search_matches",
		Help:    "Number of programs returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})); err != nil {
		return nil, err
	}
	if s.searchDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "afterschool_search_duration_seconds",
		Help:    "Time spent filtering and ranking the catalog",
		Buckets: prometheus.DefBuckets,
	})); err != nil {
		return nil, err
	}
	if s.geocodes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "afterschool_geocode_resolutions_total",
		Help: "Address resolutions by outcome (hit, resolved, unresolved)",
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.geocodeLatency, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "afterschool_geocode_latency_seconds",
		Help:    "Time to resolve an address, including throttling",
		Buckets: []float64{.001, .01, .1, .5, 1, 2, 5, 10},
	}, []string{"outcome"})); err != nil {
		return nil, err
	}
	if s.scheduleChanges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "afterschool_schedule_changes_total",
		Help: "Schedule store mutations by action",
	}, []string{"action"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSearch counts the search and observes its size and duration.
func (s *PromSink) RecordSearch(ev coremetrics.SearchEvent) error {
	s.searches.WithLabelValues(strconv.FormatBool(ev.WithAddress), strconv.FormatBool(ev.HomeResolved)).Inc()
	s.matches.Observe(float64(ev.Matches))
	s.searchDuration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordGeocode counts the resolution outcome and its latency.
func (s *PromSink) RecordGeocode(ev coremetrics.GeocodeEvent) error {
	outcome := string(ev.Outcome)
	s.geocodes.WithLabelValues(outcome).Inc()
	s.geocodeLatency.WithLabelValues(outcome).Observe(ev.Latency.Seconds())
	return nil
}

// RecordScheduleChange counts schedule mutations.
func (s *PromSink) RecordScheduleChange(ev coremetrics.ScheduleEvent) error {
	s.scheduleChanges.WithLabelValues(ev.Action).Inc()
	return nil
}
