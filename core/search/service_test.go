package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakerMama/afterschool-finder/core/catalog"
	"github.com/MakerMama/afterschool-finder/core/filter"
	"github.com/MakerMama/afterschool-finder/core/geocode"
	"github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/searchlog"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

type memLog struct{ recs []searchlog.LogRecord }

func (m *memLog) Append(_ context.Context, r searchlog.LogRecord) error {
	m.recs = append(m.recs, r)
	return nil
}
func (m *memLog) Query(context.Context, searchlog.LogQuery) ([]searchlog.LogRecord, error) {
	return m.recs, nil
}
func (m *memLog) Close() error { return nil }

type memSink struct{ events []metrics.SearchEvent }

func (m *memSink) RecordSearch(ev metrics.SearchEvent) error {
	m.events = append(m.events, ev)
	return nil
}

func prog(name string, day model.Weekday, minAge, maxAge float64, cat, addr string) model.Program {
	p := model.Program{
		Name: name, ProviderName: "Org", Day: day,
		Start: timeofday.Of(15, 0), End: timeofday.Of(16, 0),
		MinAge: minAge, MaxAge: maxAge,
		Categories: model.NewTagSet(cat), Address: addr,
	}
	p.ID = model.ProgramID(p.Name, p.ProviderName, p.Day, p.Start)
	return p
}

func newService(t *testing.T, opts ...Option) (*Service, *geocode.Cache) {
	t.Helper()
	places := map[string]model.Coordinate{
		"home":   {Latitude: 40, Longitude: -74},
		"studio": {Latitude: 40 + 0.5/69.11, Longitude: -74},
		"lab":    {Latitude: 40 + 5/69.11, Longitude: -74},
		"gym":    {Latitude: 40 + 0.2/69.11, Longitude: -74},
	}
	provider := geocode.ProviderFunc(func(_ context.Context, a string) (model.Coordinate, bool, error) {
		c, ok := places[a]
		return c, ok, nil
	})
	cache := geocode.NewCache(provider, geocode.WithMinInterval(0))
	cat := catalog.New([]model.Program{
		prog("P1", model.Monday, 3, 5, "Art", "studio"),
		prog("P2", model.Monday, 6, 8, "Art", "studio"),
		prog("P3", model.Tuesday, 3, 5, "STEM", "lab"),
		prog("P4", model.Monday, 3, 5, "Art", "gym"),
	})
	return NewService(cat, filter.NewEngine(cache), opts...), cache
}

func TestSearchScenario(t *testing.T) {
	logs := &memLog{}
	sink := &memSink{}
	svc, cache := newService(t, WithLogStore(logs), WithMetrics(sink))

	res, err := svc.Search(context.Background(), model.FilterCriteria{
		ChildAge:         model.Float(4),
		Days:             []model.Weekday{model.Monday},
		Categories:       []string{"Art"},
		HomeAddress:      "home",
		MaxDistanceMiles: model.Float(1),
	})
	require.NoError(t, err)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "P4", res.Matches[0].Program.Name, "nearest first")
	assert.Equal(t, "P1", res.Matches[1].Program.Name)
	assert.True(t, res.HomeResolved)
	assert.Equal(t, 4, res.Candidates)
	assert.NotEmpty(t, res.ID)
	assert.EqualValues(t, 3, cache.Lookups(), "one lookup per distinct address")

	require.Len(t, logs.recs, 1)
	assert.Equal(t, res.ID, logs.recs[0].ID)
	assert.Equal(t, []string{res.Matches[0].Program.ID, res.Matches[1].Program.ID}, logs.recs[0].ProgramIDs)
	require.Len(t, sink.events, 1)
	assert.Equal(t, 2, sink.events[0].Matches)
	assert.True(t, sink.events[0].WithAddress)
}

func TestSearchWithoutAddressKeepsCatalogOrder(t *testing.T) {
	svc, cache := newService(t)
	res, err := svc.Search(context.Background(), model.FilterCriteria{Categories: []string{"Art"}})
	require.NoError(t, err)
	var names []string
	for _, m := range res.Matches {
		names = append(names, m.Program.Name)
	}
	assert.Equal(t, []string{"P1", "P2", "P4"}, names)
	assert.False(t, res.HomeResolved)
	assert.Zero(t, cache.Lookups())
}

func TestSearchNoMatches(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.Search(context.Background(), model.FilterCriteria{Days: []model.Weekday{model.Sunday}})
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
}

func TestSearchCancelled(t *testing.T) {
	logs := &memLog{}
	svc, _ := newService(t, WithLogStore(logs))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Search(ctx, model.FilterCriteria{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, logs.recs)
}

func TestSearchClock(t *testing.T) {
	at := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	logs := &memLog{}
	svc, _ := newService(t, WithLogStore(logs), WithClock(func() time.Time { return at }))
	_, err := svc.Search(context.Background(), model.FilterCriteria{})
	require.NoError(t, err)
	assert.Equal(t, at, logs.recs[0].Timestamp)
}

func TestProgramLookup(t *testing.T) {
	svc, _ := newService(t)
	id := model.ProgramID("P3", "Org", model.Tuesday, timeofday.Of(15, 0))
	p, ok := svc.Program(id)
	require.True(t, ok)
	assert.Equal(t, "P3", p.Name)
}
