// Package search runs caregiver searches against the catalog: filter, rank,
// then record the search for metrics and the audit log.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MakerMama/afterschool-finder/core/catalog"
	"github.com/MakerMama/afterschool-finder/core/filter"
	"github.com/MakerMama/afterschool-finder/core/logger"
	"github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/rank"
	"github.com/MakerMama/afterschool-finder/core/searchlog"
)

// Result is a ranked list of matches.
type Result struct {
	ID           string        `json:"id"`
	Matches      []model.Match `json:"matches"`
	HomeResolved bool          `json:"home_resolved"`
	Candidates   int           `json:"candidates"`
	Duration     time.Duration `json:"-"`
}

// Service answers searches over one catalog.
type Service struct {
	catalog *catalog.Catalog
	engine  *filter.Engine
	logs    searchlog.LogStore
	sink    metrics.MetricsSink
	log     logger.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogStore records every search in ls.
func WithLogStore(ls searchlog.LogStore) Option { return func(s *Service) { s.logs = ls } }

// WithMetrics reports every search to sink.
func WithMetrics(sink metrics.MetricsSink) Option { return func(s *Service) { s.sink = sink } }

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService creates a Service.
func NewService(c *catalog.Catalog, e *filter.Engine, opts ...Option) *Service {
	s := &Service{
		catalog: c,
		engine:  e,
		logs:    searchlog.NopStore{},
		sink:    metrics.NopSink{},
		log:     logger.Nop{},
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the catalog being searched.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Program looks up a catalog program by ID.
func (s *Service) Program(id string) (model.Program, bool) { return s.catalog.Program(id) }

// Search filters and ranks the catalog. An empty result is not an error.
func (s *Service) Search(ctx context.Context, c model.FilterCriteria) (Result, error) {
	start := s.now()
	programs := s.catalog.Programs()
	out, err := s.engine.FilterCatalog(ctx, programs, c)
	if err != nil {
		return Result{}, fmt.Errorf("filter catalog: %w", err)
	}
	res := Result{
		ID:           s.newID(),
		Matches:      rank.Rank(out.Matches, out.HomeResolved),
		HomeResolved: out.HomeResolved,
		Candidates:   len(programs),
	}
	end := s.now()
	res.Duration = end.Sub(start)
	s.record(ctx, c, res, end)
	return res, nil
}

func (s *Service) record(ctx context.Context, c model.FilterCriteria, res Result, at time.Time) {
	if err := s.sink.RecordSearch(metrics.SearchEvent{
		RequestID:    res.ID,
		Candidates:   res.Candidates,
		Matches:      len(res.Matches),
		WithAddress:  c.HomeAddress != "",
		HomeResolved: res.HomeResolved,
		Duration:     res.Duration,
		Time:         at,
	}); err != nil {
		s.log.Warnf("record search metrics: %v", err)
	}

	ids := make([]string, len(res.Matches))
	for i, m := range res.Matches {
		ids[i] = m.Program.ID
	}
	rec := searchlog.LogRecord{
		ID:           res.ID,
		Timestamp:    at,
		Criteria:     c,
		Candidates:   res.Candidates,
		Matched:      len(res.Matches),
		ProgramIDs:   ids,
		HomeResolved: res.HomeResolved,
		DurationMS:   res.Duration.Milliseconds(),
	}
	if err := s.logs.Append(context.WithoutCancel(ctx), rec); err != nil {
		s.log.Warnf("append search log: %v", err)
	}
	s.log.Debugw("search", map[string]any{
		"id":      res.ID,
		"matched": len(res.Matches),
		"of":      res.Candidates,
		"ms":      res.Duration.Milliseconds(),
	})
}
