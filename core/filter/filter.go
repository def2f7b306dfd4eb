// Package filter matches catalog programs against a caregiver's criteria.
package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MakerMama/afterschool-finder/core/geo"
	"github.com/MakerMama/afterschool-finder/core/logger"
	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
)

// Resolver turns an address into a coordinate. *geocode.Cache satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, address string) (model.Coordinate, bool)
}

// Engine evaluates programs against FilterCriteria.
type Engine struct {
	resolver Resolver
	workers  int
	log      logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of programs evaluated concurrently.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine creates an Engine. A nil resolver disables the distance
// predicate: with a home address and a maximum set, every program is
// excluded because no distance can be verified.
func NewEngine(r Resolver, opts ...Option) *Engine {
	e := &Engine{resolver: r, workers: runtime.NumCPU(), log: logger.Nop{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate reports whether p satisfies every criterion in c. The returned
// distance is set whenever both the home and program addresses resolve,
// even if c has no maximum distance.
func (e *Engine) Evaluate(ctx context.Context, p model.Program, c model.FilterCriteria) (bool, *float64) {
	if !matchStatic(p, c) {
		return false, nil
	}
	if c.HomeAddress == "" {
		return true, nil
	}
	home, ok := e.resolve(ctx, c.HomeAddress)
	return e.matchDistance(ctx, p, c, home, ok)
}

// matchStatic applies every predicate that needs no lookup, cheapest first.
func matchStatic(p model.Program, c model.FilterCriteria) bool {
	if len(c.Days) > 0 && !c.HasDay(p.Day) {
		return false
	}
	if c.ChildAge != nil && !p.AcceptsAge(*c.ChildAge) {
		return false
	}
	if w := c.TimeWindow; w != nil && w.EarliestStart.Known() && w.LatestEnd.Known() {
		if !timeofday.Contains(w.EarliestStart, w.LatestEnd, p.Start, p.End) {
			return false
		}
	}
	if len(c.Categories) > 0 && !p.Categories.Intersects(c.Categories) {
		return false
	}
	if len(c.ProgramTypes) > 0 && !c.HasProgramType(p.ProgramType) {
		return false
	}
	if c.GradeLevel != "" && p.ProgramType == model.OnSite && len(p.GradeLevels) > 0 {
		if !p.GradeLevels.Has(c.GradeLevel) {
			return false
		}
	}
	return true
}

func (e *Engine) matchDistance(ctx context.Context, p model.Program, c model.FilterCriteria, home model.Coordinate, homeOK bool) (bool, *float64) {
	var dist *float64
	if homeOK {
		if at, ok := e.resolve(ctx, p.Address); ok {
			d := geo.HaversineMiles(home, at)
			dist = &d
		}
	}
	if c.MaxDistanceMiles == nil {
		return true, dist
	}
	if dist == nil {
		return false, nil
	}
	return *dist <= *c.MaxDistanceMiles, dist
}

func (e *Engine) resolve(ctx context.Context, address string) (model.Coordinate, bool) {
	if e.resolver == nil || address == "" {
		return model.Coordinate{}, false
	}
	return e.resolver.Resolve(ctx, address)
}

// Outcome is the result of filtering a catalog.
type Outcome struct {
	Matches []model.Match
	// HomeResolved is true when a home address was given and geocoded.
	HomeResolved bool
}

// FilterCatalog evaluates every program and returns the matches in catalog
// order. The home address is resolved once; program addresses go through
// the shared resolver so repeated venues cost one lookup. The only error is
// cancellation of ctx.
func (e *Engine) FilterCatalog(ctx context.Context, programs []model.Program, c model.FilterCriteria) (Outcome, error) {
	var (
		home   model.Coordinate
		homeOK bool
	)
	if c.HomeAddress != "" {
		home, homeOK = e.resolve(ctx, c.HomeAddress)
		if !homeOK {
			e.log.Debugw("home address unresolved", map[string]any{"address": c.HomeAddress})
		}
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	type result struct {
		ok   bool
		dist *float64
	}
	results := make([]result, len(programs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range programs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := programs[i]
			if !matchStatic(p, c) {
				return nil
			}
			if c.HomeAddress == "" {
				results[i] = result{ok: true}
				return nil
			}
			ok, dist := e.matchDistance(gctx, p, c, home, homeOK)
			results[i] = result{ok: ok, dist: dist}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{HomeResolved: homeOK}
	for i, r := range results {
		if r.ok {
			out.Matches = append(out.Matches, model.Match{Program: programs[i], Index: i, Distance: r.dist})
		}
	}
	return out, nil
}
