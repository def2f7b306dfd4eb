package geocode

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/MakerMama/afterschool-finder/core/logger"
	"github.com/MakerMama/afterschool-finder/core/metrics"
	"github.com/MakerMama/afterschool-finder/core/model"
)

const (
	// DefaultMinInterval is the spacing between outbound requests.
	DefaultMinInterval = time.Second
	// DefaultTimeout bounds a single outbound request.
	DefaultTimeout = 10 * time.Second
)

// Cache memoizes Provider lookups in a Store.
type Cache struct {
	provider Provider
	store    Store
	limiter  *rate.Limiter
	timeout  time.Duration
	log      logger.Logger
	recorder metrics.GeocodeRecorder

	group   singleflight.Group
	lookups atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithStore replaces the default MemoryStore.
func WithStore(s Store) Option { return func(c *Cache) { c.store = s } }

// WithMinInterval sets the minimum spacing between outbound requests. Zero
// disables throttling.
func WithMinInterval(d time.Duration) Option {
	return func(c *Cache) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithTimeout bounds each outbound request.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option { return func(c *Cache) { c.log = l } }

// WithRecorder reports every resolution to r.
func WithRecorder(r metrics.GeocodeRecorder) Option { return func(c *Cache) { c.recorder = r } }

// NewCache creates a Cache in front of p.
func NewCache(p Provider, opts ...Option) *Cache {
	c := &Cache{
		provider: p,
		store:    NewMemoryStore(),
		limiter:  rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
		timeout:  DefaultTimeout,
		log:      logger.Nop{},
		recorder: metrics.NopSink{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Resolve returns the coordinate for address. ok is false when the address
// is blank or could not be geocoded; neither case is an error.
//
// Cache hits return immediately. A miss waits for the rate limiter and
// performs one provider call whose result, success or not, is stored.
// Cancelling ctx abandons the wait but not a lookup already in flight, so
// other callers waiting on the same address still get its result.
func (c *Cache) Resolve(ctx context.Context, address string) (model.Coordinate, bool) {
	if strings.TrimSpace(address) == "" {
		return model.Coordinate{}, false
	}
	start := time.Now()
	if e, hit := c.cached(ctx, address); hit {
		c.record(metrics.GeocodeHit, start)
		return e.Coordinate, e.Resolved
	}

	ch := c.group.DoChan(address, func() (any, error) {
		bg := context.WithoutCancel(ctx)
		// Another flight may have finished between our miss and this call.
		if e, hit := c.cached(bg, address); hit {
			return e, nil
		}
		if err := c.limiter.Wait(bg); err != nil {
			return Entry{}, err
		}
		e := c.lookup(bg, address)
		if err := c.store.Set(bg, address, e); err != nil {
			c.log.Warnf("geocode store set %q: %v", address, err)
		}
		return e, nil
	})

	select {
	case <-ctx.Done():
		return model.Coordinate{}, false
	case res := <-ch:
		e, _ := res.Val.(Entry)
		if e.Resolved {
			c.record(metrics.GeocodeResolved, start)
		} else {
			c.record(metrics.GeocodeUnresolved, start)
		}
		return e.Coordinate, e.Resolved
	}
}

// Lookups returns the number of outbound provider calls made so far.
func (c *Cache) Lookups() int64 { return c.lookups.Load() }

func (c *Cache) cached(ctx context.Context, address string) (Entry, bool) {
	e, ok, err := c.store.Get(ctx, address)
	if err != nil {
		c.log.Warnf("geocode store get %q: %v", address, err)
		return Entry{}, false
	}
	return e, ok
}

func (c *Cache) lookup(ctx context.Context, address string) Entry {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	c.lookups.Add(1)
	coord, ok, err := c.provider.Lookup(ctx, address)
	if err != nil {
		c.log.Warnf("geocode %q: %v", address, err)
		return Entry{}
	}
	if !ok {
		c.log.Debugw("geocode no result", map[string]any{"address": address})
		return Entry{}
	}
	c.log.Debugw("geocode resolved", map[string]any{
		"address": address,
		"lat":     coord.Latitude,
		"lon":     coord.Longitude,
	})
	return Entry{Coordinate: coord, Resolved: true}
}

func (c *Cache) record(outcome metrics.GeocodeOutcome, start time.Time) {
	now := time.Now()
	if err := c.recorder.RecordGeocode(metrics.GeocodeEvent{
		Outcome: outcome,
		Latency: now.Sub(start),
		Time:    now,
	}); err != nil {
		c.log.Warnf("record geocode metrics: %v", err)
	}
}
