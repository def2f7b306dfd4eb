// Package session keeps one schedule store per browser session. Sessions
// are created on demand and dropped after a period of inactivity, taking
// their schedules with them.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MakerMama/afterschool-finder/core/schedule"
)

// DefaultIdle is the inactivity period after which a session expires.
const DefaultIdle = 2 * time.Hour

type session struct {
	store    *schedule.Store
	lastSeen time.Time
}

// Registry maps session IDs to schedule stores. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session

	idle     time.Duration
	newStore func() *schedule.Store
	now      func() time.Time
	newID    func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithStoreFactory sets how new session stores are built.
func WithStoreFactory(f func() *schedule.Store) Option {
	return func(r *Registry) { r.newStore = f }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry. A non-positive idle period selects
// DefaultIdle.
func NewRegistry(idle time.Duration, opts ...Option) *Registry {
	if idle <= 0 {
		idle = DefaultIdle
	}
	r := &Registry{
		sessions: map[string]*session{},
		idle:     idle,
		newStore: func() *schedule.Store { return schedule.NewStore() },
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Create starts a session and returns its ID and store.
func (r *Registry) Create() (string, *schedule.Store) {
	id := r.newID()
	st := r.newStore()
	r.mu.Lock()
	r.sessions[id] = &session{store: st, lastSeen: r.now()}
	r.mu.Unlock()
	return id, st
}

// Get returns the store of a live session and marks it as active. Expired
// sessions are removed and reported as missing.
func (r *Registry) Get(id string) (*schedule.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.Sub(s.lastSeen) > r.idle {
		delete(r.sessions, id)
		return nil, false
	}
	s.lastSeen = now
	return s.store, true
}

// Len returns the number of tracked sessions, expired ones included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
