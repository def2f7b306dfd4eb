// Package schedule keeps a caregiver's named weekly schedules, one per
// child, and answers conflict and family-view queries over them.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MakerMama/afterschool-finder/core/model"
	"github.com/MakerMama/afterschool-finder/core/timeofday"
	"github.com/MakerMama/afterschool-finder/internal/eventbus"
)

var (
	// ErrDuplicateName is returned when creating a schedule whose name is taken.
	ErrDuplicateName = errors.New("schedule already exists")
	// ErrEmptyName is returned for blank schedule names.
	ErrEmptyName = errors.New("schedule name is empty")
)

// EventKind names a store mutation.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
	EventDeleted EventKind = "deleted"
)

// Event describes one store mutation.
type Event struct {
	Kind     EventKind         `json:"kind"`
	Schedule string            `json:"schedule"`
	Key      model.ScheduleKey `json:"key,omitempty"`
	Time     time.Time         `json:"time"`
}

// Store holds named schedules. It is safe for concurrent use; all schedules
// share one lock since a store belongs to a single session.
type Store struct {
	mu        sync.RWMutex
	order     []string
	schedules map[string][]model.ScheduleEntry

	events *eventbus.TypedBus[Event]
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithEvents publishes every mutation on bus.
func WithEvents(bus *eventbus.TypedBus[Event]) Option {
	return func(s *Store) { s.events = bus }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{schedules: map[string][]model.ScheduleEntry{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create adds an empty schedule. An existing schedule of the same name is
// left untouched and ErrDuplicateName is returned.
func (s *Store) Create(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	if _, ok := s.schedules[name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	s.createLocked(name)
	s.mu.Unlock()
	s.publish(Event{Kind: EventCreated, Schedule: name})
	return nil
}

func (s *Store) createLocked(name string) {
	s.schedules[name] = []model.ScheduleEntry{}
	s.order = append(s.order, name)
}

// Add appends entry to the named schedule, creating the schedule on first
// use. It returns false when an entry with the same key is already saved
// there, or when name is blank.
func (s *Store) Add(name string, entry model.ScheduleEntry) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	key := entry.Key()
	s.mu.Lock()
	entries, ok := s.schedules[name]
	if !ok {
		s.createLocked(name)
	}
	for _, e := range entries {
		if e.Key() == key {
			s.mu.Unlock()
			return false
		}
	}
	s.schedules[name] = append(entries, entry)
	s.mu.Unlock()

	if !ok {
		s.publish(Event{Kind: EventCreated, Schedule: name})
	}
	s.publish(Event{Kind: EventAdded, Schedule: name, Key: key})
	return true
}

// Remove deletes the entry with key from the named schedule. It reports
// whether anything was removed. A schedule emptied this way still exists.
func (s *Store) Remove(name string, key model.ScheduleKey) bool {
	s.mu.Lock()
	entries := s.schedules[name]
	idx := -1
	for i, e := range entries {
		if e.Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.schedules[name] = append(entries[:idx:idx], entries[idx+1:]...)
	s.mu.Unlock()
	s.publish(Event{Kind: EventRemoved, Schedule: name, Key: key})
	return true
}

// Delete drops a schedule and its entries.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	if _, ok := s.schedules[name]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.schedules, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.publish(Event{Kind: EventDeleted, Schedule: name})
	return true
}

// Get returns a copy of the named schedule's entries in save order.
func (s *Store) Get(name string) ([]model.ScheduleEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.schedules[name]
	if !ok {
		return nil, false
	}
	out := make([]model.ScheduleEntry, len(entries))
	copy(out, entries)
	return out, true
}

// Names lists schedules in creation order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Conflicts returns every pair of same-day entries in the named schedule
// whose times overlap. Pairs follow save order: First was saved before
// Second. Entries that merely touch (one ends when the next starts) do not
// conflict.
func (s *Store) Conflicts(name string) []model.Conflict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.schedules[name]
	var out []model.Conflict
	for i := 0; i < len(entries); i++ {
		a := entries[i]
		for j := i + 1; j < len(entries); j++ {
			b := entries[j]
			if a.Day != b.Day {
				continue
			}
			if timeofday.Overlaps(a.Start, a.End, b.Start, b.End) {
				out = append(out, model.Conflict{Day: a.Day, First: a, Second: b})
			}
		}
	}
	return out
}

// Aggregate returns every entry of every schedule labelled with its schedule
// name, schedules in creation order. A program saved to two schedules
// appears twice.
func (s *Store) Aggregate() []model.LabeledEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.LabeledEntry
	for _, name := range s.order {
		for _, e := range s.schedules[name] {
			out = append(out, model.LabeledEntry{Entry: e, SourceSchedule: name})
		}
	}
	return out
}

func (s *Store) publish(ev Event) {
	if s.events == nil {
		return
	}
	ev.Time = s.now()
	s.events.Publish(ev)
}
