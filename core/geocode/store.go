package geocode

import (
	"context"
	"sync"

	"github.com/MakerMama/afterschool-finder/core/model"
)

// Provider performs one outbound geocoding request. ok is false when the
// provider answered but found nothing.
type Provider interface {
	Lookup(ctx context.Context, address string) (coord model.Coordinate, ok bool, err error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, address string) (model.Coordinate, bool, error)

// Lookup calls f.
func (f ProviderFunc) Lookup(ctx context.Context, address string) (model.Coordinate, bool, error) {
	return f(ctx, address)
}

// Entry is a memoized lookup result. Resolved is false for addresses the
// provider could not place.
type Entry struct {
	Coordinate model.Coordinate `json:"coordinate"`
	Resolved   bool             `json:"resolved"`
}

// Store persists lookup results keyed by the exact address string.
type Store interface {
	Get(ctx context.Context, address string) (Entry, bool, error)
	Set(ctx context.Context, address string, e Entry) error
}

// MemoryStore keeps entries in a map for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get returns the cached entry for address.
func (s *MemoryStore) Get(_ context.Context, address string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[address]
	return e, ok, nil
}

// Set stores e under address.
func (s *MemoryStore) Set(_ context.Context, address string, e Entry) error {
	s.mu.Lock()
	s.entries[address] = e
	s.mu.Unlock()
	return nil
}

// Len returns the number of cached addresses.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
