package adapters

import (
	"sync"

	"shipment-tracker/internal/features/shipments/domain"
)

// MemoryStore implements ports.ShipmentStore with an in-process map.
// Mutations for the same shipment id are serialized by a per-id lock;
// mutations for different ids proceed in parallel.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	shipment *domain.Shipment // nil until the first successful commit
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
	}
}

// Get returns a snapshot of the shipment, or false if it does not exist.
func (s *MemoryStore) Get(id string) (*domain.Shipment, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shipment == nil {
		return nil, false
	}
	return e.shipment.Clone(), true
}

// List returns a point-in-time copy of all shipments.
func (s *MemoryStore) List() []*domain.Shipment {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*domain.Shipment, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.shipment != nil {
			out = append(out, e.shipment.Clone())
		}
		e.mu.Unlock()
	}
	return out
}

// Apply runs fn under the shipment's per-id lock and commits its result.
// fn sees a working copy (nil when the id is absent), so a failed transition
// never leaves partially mutated state behind. onCommit runs with the
// committed snapshot before the lock is released, so its side effects happen
// in commit order. When a Clear lands while fn is running, the entry fn
// worked on is no longer in the live map; the attempt is retried against the
// fresh state instead of committing into the orphaned entry.
func (s *MemoryStore) Apply(id string, fn func(current *domain.Shipment) (*domain.Shipment, error), onCommit func(committed *domain.Shipment)) (*domain.Shipment, error) {
	for {
		e := s.entryFor(id)

		e.mu.Lock()
		next, err := fn(e.shipment.Clone())
		if err != nil {
			e.mu.Unlock()
			return nil, err
		}

		s.mu.RLock()
		live := s.entries[id] == e
		if live {
			e.shipment = next
			if onCommit != nil {
				onCommit(next.Clone())
			}
		}
		s.mu.RUnlock()
		e.mu.Unlock()

		if live {
			return next.Clone(), nil
		}
	}
}

// Clear resets the store to empty.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*entry)
	s.mu.Unlock()
}

// entryFor returns the entry for id, creating it if needed. Entries exist
// independently of shipments so the per-id lock covers the creation path too.
func (s *MemoryStore) entryFor(id string) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[id]; ok {
		return e
	}
	e = &entry{}
	s.entries[id] = e
	return e
}
