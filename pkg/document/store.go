package document

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/yaklabco/srcmap/internal/logging"
)

// Listener is notified after a snapshot is published.
type Listener func(*Snapshot)

// Store holds the current snapshot of a document being edited.
// Readers call Current and never block on a rebuild; a rebuild publishes a
// new snapshot atomically. A snapshot built from an older generation than
// the current one is discarded.
type Store struct {
	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64

	mu        sync.Mutex
	listeners []Listener
	passes    []Pass
}

// NewStore creates an empty store whose rebuilds run the given passes.
func NewStore(passes ...Pass) *Store {
	return &Store{passes: append([]Pass(nil), passes...)}
}

// Current returns the latest published snapshot, or nil before the first.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Subscribe registers fn to be called after every successful publish.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Begin reserves the generation number for a rebuild that starts now.
func (s *Store) Begin() uint64 {
	return s.generation.Add(1)
}

// Publish makes snap the current snapshot if it is newer than the current
// one. Returns false when snap was superseded by a later rebuild.
func (s *Store) Publish(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	for {
		prev := s.current.Load()
		if prev != nil && prev.Generation >= snap.Generation {
			return false
		}
		if s.current.CompareAndSwap(prev, snap) {
			break
		}
	}

	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true
}

// Rebuild builds a snapshot of docTabs with the store's passes and publishes
// it. The returned snapshot is the one built, even if a concurrent rebuild
// superseded it; the bool reports whether it was published.
func (s *Store) Rebuild(ctx context.Context, docTabs []Tab) (*Snapshot, bool, error) {
	generation := s.Begin()

	snap, err := Build(ctx, docTabs, s.passes...)
	if err != nil {
		return nil, false, err
	}
	snap.Generation = generation

	published := s.Publish(snap)
	if !published {
		logging.FromContext(ctx).Debug("snapshot superseded",
			logging.FieldGeneration, generation,
		)
	}
	return snap, published, nil
}
