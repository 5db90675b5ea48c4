package registry

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/samber/lo"
)

// Registry holds the current snapshot. Reads are lock-free; Rebuild calls
// are serialized against each other.
type Registry struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// New returns a registry holding an empty generation-0 snapshot.
func New() *Registry {
	r := &Registry{}
	r.current.Store(&Snapshot{BuiltAt: time.Now()})
	return r
}

// Current returns the snapshot in effect.
func (r *Registry) Current() *Snapshot {
	return r.current.Load()
}

// List returns the descriptors of the current snapshot, optionally filtered
// to a single type. The result is a fresh slice in discovery order.
func (r *Registry) List(t *exttype.Type) []Descriptor {
	return r.Current().List(t)
}

// Rebuild publishes a new snapshot built from descs and returns it.
func (r *Registry) Rebuild(descs []Descriptor) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := &Snapshot{
		Descriptors: slices.Clone(descs),
		Generation:  r.current.Load().Generation + 1,
		BuiltAt:     time.Now(),
	}
	r.current.Store(next)
	return next
}

// List returns the snapshot's descriptors, filtered to t when t is non-nil.
func (s *Snapshot) List(t *exttype.Type) []Descriptor {
	if t == nil {
		out := make([]Descriptor, len(s.Descriptors))
		copy(out, s.Descriptors)
		return out
	}
	return lo.Filter(s.Descriptors, func(d Descriptor, _ int) bool {
		return d.Type == *t
	})
}

// Len returns the number of descriptors in the snapshot.
func (s *Snapshot) Len() int { return len(s.Descriptors) }
