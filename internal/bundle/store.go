package bundle

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
)

// EntryID is the reserved identifier of the entry bundle.
const EntryID = "index.js"

var (
	// ErrNotBuilt is returned when no build output exists yet.
	ErrNotBuilt = errors.New("extension bundle not built")
	// ErrChunkChanged is returned when a build tries to publish different
	// content under a chunk id that is already being served.
	ErrChunkChanged = errors.New("chunk content changed under an existing id")
)

// Build is one complete build output.
type Build struct {
	Entry  string
	Chunks map[string]string
}

// published is the immutable state swapped by Publish.
type published struct {
	entry      string
	chunks     map[string]string
	generation uint64
}

// Store serves the most recently published build.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[published]
	// served remembers every chunk ever published so a later build can't
	// change what an id resolves to.
	served map[string]string
}

// NewStore returns a store with nothing built.
func NewStore() *Store {
	return &Store{served: make(map[string]string)}
}

// EntryBundle returns the entry bundle source, or false if nothing is built.
func (s *Store) EntryBundle() (string, bool) {
	p := s.current.Load()
	if p == nil {
		return "", false
	}
	return p.entry, true
}

// Chunk returns the source of the chunk with the given id, or false if the id
// is unknown or nothing is built.
func (s *Store) Chunk(id string) (string, bool) {
	p := s.current.Load()
	if p == nil {
		return "", false
	}
	src, ok := p.chunks[id]
	return src, ok
}

// Lookup routes EntryID to EntryBundle and every other id to Chunk.
func (s *Store) Lookup(id string) (string, bool) {
	if id == EntryID {
		return s.EntryBundle()
	}
	return s.Chunk(id)
}

// Generation returns the number of builds published so far.
func (s *Store) Generation() uint64 {
	if p := s.current.Load(); p != nil {
		return p.generation
	}
	return 0
}

// Publish makes b the current build. It fails with ErrChunkChanged, leaving
// the current build in place, if any chunk id was already published with
// different content.
func (s *Store) Publish(b *Build) error {
	if b == nil {
		return fmt.Errorf("publishing build: %w", ErrNotBuilt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, src := range b.Chunks {
		if id == EntryID {
			return fmt.Errorf("chunk id %q is reserved for the entry bundle", id)
		}
		if prev, ok := s.served[id]; ok && prev != src {
			return fmt.Errorf("chunk %s: %w", id, ErrChunkChanged)
		}
	}

	var gen uint64 = 1
	if p := s.current.Load(); p != nil {
		gen = p.generation + 1
	}
	chunks := maps.Clone(b.Chunks)
	if chunks == nil {
		chunks = map[string]string{}
	}
	for id, src := range chunks {
		s.served[id] = src
	}
	s.current.Store(&published{entry: b.Entry, chunks: chunks, generation: gen})
	return nil
}
