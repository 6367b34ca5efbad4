package profile

import (
	"reflect"
	"sync"
)

// Key identifies a profile by its ordered (source, destination) type pair.
type Key struct {
	Src, Dst reflect.Type
}

// Store is the profile lookup table. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	profiles map[Key]*Profile
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{profiles: make(map[Key]*Profile)}
}

// CreateOrGet returns the profile for the pair, creating it on first use.
// Repeated calls with the same pair return the same instance, so repeated
// configuration accumulates rules rather than overwriting them.
func (s *Store) CreateOrGet(src, dst reflect.Type) *Profile {
	k := Key{Src: src, Dst: dst}

	s.mu.RLock()
	p, ok := s.profiles[k]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[k]; ok {
		return p
	}
	p = New()
	s.profiles[k] = p
	return p
}

// Lookup returns the profile for the pair, or nil if none was ever created.
// The engine treats nil as "default member copy only".
func (s *Store) Lookup(src, dst reflect.Type) *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[Key{Src: src, Dst: dst}]
}

// Len returns the number of registered profiles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
