// Package application implements the in-memory session-blob store: LRU
// eviction at a configurable capacity plus TTL expiry.
package application

import (
	"container/list"
	"sync"
	"time"

	"ecgdigitizer/internal/config"
	sdomain "ecgdigitizer/internal/session/domain"
)

type entry struct {
	sessionID string
	blob      *sdomain.SessionBlob
	expiresAt time.Time
}

// Store is a capacity-bounded, TTL-evicting session blob cache. Safe for
// concurrent use by multiple request workers.
type Store struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	byID     map[string]*list.Element
}

// NewStore builds a Store from the given session configuration.
func NewStore(cfg config.SessionConfig) *Store {
	capacity := cfg.DefaultCapacity
	if capacity <= 0 {
		capacity = 100
	}
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 3600 * time.Second
	}
	return &Store{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		byID:     make(map[string]*list.Element),
	}
}

// Put stores a blob under sessionID, evicting the least-recently-used entry
// if the store is at capacity.
func (s *Store) Put(sessionID string, blob *sdomain.SessionBlob) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.byID[sessionID]; ok {
		s.order.MoveToFront(el)
		el.Value.(*entry).blob = blob
		el.Value.(*entry).expiresAt = time.Now().Add(s.ttl)
		return
	}

	el := s.order.PushFront(&entry{sessionID: sessionID, blob: blob, expiresAt: time.Now().Add(s.ttl)})
	s.byID[sessionID] = el

	for s.order.Len() > s.capacity {
		oldest := s.order.Back()
		if oldest == nil {
			break
		}
		s.removeElement(oldest)
	}
}

// Get retrieves a blob by session id. Returns (nil, false) if absent or
// expired; an expired entry is evicted on lookup.
func (s *Store) Get(sessionID string) (*sdomain.SessionBlob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.byID[sessionID]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if time.Now().After(e.expiresAt) {
		s.removeElement(el)
		return nil, false
	}
	s.order.MoveToFront(el)
	return e.blob, true
}

// Delete removes a session blob, if present.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.byID[sessionID]; ok {
		s.removeElement(el)
	}
}

// Len returns the number of stored entries, including expired ones that no
// lookup has evicted yet.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

func (s *Store) removeElement(el *list.Element) {
	e := el.Value.(*entry)
	delete(s.byID, e.sessionID)
	s.order.Remove(el)
}
