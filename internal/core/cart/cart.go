// Package cart keeps per-session shopping carts in process memory.
package cart

import (
	"maps"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

type session struct {
	items map[int64]domain.CartItem
	user  map[string]string
}

func newSession() *session {
	return &session{
		items: make(map[int64]domain.CartItem),
		user:  make(map[string]string),
	}
}

// Store holds carts keyed by session key. The zero value is not usable,
// use [NewStore].
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (s *Store) get(key string) *session {
	ss, ok := s.sessions[key]
	if !ok {
		ss = newSession()
		s.sessions[key] = ss
	}
	return ss
}

// AddItem sets the line for item.ProductDetailID. A quantity of zero or
// less removes the line.
func (s *Store) AddItem(key string, item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss := s.get(key)
	if item.Quantity <= 0 {
		delete(ss.items, item.ProductDetailID)
		return
	}
	ss.items[item.ProductDetailID] = item
}

func (s *Store) RemoveItem(key string, productDetailID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ss, ok := s.sessions[key]; ok {
		delete(ss.items, productDetailID)
		if len(ss.items) == 0 && len(ss.user) == 0 {
			delete(s.sessions, key)
		}
	}
}

// Clear empties the cart. User data survives, a session with no user data
// is dropped.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss, ok := s.sessions[key]
	if !ok {
		return
	}
	clear(ss.items)
	if len(ss.user) == 0 {
		delete(s.sessions, key)
	}
}

// Move merges the session under from into the one under to and drops from.
// Lines already present under to keep their quantity.
func (s *Store) Move(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.sessions[from]
	if !ok || from == to {
		return
	}
	delete(s.sessions, from)

	dst := s.get(to)
	for id, item := range src.items {
		if _, ok := dst.items[id]; !ok {
			dst.items[id] = item
		}
	}
	for k, v := range src.user {
		if _, ok := dst.user[k]; !ok {
			dst.user[k] = v
		}
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) AddUser(key, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(key).user[field] = value
}

// Snapshot returns a copy of the cart with items ordered by product detail id.
func (s *Store) Snapshot(key string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Cart{
		Items: []domain.CartItem{},
		User:  map[string]string{},
	}
	ss, ok := s.sessions[key]
	if !ok {
		return c
	}

	ids := slices.Sorted(maps.Keys(ss.items))
	for _, id := range ids {
		item := ss.items[id]
		c.Items = append(c.Items, item)
		c.Total += item.LineTotal()
	}
	maps.Copy(c.User, ss.user)
	return c
}

func (s *Store) Total(key string) float64 {
	return s.Snapshot(key).Total
}
