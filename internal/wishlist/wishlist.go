// Package wishlist keeps a deduplicated set of product ids on the client
// device. It never talks to the server; the catalog's by-ids lookup turns the
// saved ids back into products when a page needs them.
package wishlist

import (
	"encoding/json"
	"sync"
)

// Persistence is the durable home of the id list. The canonical payload is a
// JSON array of strings, matching what browser local storage held historically.
type Persistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

type Store struct {
	mu    sync.Mutex
	ids   []string
	index map[string]bool
	p     Persistence
}

// Open loads the persisted set. Any corrupt payload — not JSON, not an array,
// or an array with non-string elements — starts the store from empty instead
// of failing: a broken wishlist must never take the page down.
func Open(p Persistence) *Store {
	s := &Store{index: map[string]bool{}, p: p}

	data, err := p.Load()
	if err != nil || len(data) == 0 {
		return s
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return s
	}
	for _, id := range ids {
		if id == "" || s.index[id] {
			continue
		}
		s.index[id] = true
		s.ids = append(s.ids, id)
	}
	return s
}

// Add inserts id into the set; adding an existing id is a no-op. The set is
// persisted before Add returns.
func (s *Store) Add(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || s.index[id] {
		return nil
	}
	s.index[id] = true
	s.ids = append(s.ids, id)
	return s.persist()
}

// Remove deletes id from the set; removing an absent id is a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index[id] {
		return nil
	}
	delete(s.index, id)
	for i, have := range s.ids {
		if have == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return s.persist()
}

// Toggle flips membership and reports whether id is now in the set.
func (s *Store) Toggle(id string) (bool, error) {
	s.mu.Lock()
	in := s.index[id]
	s.mu.Unlock()
	if in {
		return false, s.Remove(id)
	}
	return true, s.Add(id)
}

func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index[id]
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Clear empties the set and persists the empty state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.index = map[string]bool{}
	return s.persist()
}

func (s *Store) persist() error {
	ids := s.ids
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.p.Save(data)
}
