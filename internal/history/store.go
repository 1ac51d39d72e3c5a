// Package history persists placed orders on the device, newest first,
// independently of the backend's own history.
package history

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"haaangry-client/internal/domain"
)

// Store is a file-backed order list. A mutex serializes writers so
// concurrent appends cannot lose entries.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted orders. Missing or unreadable data degrades
// to an empty list; corruption never reaches the caller.
func (s *Store) Load() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []domain.Order {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[history] load: %v", err)
		}
		return []domain.Order{}
	}
	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("[history] corrupt history file, starting empty: %v", err)
		return []domain.Order{}
	}
	return orders
}

// Save replaces the persisted list atomically: the new content is written
// to a temp file in the same directory and renamed over the old one, so a
// crash mid-write leaves the prior content intact.
func (s *Store) Save(orders []domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(orders)
}

func (s *Store) save(orders []domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".orders-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Append prepends the order and persists the whole list. The updated
// list is returned even when persisting fails.
func (s *Store) Append(order domain.Order) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := append([]domain.Order{order}, s.load()...)
	if err := s.save(orders); err != nil {
		log.Printf("[history] save: %v", err)
	}
	return orders
}
