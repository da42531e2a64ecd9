// Package memory holds map-backed repository implementations sharing one
// Store. They honor the same sentinel-error contract as the postgres
// implementations and back the service tests.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

type Store struct {
	mu sync.Mutex

	users        map[string]domain.User
	accounts     map[string]domain.Account
	transactions []domain.Transaction
	pixKeys      map[string]domain.PixKey
	transferKeys map[string]domain.TransferKey

	seq int
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		accounts:     make(map[string]domain.Account),
		pixKeys:      make(map[string]domain.PixKey),
		transferKeys: make(map[string]domain.TransferKey),
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

// now is monotonic per store so insertion order survives time-based sorting.
func (s *Store) now() time.Time {
	s.seq++
	return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}
