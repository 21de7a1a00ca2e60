package corpus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ludo-technologies/plagscan/domain"
)

// ErrDuplicateContent is returned by Append when an entry with the same content hash exists
var ErrDuplicateContent = errors.New("corpus entry with the same content hash already exists")

// MemoryStore keeps corpus entries in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries []domain.CorpusEntry
	hashes  map[string]int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hashes: make(map[string]int64),
	}
}

// List returns a copy of all entries in ascending ID order
func (s *MemoryStore) List(ctx context.Context) ([]domain.CorpusEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CorpusEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// FilterByLanguage returns the entries of one language in ascending ID order
func (s *MemoryStore) FilterByLanguage(ctx context.Context, lang domain.Language) ([]domain.CorpusEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CorpusEntry, 0)
	for _, e := range s.entries {
		if e.Language == lang {
			out = append(out, e)
		}
	}
	return out, nil
}

// Append stores the entry with the next ID
func (s *MemoryStore) Append(ctx context.Context, entry domain.CorpusEntry) (domain.CorpusEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.CorpusEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ContentHash != "" {
		if _, exists := s.hashes[entry.ContentHash]; exists {
			return domain.CorpusEntry{}, ErrDuplicateContent
		}
	}

	entry.ID = int64(len(s.entries)) + 1
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.entries = append(s.entries, entry)
	if entry.ContentHash != "" {
		s.hashes[entry.ContentHash] = entry.ID
	}
	return entry, nil
}

// Len returns the number of stored entries
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
