package gobfile

import (
	"errors"
	"fmt"
	"sync"

	"docrag/internal/domain"
)

// Store is the durable Storage backend: a gob-encoded index file that
// is reloaded per call. The persisted file is the sole source of truth;
// nothing is cached between calls.
type Store struct {
	path      string
	dimension int

	// mu serialises the load-add-save cycle. Without it, two
	// concurrent ingests read the same base index and the second save
	// silently drops the first caller's entries.
	mu sync.Mutex
}

// NewStore creates a Store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init fixes the vector dimension and, when a persisted index already
// exists, verifies it agrees. A missing index is fine at this point.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("store dimension %d: %w", dimension, domain.ErrInvalidConfiguration)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	ix, err := Load(s.path)
	if errors.Is(err, domain.ErrIndexNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ix.Dimension != dimension {
		return fmt.Errorf("persisted index dimension %d, embedder dimension %d: %w",
			ix.Dimension, dimension, domain.ErrInvalidConfiguration)
	}
	return nil
}

// Add appends entries to the persisted index, creating it on first use.
// The whole load-append-save sequence runs under the single-writer lock.
func (s *Store) Add(entries []domain.IndexedEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ix, err := Load(s.path)
	if errors.Is(err, domain.ErrIndexNotFound) {
		ix, err = New(s.dimension)
	}
	if err != nil {
		return err
	}
	if err := ix.Add(entries); err != nil {
		return err
	}
	return Save(s.path, ix)
}

// Search loads the persisted index and scans it. No index yet means
// nothing has been ingested: an empty result, not an error. A corrupt
// index is an error; a real outage must not masquerade as no matches.
func (s *Store) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	ix, err := Load(s.path)
	if errors.Is(err, domain.ErrIndexNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ix.Search(vector, topK)
}
