package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"docrag/internal/domain"
)

// Store is an ephemeral in-memory vector store using brute-force
// cosine similarity. State is lost on process exit.
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   []domain.IndexedEntry
}

func NewStore() *Store { return &Store{} }

func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("store dimension %d: %w", dimension, domain.ErrInvalidConfiguration)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.entries = nil
	return nil
}

func (s *Store) Add(entries []domain.IndexedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if len(e.Vector) != s.dimension {
			return fmt.Errorf("entry vector dimension %d, store dimension %d: %w",
				len(e.Vector), s.dimension, domain.ErrInvalidConfiguration)
		}
	}
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *Store) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.entries) == 0 {
		return nil, nil
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query vector dimension %d, store dimension %d: %w",
			len(vector), s.dimension, domain.ErrInvalidConfiguration)
	}
	if topK <= 0 {
		topK = 4
	}
	results := make([]domain.SearchResult, len(s.entries))
	for i, e := range s.entries {
		results[i] = domain.SearchResult{Chunk: e.Chunk, Score: cosine(e.Vector, vector)}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func cosine(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
