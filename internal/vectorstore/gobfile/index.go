package gobfile

import (
	"fmt"
	"math"
	"sort"

	"docrag/internal/domain"
)

// Index is an append-only brute-force similarity index. Entries are
// scanned exhaustively on search; fine for modest document volumes.
type Index struct {
	Dimension int
	Entries   []domain.IndexedEntry
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("index dimension %d: %w", dimension, domain.ErrInvalidConfiguration)
	}
	return &Index{Dimension: dimension}, nil
}

// Add appends entries without reindexing. Every vector must match the
// index dimension.
func (ix *Index) Add(entries []domain.IndexedEntry) error {
	for _, e := range entries {
		if len(e.Vector) != ix.Dimension {
			return fmt.Errorf("entry vector dimension %d, index dimension %d: %w",
				len(e.Vector), ix.Dimension, domain.ErrInvalidConfiguration)
		}
	}
	ix.Entries = append(ix.Entries, entries...)
	return nil
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return len(ix.Entries) }

// Search returns up to topK entries by descending cosine similarity.
// Ties rank earlier-added entries first, so results are deterministic.
// An empty index yields an empty result for any query.
func (ix *Index) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	if len(ix.Entries) == 0 {
		return nil, nil
	}
	if len(vector) != ix.Dimension {
		return nil, fmt.Errorf("query vector dimension %d, index dimension %d: %w",
			len(vector), ix.Dimension, domain.ErrInvalidConfiguration)
	}
	if topK <= 0 {
		topK = 4
	}
	results := make([]domain.SearchResult, len(ix.Entries))
	for i, e := range ix.Entries {
		results[i] = domain.SearchResult{Chunk: e.Chunk, Score: cosine(e.Vector, vector)}
	}
	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// cosine computes cosine similarity; 0 for zero-norm inputs.
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
