package vectorstore

import "docrag/internal/domain"

// Storage persists indexed chunks and supports similarity search.
// Implementations own whatever durability and locking their backend
// needs; Add must be safe under concurrent callers.
type Storage interface {
	// Init fixes the vector dimension. It must be called once before
	// Add or Search and fails if an existing index disagrees.
	Init(dimension int) error

	// Add appends entries. Duplicate ingestion of the same document
	// produces duplicate entries; deduplication is not this layer's job.
	Add(entries []domain.IndexedEntry) error

	// Search returns up to topK entries by descending similarity.
	// An empty or absent index yields an empty result, not an error.
	Search(vector []float32, topK int) ([]domain.SearchResult, error)
}
