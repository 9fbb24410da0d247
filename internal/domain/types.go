package domain

// Document is a single piece of source material handed to the pipeline,
// already reduced to plain text by whatever extracted it.
type Document struct {
	Source string
	Text   string
}

// Chunk is a bounded slice of a document's text plus its source tag.
// Chunks are immutable once created.
type Chunk struct {
	Text   string
	Source string
}

// IndexedEntry pairs a chunk with its embedding vector. Entries are owned
// by the vector store once added and are never mutated after insertion.
type IndexedEntry struct {
	Vector []float32
	Chunk  Chunk
}

// SearchResult is a matching chunk with its similarity score.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// RetrievalResult is the read-only projection of a chunk returned to
// callers. The similarity score is retrieval-internal and not exposed.
type RetrievalResult struct {
	Text   string
	Source string
}

// AugmentedAnswer is a generated answer together with the exact context
// list used to produce it, preserved so citation markers can be
// cross-referenced against actual sources.
type AugmentedAnswer struct {
	Answer   string
	Contexts []RetrievalResult
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
