package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"docrag/internal/answer"
	"docrag/internal/domain"
	"docrag/internal/embedding"
	"docrag/internal/vectorstore"
)

// RAGService is the public surface of the pipeline: Ingest and Query.
// Each request runs sequentially; chunks of one document are embedded
// and added in document order. Concurrent ingests are serialised by the
// store's own locking.
type RAGService struct {
	chunker  domain.Chunker
	embedder embedding.Embedder
	store    vectorstore.Storage
	composer *answer.Composer
	topK     int
}

func NewRAGService(chunker domain.Chunker, embedder embedding.Embedder, store vectorstore.Storage, composer *answer.Composer, topK int) *RAGService {
	if topK <= 0 {
		topK = 4
	}
	return &RAGService{
		chunker:  chunker,
		embedder: embedder,
		store:    store,
		composer: composer,
		topK:     topK,
	}
}

// Ingest chunks the text, embeds the chunks and appends them to the
// store. A document with no chunkable text is a no-op, not an error.
// Re-ingesting the same document appends duplicate entries.
func (s *RAGService) Ingest(ctx context.Context, text, source string) error {
	chunks, err := s.chunker.Chunk(domain.Document{Source: source, Text: text})
	if err != nil {
		return fmt.Errorf("chunk %s: %w", source, err)
	}
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %s: %w", source, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embed %s: got %d vectors for %d chunks", source, len(vectors), len(chunks))
	}
	entries := make([]domain.IndexedEntry, len(chunks))
	for i := range chunks {
		entries[i] = domain.IndexedEntry{Vector: vectors[i], Chunk: chunks[i]}
	}
	if err := s.store.Add(entries); err != nil {
		return fmt.Errorf("index %s: %w", source, err)
	}
	return nil
}

// IngestFile reads a file and ingests its content with the base name as
// source tag.
func (s *RAGService) IngestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Ingest(ctx, string(data), filepath.Base(path))
}

// Retrieve embeds the query and returns the top-k most similar chunks,
// best first, with the similarity score dropped. Nothing ingested yet
// means an empty result, never an error.
func (s *RAGService) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		k = s.topK
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Search(vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	contexts := make([]domain.RetrievalResult, len(results))
	for i, r := range results {
		contexts[i] = domain.RetrievalResult{Text: r.Chunk.Text, Source: r.Chunk.Source}
	}
	return contexts, nil
}

// Query answers a question grounded on the retrieved contexts. Low
// relevance still returns the best-effort nearest chunks; retrieval
// never fails merely because nothing matches well.
func (s *RAGService) Query(ctx context.Context, question string) (domain.AugmentedAnswer, error) {
	contexts, err := s.Retrieve(ctx, question, s.topK)
	if err != nil {
		return domain.AugmentedAnswer{}, err
	}
	return s.composer.Compose(ctx, question, contexts)
}
