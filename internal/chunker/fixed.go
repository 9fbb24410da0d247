package chunker

import (
	"fmt"

	"docrag/internal/domain"
)

// FixedChunker splits text into fixed-size chunks by rune position.
// Boundaries may fall mid-word; this trades retrieval precision for
// simplicity. Chunk size is a character budget, not a token budget.
type FixedChunker struct {
	size    int
	overlap int
}

// NewFixedChunker creates a positional chunker. size must be positive;
// overlap must be non-negative and smaller than size.
func NewFixedChunker(size, overlap int) (*FixedChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size %d: %w", size, domain.ErrInvalidConfiguration)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d with size %d: %w", overlap, size, domain.ErrInvalidConfiguration)
	}
	return &FixedChunker{size: size, overlap: overlap}, nil
}

// Chunk splits the document into chunks of exactly size runes, except
// possibly the last. Output order equals document order. Empty text
// yields no chunks.
func (c *FixedChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	runes := []rune(document.Text)
	if len(runes) == 0 {
		return nil, nil
	}
	step := c.size - c.overlap
	var chunks []domain.Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			Text:   string(runes[start:end]),
			Source: document.Source,
		})
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
