package domain

import "errors"

// Pipeline errors. Callers branch on these with errors.Is; infrastructure
// wraps them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidConfiguration indicates a bad chunk size, dimension or
	// similar setup problem. Fatal, reported immediately, never retried.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingCredentials indicates a required API key is not set.
	ErrMissingCredentials = errors.New("missing API credentials")

	// ErrEmbeddingService indicates the embedding call failed. The
	// pipeline never substitutes zero vectors on failure.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrGenerationService indicates the generation model call failed.
	// No retry is performed at this layer.
	ErrGenerationService = errors.New("generation service failure")

	// ErrIndexNotFound indicates no persisted index exists yet.
	// Recoverable: ingestion creates a fresh index, queries treat it as
	// an empty result set.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexCorrupt indicates the persisted index exists but cannot be
	// decoded. Fatal for the operation; not auto-repaired.
	ErrIndexCorrupt = errors.New("vector index corrupt")
)
