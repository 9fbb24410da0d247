package generator

import "context"

// Generator produces text from a prompt with a bounded output length.
// The raw model output is returned verbatim; no post-processing.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	ModelName() string
}
