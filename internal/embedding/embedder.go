package embedding

import "context"

// Embedder converts free text into fixed-dimension numeric vectors.
// Embed is order-preserving: one vector per input text, same order.
// All vectors produced by one embedder share Dimension(); the vector
// store relies on this invariant.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelName() string
}
