package hash

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/domain"
)

func TestNewEmbedder_InvalidDimension(t *testing.T) {
	_, err := NewEmbedder(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
}

func TestEmbed_OrderAndDimension(t *testing.T) {
	e, err := NewEmbedder(64)
	require.NoError(t, err)

	texts := []string{"grep searches files", "cats sleep all day", "grep searches files"}
	vecs, err := e.Embed(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for _, v := range vecs {
		assert.Len(t, v, 64)
	}
	// Identical text embeds identically, in input order.
	assert.Equal(t, vecs[0], vecs[2])
	assert.NotEqual(t, vecs[0], vecs[1])
}

func TestEmbed_Normalised(t *testing.T) {
	e, err := NewEmbedder(32)
	require.NoError(t, err)

	vecs, err := e.Embed(context.Background(), []string{"vectors should have unit length"})
	require.NoError(t, err)

	var norm float64
	for _, x := range vecs[0] {
		norm += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbed_NoUsableTokens(t *testing.T) {
	e, err := NewEmbedder(16)
	require.NoError(t, err)

	// Stopwords and digits only: the zero vector, not an error.
	vecs, err := e.Embed(context.Background(), []string{"the and of 123"})
	require.NoError(t, err)
	for _, x := range vecs[0] {
		assert.Zero(t, x)
	}
}

func TestEmbed_Deterministic(t *testing.T) {
	a, err := NewEmbedder(128)
	require.NoError(t, err)
	b, err := NewEmbedder(128)
	require.NoError(t, err)

	va, err := a.Embed(context.Background(), []string{"same input, fresh embedder"})
	require.NoError(t, err)
	vb, err := b.Embed(context.Background(), []string{"same input, fresh embedder"})
	require.NoError(t, err)
	assert.Equal(t, va, vb)
}
