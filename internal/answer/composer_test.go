package answer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/domain"
)

type fakeGenerator struct {
	gotPrompt    string
	gotMaxTokens int
	reply        string
	err          error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.gotPrompt = prompt
	g.gotMaxTokens = maxTokens
	return g.reply, g.err
}

func (g *fakeGenerator) ModelName() string { return "fake" }

func TestBuildPrompt_NumbersSources(t *testing.T) {
	contexts := []domain.RetrievalResult{
		{Text: "Paris is the capital", Source: "geo.txt"},
		{Text: "Berlin is elsewhere", Source: "other.txt"},
	}

	prompt := BuildPrompt("What is the capital?", contexts)

	assert.Contains(t, prompt, "Source [1] (geo.txt):")
	assert.Contains(t, prompt, "Paris is the capital")
	assert.Contains(t, prompt, "Source [2] (other.txt):")
	assert.Contains(t, prompt, "Question: What is the capital?")
}

func TestCompose_ReturnsAnswerAndContextsUnchanged(t *testing.T) {
	gen := &fakeGenerator{reply: "Paris [1]."}
	c := NewComposer(gen, 256)
	contexts := []domain.RetrievalResult{{Text: "Paris is the capital", Source: "geo.txt"}}

	ans, err := c.Compose(context.Background(), "What is the capital?", contexts)
	require.NoError(t, err)
	assert.Equal(t, "Paris [1].", ans.Answer)
	assert.Equal(t, contexts, ans.Contexts)
	assert.Equal(t, 256, gen.gotMaxTokens)
	assert.Contains(t, gen.gotPrompt, "Source [1] (geo.txt):")
}

func TestCompose_GeneratorFailurePropagates(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: boom", domain.ErrGenerationService)}
	c := NewComposer(gen, 0)

	_, err := c.Compose(context.Background(), "q", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGenerationService))
}

func TestNewComposer_DefaultMaxTokens(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	c := NewComposer(gen, 0)

	_, err := c.Compose(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Equal(t, 512, gen.gotMaxTokens)
}

func TestCompose_NoContexts(t *testing.T) {
	gen := &fakeGenerator{reply: "I don't know."}
	c := NewComposer(gen, 128)

	ans, err := c.Compose(context.Background(), "anything?", nil)
	require.NoError(t, err)
	assert.Equal(t, "I don't know.", ans.Answer)
	assert.Empty(t, ans.Contexts)
	assert.Contains(t, gen.gotPrompt, "Question: anything?")
}
