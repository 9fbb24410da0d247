package answer

import (
	"context"
	"fmt"
	"strings"

	"docrag/internal/domain"
	"docrag/internal/generator"
)

// Composer builds an augmented prompt from retrieved contexts and a
// question, invokes the generation model, and returns the answer
// together with the contexts that produced it.
type Composer struct {
	gen       generator.Generator
	maxTokens int
}

// NewComposer creates a composer with a bounded output length.
func NewComposer(gen generator.Generator, maxTokens int) *Composer {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Composer{gen: gen, maxTokens: maxTokens}
}

// Compose renders the prompt, calls the generator, and returns the
// model's raw output as the answer. The input contexts come back
// unchanged so callers can map citation markers to sources. The model
// may still cite numbers that do not exist; verifying that is out of
// scope here.
func (c *Composer) Compose(ctx context.Context, question string, contexts []domain.RetrievalResult) (domain.AugmentedAnswer, error) {
	prompt := BuildPrompt(question, contexts)
	text, err := c.gen.Generate(ctx, prompt, c.maxTokens)
	if err != nil {
		return domain.AugmentedAnswer{}, fmt.Errorf("compose answer: %w", err)
	}
	return domain.AugmentedAnswer{Answer: text, Contexts: contexts}, nil
}

// BuildPrompt renders the augmented prompt: a cite-your-sources
// instruction, each context as a numbered source block, then the
// question.
func BuildPrompt(question string, contexts []domain.RetrievalResult) string {
	var b strings.Builder
	b.WriteString("Answer the question using only the context below. Cite the sources you use by their bracketed number.\n\n")
	for i, c := range contexts {
		fmt.Fprintf(&b, "Source [%d] (%s): %s\n\n", i+1, c.Source, c.Text)
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
