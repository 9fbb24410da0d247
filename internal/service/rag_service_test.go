package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag/internal/answer"
	"docrag/internal/chunker"
	"docrag/internal/domain"
	"docrag/internal/embedding/hash"
	"docrag/internal/vectorstore/gobfile"
)

type fakeGenerator struct {
	gotPrompt string
	reply     string
	err       error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	g.gotPrompt = prompt
	return g.reply, g.err
}

func (g *fakeGenerator) ModelName() string { return "fake" }

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("%w: quota exceeded", domain.ErrEmbeddingService)
}

func (failingEmbedder) Dimension() int    { return 8 }
func (failingEmbedder) ModelName() string { return "failing" }

func newTestService(t *testing.T, chunkSize int, gen *fakeGenerator) *RAGService {
	t.Helper()
	emb, err := hash.NewEmbedder(64)
	require.NoError(t, err)
	ch, err := chunker.NewFixedChunker(chunkSize, 0)
	require.NoError(t, err)
	store := gobfile.NewStore(filepath.Join(t.TempDir(), "index.gob"))
	require.NoError(t, store.Init(emb.Dimension()))
	return NewRAGService(ch, emb, store, answer.NewComposer(gen, 128), 4)
}

func TestIngestThenRetrieve(t *testing.T) {
	svc := newTestService(t, 4, &fakeGenerator{reply: "ok"})
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "AAAA BBBB", "doc1"))

	contexts, err := svc.Retrieve(ctx, "AAAA", 4)
	require.NoError(t, err)
	require.NotEmpty(t, contexts)
	assert.Equal(t, domain.RetrievalResult{Text: "AAAA", Source: "doc1"}, contexts[0])
	// "AAAA BBBB" at size 4 yields three chunks, all retrievable.
	assert.Len(t, contexts, 3)
}

func TestRetrieve_NothingIngested(t *testing.T) {
	svc := newTestService(t, 100, &fakeGenerator{reply: "ok"})

	contexts, err := svc.Retrieve(context.Background(), "anything", 4)
	require.NoError(t, err)
	assert.Empty(t, contexts)
}

func TestRetrieve_UnrelatedQueryStillReturnsNearest(t *testing.T) {
	svc := newTestService(t, 100, &fakeGenerator{reply: "ok"})
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "cats purr loudly", "doc1"))
	require.NoError(t, svc.Ingest(ctx, "dogs bark at night", "doc1"))

	// Low relevance is not an error; best-effort matches come back.
	contexts, err := svc.Retrieve(ctx, "quantum chromodynamics", 4)
	require.NoError(t, err)
	assert.Len(t, contexts, 2)
}

func TestQuery_AnswerCarriesContexts(t *testing.T) {
	gen := &fakeGenerator{reply: "They purr [1]."}
	svc := newTestService(t, 100, gen)
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "cats purr loudly", "cats.txt"))

	ans, err := svc.Query(ctx, "what do cats do")
	require.NoError(t, err)
	assert.Equal(t, "They purr [1].", ans.Answer)
	require.Len(t, ans.Contexts, 1)
	assert.Equal(t, "cats.txt", ans.Contexts[0].Source)
	assert.Contains(t, gen.gotPrompt, "Source [1] (cats.txt): cats purr loudly")
}

func TestQuery_NothingIngested(t *testing.T) {
	gen := &fakeGenerator{reply: "No idea."}
	svc := newTestService(t, 100, gen)

	ans, err := svc.Query(context.Background(), "anything?")
	require.NoError(t, err)
	assert.Equal(t, "No idea.", ans.Answer)
	assert.Empty(t, ans.Contexts)
}

func TestIngest_EmptyTextIsNoop(t *testing.T) {
	svc := newTestService(t, 10, &fakeGenerator{reply: "ok"})
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "", "empty.txt"))

	contexts, err := svc.Retrieve(ctx, "query", 4)
	require.NoError(t, err)
	assert.Empty(t, contexts)
}

func TestIngest_EmbedderFailurePropagates(t *testing.T) {
	ch, err := chunker.NewFixedChunker(10, 0)
	require.NoError(t, err)
	indexPath := filepath.Join(t.TempDir(), "index.gob")
	store := gobfile.NewStore(indexPath)
	require.NoError(t, store.Init(8))
	svc := NewRAGService(ch, failingEmbedder{}, store, answer.NewComposer(&fakeGenerator{}, 128), 4)

	err = svc.Ingest(context.Background(), "some text", "doc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingService))

	// A failed ingestion must not have persisted anything.
	_, statErr := os.Stat(indexPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestQuery_GeneratorFailurePropagates(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: down", domain.ErrGenerationService)}
	svc := newTestService(t, 100, gen)
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "cats purr loudly", "cats.txt"))

	_, err := svc.Query(ctx, "what do cats do")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGenerationService))
}

func TestIngest_DuplicateDocumentDuplicatesEntries(t *testing.T) {
	svc := newTestService(t, 100, &fakeGenerator{reply: "ok"})
	ctx := context.Background()

	require.NoError(t, svc.Ingest(ctx, "cats purr loudly", "cats.txt"))
	require.NoError(t, svc.Ingest(ctx, "cats purr loudly", "cats.txt"))

	contexts, err := svc.Retrieve(ctx, "cats", 10)
	require.NoError(t, err)
	assert.Len(t, contexts, 2)
}

func TestIngestFile(t *testing.T) {
	svc := newTestService(t, 100, &fakeGenerator{reply: "ok"})
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("gophers dig tunnels"), 0o644))

	require.NoError(t, svc.IngestFile(ctx, path))

	contexts, err := svc.Retrieve(ctx, "gophers", 4)
	require.NoError(t, err)
	require.Len(t, contexts, 1)
	assert.Equal(t, "notes.txt", contexts[0].Source)
}
