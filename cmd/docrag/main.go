package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docrag/internal/answer"
	"docrag/internal/chunker"
	"docrag/internal/config"
	"docrag/internal/domain"
	"docrag/internal/embedding"
	"docrag/internal/embedding/hash"
	openaiembed "docrag/internal/embedding/openai"
	openaigen "docrag/internal/generator/openai"
	"docrag/internal/service"
	"docrag/internal/tui"
	"docrag/internal/vectorstore"
	"docrag/internal/vectorstore/gobfile"
	"docrag/internal/vectorstore/memory"
	"docrag/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath, ask string
	var topK int
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docrag/config.yaml if not provided)")
	flag.StringVar(&ask, "ask", "", "Answer a single question and exit")
	flag.IntVar(&topK, "k", 0, "Number of context chunks to retrieve (overrides config)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 && ask == "" {
		fmt.Println("Usage: docrag [--config=config.yaml] [--ask question] [file1.txt ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if topK > 0 {
		cfg.Retrieval.TopK = topK
	}

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "openai", "":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{}
		}
		client, err := openaiembed.NewClient(openaiembed.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "hash":
		dim := 512
		if cfg.Embedder.Hash != nil {
			dim = cfg.Embedder.Hash.Dimension
		}
		emb, err = hash.NewEmbedder(dim)
		if err != nil {
			log.Fatalf("hash embedder init failed: %v", err)
		}
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "fixed", "":
		ch, err = chunker.NewFixedChunker(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
		if err != nil {
			log.Fatalf("chunker init failed: %v", err)
		}
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var st vectorstore.Storage
	switch cfg.Store.Type {
	case "gobfile", "":
		st = gobfile.NewStore(cfg.Store.Path)
	case "memory":
		st = memory.NewStore()
	case "qdrant":
		if cfg.Store.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStore(qdrant.Config{
			URL:        cfg.Store.Qdrant.URL,
			APIKey:     cfg.Store.Qdrant.APIKey,
			Collection: cfg.Store.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Store.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.Store.Type)
	}
	if err := st.Init(emb.Dimension()); err != nil {
		log.Fatalf("store init failed: %v", err)
	}

	gen, err := openaigen.NewClient(openaigen.Config{
		BaseURL:     cfg.Generator.BaseURL,
		APIKeyEnv:   cfg.Generator.APIKeyEnv,
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		Timeout:     time.Duration(cfg.Generator.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("generator init failed: %v", err)
	}
	composer := answer.NewComposer(gen, cfg.Generator.MaxTokens)

	svc := service.NewRAGService(ch, emb, st, composer, cfg.Retrieval.TopK)

	ctx := context.Background()
	for _, path := range inputs {
		if err := svc.IngestFile(ctx, path); err != nil {
			log.Fatalf("ingest %s failed: %v", path, err)
		}
		fmt.Printf("ingested %s\n", path)
	}

	if ask != "" {
		ans, err := svc.Query(ctx, ask)
		if err != nil {
			log.Fatalf("query failed: %v", err)
		}
		fmt.Println(ans.Answer)
		if len(ans.Contexts) > 0 {
			fmt.Println("\nSources:")
			for i, c := range ans.Contexts {
				fmt.Printf("  [%d] %s\n", i+1, c.Source)
			}
		}
		return
	}

	m := tui.New(svc)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
