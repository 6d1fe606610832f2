package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsearch/internal/domain/embindex"
	"github.com/kailas-cloud/docsearch/internal/repository/corpus"
	embindexrepo "github.com/kailas-cloud/docsearch/internal/repository/embindex"
	openaiEmb "github.com/kailas-cloud/docsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/docsearch/internal/usecase/embedding"
	"github.com/kailas-cloud/docsearch/internal/usecase/indexgen"
)

var (
	genModel      string
	genDimensions int
	genBatch      int
	genWorkers    int
	genRPS        float64
	genBaseURL    string
	genTimeout    time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Embed every document and write the index",
	Long: `Builds the corpus from the content file, embeds each document text with
the configured model and writes the index atomically. Reads OPENAI_API_KEY.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genModel, "model", embindex.DefaultModel, "embedding model")
	f.IntVar(&genDimensions, "dimensions", embindex.DefaultDimension, "expected vector dimension")
	f.IntVar(&genBatch, "batch", indexgen.DefaultBatchSize, "texts per provider call")
	f.IntVar(&genWorkers, "workers", indexgen.DefaultWorkers, "concurrent provider calls")
	f.Float64Var(&genRPS, "rps", 2, "provider calls per second, 0 for unlimited")
	f.StringVar(&genBaseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI-compatible endpoint")
	f.DurationVar(&genTimeout, "timeout", 10*time.Minute, "overall deadline")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY environment variable is not set")
	}

	docs, err := corpus.LoadFile(contentPath)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	cmd.Printf("Found %d documents\n", len(docs))

	provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     apiKey,
		BaseURL:    genBaseURL,
		Model:      genModel,
		Dimensions: genDimensions,
		Logger:     logger,
	})
	embedder := embeddinguc.NewInstrumentedEmbedder(provider, "openai", genModel, nil, logger)

	g := indexgen.New(embedder, indexgen.Options{
		Model:     genModel,
		Dimension: genDimensions,
		BatchSize: genBatch,
		Workers:   genWorkers,
		RPS:       genRPS,
	}, logger)

	ctx, cancel := contextWithTimeout(cmd, genTimeout)
	defer cancel()

	idx, err := g.Generate(ctx, docs)
	if err != nil {
		return fmt.Errorf("generate embeddings: %w", err)
	}

	if err := embindexrepo.WriteFile(indexPath, idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	cmd.Printf("Wrote %d embeddings (%s, %d dimensions) to %s\n",
		idx.Len(), idx.Model(), idx.Dimension(), indexPath)
	return nil
}
