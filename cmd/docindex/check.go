package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/docsearch/internal/repository/corpus"
	"github.com/kailas-cloud/docsearch/internal/usecase/indexgen"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail when the index is missing or older than the content",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	docs, err := corpus.LoadFile(contentPath)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	f, err := indexgen.Check(contentPath, indexPath, docs)
	if err != nil {
		return err
	}
	if err := f.Err(); err != nil {
		return fmt.Errorf("%w\n  run: docindex generate", err)
	}

	cmd.Println("Embeddings are up to date")
	cmd.Printf("  Last updated: %s\n", f.IndexModTime.UTC().Format(time.RFC3339))
	cmd.Printf("  Content last changed: %s\n", f.ContentModTime.UTC().Format(time.RFC3339))
	return nil
}
