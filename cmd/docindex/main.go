// Command docindex builds and verifies the precomputed embedding index.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	"github.com/kailas-cloud/docsearch/internal/version"
)

var (
	contentPath string
	indexPath   string
	logLevel    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "docindex",
	Short:         "Generate and check the document embedding index",
	Version:       fmt.Sprintf("%s (%s)", version.Version, version.Commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logpkg.NewLogger(config.GetEnv(), logpkg.Options{Level: logLevel})
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "data/content.yaml", "content file")
	rootCmd.PersistentFlags().StringVar(&indexPath, "index", "data/embeddings.json", "embedding index file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// contextWithTimeout bounds a command run, honoring a context set by the caller.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
