// Package ingestcmder provides the ingest command for loading a transcript
// corpus into the vector store.
package ingestcmder

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/cliui"
	"github.com/callscopeco/callscope/pkg/config"
	embeddingutils "github.com/callscopeco/callscope/pkg/embeddings/utils"
	"github.com/callscopeco/callscope/pkg/ingest"
	"github.com/callscopeco/callscope/pkg/logger"
	vectorutils "github.com/callscopeco/callscope/pkg/vector/utils"
)

const ingestLongDesc string = `Ingest a directory of transcript files into the vector store.

Each .txt file in the directory becomes one stored document: the file is
read as UTF-8, embedded, and inserted with its filename as the source name.
Empty files are skipped. Subdirectories and non-.txt files are ignored.

Re-running ingest against the same directory inserts duplicates. Clear the
store first if you want a fresh corpus.

The embedding provider, model, and vector store come from config.toml,
overridable with CALLSCOPE_* environment variables.

Examples:
  callscope ingest ./dialogues
  callscope ingest ./dialogues --debug
  CALLSCOPE_VECTOR_STORE_PROVIDER=pgvector callscope ingest ./dialogues`

const ingestShortDesc string = "Ingest transcript files into the vector store"

type ingestCommander struct {
	corpusDir string
	configDir string

	debug  bool
	logger *zap.Logger
}

func NewIngestCmd() *cobra.Command {
	cmder := &ingestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest <directory>",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.corpusDir = args[0]
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run(cmd.Context())
		},
	}

	return cmd
}

func (c *ingestCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	v, err := config.InitViper(c.configDir)
	if err != nil {
		return err
	}
	cfg := config.FromViper(v)

	embedder, err := embeddingutils.NewEmbedder(&embeddingutils.NewEmbedderOpts{
		ProviderType: cfg.Embedding.Provider,
		TargetURL:    cfg.Embedding.Target,
		Model:        cfg.Embedding.Model,
		Dimensions:   cfg.Embedding.Dimensions,
	})
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	defer embedder.Close()

	driver, err := vectorutils.NewVectorDriver(ctx, &vectorutils.NewVectorDriverOpts{
		ProviderType: cfg.VectorStore.Provider,
		Target:       cfg.VectorStore.Target,
		Dimensions:   cfg.Embedding.Dimensions,
		Logger:       c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}
	defer driver.Close()

	ingestor := ingest.NewIngestor(embedder, driver, c.logger)

	var result *ingest.Result
	if err := cliui.Step(os.Stdout, fmt.Sprintf("Ingesting %s", c.corpusDir), func() error {
		var runErr error
		result, runErr = ingestor.Run(ctx, c.corpusDir)
		return runErr
	}); err != nil {
		return err
	}

	fmt.Printf("\n  %s Ingested %s transcripts %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(strconv.Itoa(result.Inserted)),
		cliui.DimStyle.Render(fmt.Sprintf("(%d files, %d skipped)", result.Files, result.Skipped)),
	)
	return nil
}
