// Package ingest reads a corpus of plain-text dialogue transcripts, embeds
// each one, and writes it to the vector store.
//
// Ingestion is NOT idempotent: re-running against the same corpus inserts a
// second copy of every transcript. Integrators that re-ingest must clear the
// store first or dedupe by source name themselves.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/embeddings"
	"github.com/callscopeco/callscope/pkg/vector"
)

// Ingestor runs the one-shot batch ingestion of a corpus directory.
type Ingestor struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	logger   *zap.Logger
}

// NewIngestor creates an Ingestor. The embedder must be the same model and
// dimensions later used for queries.
func NewIngestor(embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		driver:   driver,
		logger:   logger,
	}
}

// Run ingests every .txt file in corpusDir. The filename is the source
// name. Files are decoded as UTF-8 with malformed bytes dropped; files that
// are empty after trimming are skipped, not errored — they carry no
// retrievable signal. Each document commits individually, so a mid-run
// failure keeps everything ingested so far.
func (ing *Ingestor) Run(ctx context.Context, corpusDir string) (*Result, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	result := &Result{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		result.Files++

		raw, err := os.ReadFile(filepath.Join(corpusDir, entry.Name()))
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		content := strings.TrimSpace(strings.ToValidUTF8(string(raw), ""))
		if content == "" {
			ing.logger.Debug("skipping empty transcript",
				zap.String("file", entry.Name()),
			)
			result.Skipped++
			continue
		}

		embedding, err := ing.embedder.Embed(ctx, content)
		if err != nil {
			return result, fmt.Errorf("embedding %s: %w", entry.Name(), err)
		}

		doc := vector.Document{
			SourceName: entry.Name(),
			Content:    content,
			Embedding:  embedding,
		}
		if err := ing.driver.Add(ctx, []vector.Document{doc}); err != nil {
			return result, fmt.Errorf("storing %s: %w", entry.Name(), err)
		}

		ing.logger.Debug("ingested transcript",
			zap.String("file", entry.Name()),
			zap.Int("chars", len(content)),
		)
		result.Inserted++
	}

	ing.logger.Info("ingestion finished",
		zap.Int("files", result.Files),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}
