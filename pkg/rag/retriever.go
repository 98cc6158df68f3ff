package rag

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/embeddings"
	"github.com/callscopeco/callscope/pkg/vector"
)

const (
	// DefaultTopK is the number of transcripts retrieved when the caller
	// does not specify k.
	DefaultTopK = 3

	// MaxTopK caps how many transcripts a single question may retrieve.
	MaxTopK = 10
)

// ErrEmptyQuestion is returned when the question is empty or whitespace-only.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// Retriever embeds a question and finds the most similar stored transcripts.
// The embedder must be the same instance (model and dimensions) used at
// ingestion time; a mismatch is a configuration error, not a recoverable one.
type Retriever struct {
	embedder embeddings.Embedder
	driver   vector.Driver
	logger   *zap.Logger
}

// NewRetriever creates a Retriever over the given embedder and store.
func NewRetriever(embedder embeddings.Embedder, driver vector.Driver, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		driver:   driver,
		logger:   logger,
	}
}

// Retrieve embeds the question and returns up to k transcripts ordered by
// descending similarity. k defaults to DefaultTopK when non-positive and is
// clamped to MaxTopK. Every call re-embeds and re-queries; there is no cache.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]vector.QueryResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if k > MaxTopK {
		k = MaxTopK
	}

	r.logger.Debug("retrieval request",
		zap.String("question", question),
		zap.Int("topK", k),
	)

	queryEmbedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		if errors.Is(err, embeddings.ErrEmptyText) {
			return nil, ErrEmptyQuestion
		}
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := r.driver.Query(ctx, queryEmbedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	r.logger.Debug("retrieval complete",
		zap.Int("results", len(results)),
	)

	return results, nil
}
