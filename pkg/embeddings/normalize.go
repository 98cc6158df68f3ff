package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/callscopeco/callscope/pkg/vector"
)

// ErrEmptyText is returned when asked to embed empty or whitespace-only
// text. The policy applies uniformly to ingestion and queries so that the
// similarity space is never polluted with meaningless vectors.
var ErrEmptyText = errors.New("cannot embed empty text")

// Normalized wraps an Embedder and enforces the numeric contract every
// stored or compared vector must satisfy: a fixed dimension, no NaN/Inf
// components, and unit L2 norm so cosine similarity reduces to a dot
// product. Ingestion and query paths must share one Normalized instance
// (or two with identical model and dimensions).
type Normalized struct {
	inner      Embedder
	dimensions uint
}

// NewNormalized wraps inner with dimension enforcement and normalization.
// A zero dimensions value is a configuration error.
func NewNormalized(inner Embedder, dimensions uint) (*Normalized, error) {
	if dimensions == 0 {
		return nil, fmt.Errorf("embedding dimensions cannot be 0, must be configured")
	}
	return &Normalized{
		inner:      inner,
		dimensions: dimensions,
	}, nil
}

// Dimensions returns the enforced embedding dimension.
func (n *Normalized) Dimensions() uint {
	return n.dimensions
}

// Embed rejects empty text, embeds via the wrapped embedder, then sanitizes
// NaN/Inf to 0.0 and L2-normalizes the result.
func (n *Normalized) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	emb, err := n.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if uint(len(emb)) != n.dimensions {
		return nil, fmt.Errorf("%w: model returned %d dimensions, configured for %d",
			vector.ErrDimension, len(emb), n.dimensions)
	}

	return vector.Normalize(vector.Sanitize(emb)), nil
}

// Close releases resources held by the wrapped embedder.
func (n *Normalized) Close() error {
	return n.inner.Close()
}

// Ensure Normalized implements Embedder
var _ Embedder = (*Normalized)(nil)
