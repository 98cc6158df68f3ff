// Package embeddingutils is the embeddings utility package
package embeddingutils

import (
	"fmt"

	"github.com/callscopeco/callscope/pkg/embeddings"
	"github.com/callscopeco/callscope/pkg/embeddings/ollama"
)

type NewEmbedderOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	Dimensions   uint
}

// NewEmbedder constructs the configured embedding provider wrapped in the
// normalization layer that enforces the store's dimension contract.
func NewEmbedder(o *NewEmbedderOpts) (*embeddings.Normalized, error) {
	var inner embeddings.Embedder

	switch o.ProviderType {
	case "ollama":
		embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: o.TargetURL,
			Model:   o.Model,
		})
		if err != nil {
			return nil, err
		}
		inner = embedder
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", o.ProviderType)
	}

	return embeddings.NewNormalized(inner, o.Dimensions)
}
