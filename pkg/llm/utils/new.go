// Package llmutils is the chat client utility package
package llmutils

import (
	"fmt"

	"github.com/callscopeco/callscope/pkg/llm/provider"
	"github.com/callscopeco/callscope/pkg/llm/provider/groq"
	"github.com/callscopeco/callscope/pkg/llm/provider/ollama"
)

type NewClientOpts struct {
	ProviderType string
	TargetURL    string
	APIKey       string
}

// NewClient constructs the configured chat completion client.
func NewClient(o *NewClientOpts) (provider.Client, error) {
	switch o.ProviderType {
	case "groq":
		return groq.NewClient(groq.Config{
			APIKey:  o.APIKey,
			BaseURL: o.TargetURL,
		})
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL: o.TargetURL,
		})
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", o.ProviderType)
	}
}
