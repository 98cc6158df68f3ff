// Package provider defines the interface for chat completion clients.
// Each provider implementation knows how to talk to its specific API and
// translate to and from the internal representation.
package provider

import (
	"context"

	"github.com/callscopeco/callscope/pkg/llm"
)

// Client is a chat completion client for a single provider endpoint.
type Client interface {
	// Name returns the canonical provider name (e.g., "groq", "ollama")
	Name() string

	// Chat sends a completion request and returns the parsed response.
	// Endpoint or transport failures are wrapped in llm.ErrUnavailable.
	Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error)

	// Close releases any resources held by the client.
	Close() error
}
