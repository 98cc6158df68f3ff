package llm

// ChatRequest represents a provider-agnostic chat completion request.
type ChatRequest struct {
	// Model name (e.g., "llama-3.3-70b-versatile", "gemma3:latest")
	Model string `json:"model"`

	// Conversation messages in order.
	Messages []Message `json:"messages"`

	// Generation parameters (unified across providers)
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}
