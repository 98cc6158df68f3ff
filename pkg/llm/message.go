// Package llm defines provider-agnostic chat completion types used by the
// grounded generation layer.
package llm

// Message represents a single role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(text string) Message {
	return Message{Role: "system", Content: text}
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return Message{Role: "user", Content: text}
}
