package testutils

import (
	"context"
	"fmt"

	"github.com/callscopeco/callscope/pkg/llm"
)

// MockChatClient is a test chat completion client
type MockChatClient struct {
	// Response is the assistant text returned by Chat.
	Response string

	// Fail causes Chat to return llm.ErrUnavailable.
	Fail bool

	// LastRequest records the most recent request for assertions.
	LastRequest *llm.ChatRequest
}

func NewMockChatClient(response string) *MockChatClient {
	return &MockChatClient{Response: response}
}

func (m *MockChatClient) Name() string {
	return "mock"
}

func (m *MockChatClient) Chat(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	m.LastRequest = req
	if m.Fail {
		return nil, fmt.Errorf("%w: mock chat failure", llm.ErrUnavailable)
	}
	return &llm.ChatResponse{
		Model:   req.Model,
		Message: llm.Message{Role: "assistant", Content: m.Response},
	}, nil
}

func (m *MockChatClient) Close() error {
	return nil
}
