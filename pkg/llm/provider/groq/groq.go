// Package groq implements a chat completion client for Groq's
// OpenAI-compatible API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/callscopeco/callscope/pkg/llm"
	"github.com/callscopeco/callscope/pkg/llm/provider"
)

const (
	// DefaultModel is the default Groq generation model.
	DefaultModel = "llama-3.3-70b-versatile"

	// DefaultBaseURL is the Groq API base URL.
	DefaultBaseURL = "https://api.groq.com"

	completionsPath = "/openai/v1/chat/completions"
)

// Client wraps Groq's chat completions API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds configuration for the Groq client.
type Config struct {
	// APIKey is the Groq API key. Required.
	APIKey string

	// BaseURL overrides the Groq API URL. Defaults to DefaultBaseURL.
	BaseURL string
}

// chatCompletionRequest is the OpenAI-compatible request body.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// chatCompletionResponse is the OpenAI-compatible response body.
type chatCompletionResponse struct {
	Model   string `json:"model"`
	Created int64  `json:"created"`
	Choices []struct {
		Message      llm.Message `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient creates a new Groq chat client. A missing API key is a
// configuration error; callers that want graceful degradation should pass a
// nil provider.Client to the generator instead.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: groq API key is required", llm.ErrUnavailable)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}, nil
}

// Name returns the canonical provider name.
func (c *Client) Name() string {
	return "groq"
}

// Chat sends a chat completion request to Groq.
func (c *Client) Chat(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling groq request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating groq request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: sending groq request: %v", llm.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: groq returned status %d: %s", llm.ErrUnavailable, resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("%w: decoding groq response: %v", llm.ErrUnavailable, err)
	}

	if completion.Error != nil {
		return nil, fmt.Errorf("%w: groq error: %s", llm.ErrUnavailable, completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, llm.ErrEmptyResponse
	}

	out := &llm.ChatResponse{
		Model:      completion.Model,
		CreatedAt:  time.Unix(completion.Created, 0),
		Message:    completion.Choices[0].Message,
		StopReason: completion.Choices[0].FinishReason,
	}
	if completion.Usage != nil {
		out.Usage = &llm.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
	}

	return out, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

// Ensure Client implements provider.Client
var _ provider.Client = (*Client)(nil)
