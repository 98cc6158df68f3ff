package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/callscopeco/callscope/pkg/llm"
	"github.com/callscopeco/callscope/pkg/llm/provider/groq"
)

var _ = Describe("Client", func() {
	Describe("NewClient", func() {
		It("should require an API key", func() {
			_, err := groq.NewClient(groq.Config{})
			Expect(err).To(MatchError(llm.ErrUnavailable))
		})

		It("should create a client with an API key", func() {
			client, err := groq.NewClient(groq.Config{APIKey: "gsk-test"})
			Expect(err).NotTo(HaveOccurred())
			Expect(client.Name()).To(Equal("groq"))
		})
	})

	Describe("Chat", func() {
		It("should post an OpenAI-style request with bearer auth", func() {
			var gotPath, gotAuth string
			var gotBody map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"model": "llama-3.3-70b-versatile",
					"created": 1700000000,
					"choices": [{"message": {"role": "assistant", "content": "Réponse."}, "finish_reason": "stop"}],
					"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
				}`))
			}))
			defer server.Close()

			client, err := groq.NewClient(groq.Config{APIKey: "gsk-test", BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			temperature := 0.2
			resp, err := client.Chat(context.Background(), &llm.ChatRequest{
				Model:       "llama-3.3-70b-versatile",
				Messages:    []llm.Message{llm.NewUserMessage("bonjour")},
				Temperature: &temperature,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(gotPath).To(Equal("/openai/v1/chat/completions"))
			Expect(gotAuth).To(Equal("Bearer gsk-test"))
			Expect(gotBody["model"]).To(Equal("llama-3.3-70b-versatile"))
			Expect(gotBody["temperature"]).To(BeNumerically("~", 0.2, 0.0001))

			Expect(resp.Message.Content).To(Equal("Réponse."))
			Expect(resp.StopReason).To(Equal("stop"))
			Expect(resp.Usage).NotTo(BeNil())
			Expect(resp.Usage.TotalTokens).To(Equal(15))
		})

		It("should default the model when the request leaves it empty", func() {
			var gotBody map[string]any

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
			}))
			defer server.Close()

			client, err := groq.NewClient(groq.Config{APIKey: "gsk-test", BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, err = client.Chat(context.Background(), &llm.ChatRequest{
				Messages: []llm.Message{llm.NewUserMessage("bonjour")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotBody["model"]).To(Equal(groq.DefaultModel))
		})

		It("should wrap non-200 responses in ErrUnavailable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"error": {"message": "invalid key"}}`, http.StatusUnauthorized)
			}))
			defer server.Close()

			client, err := groq.NewClient(groq.Config{APIKey: "gsk-bad", BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, chatErr := client.Chat(context.Background(), &llm.ChatRequest{
				Messages: []llm.Message{llm.NewUserMessage("bonjour")},
			})
			Expect(chatErr).To(MatchError(llm.ErrUnavailable))
		})

		It("should error on an empty choices list", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices": []}`))
			}))
			defer server.Close()

			client, err := groq.NewClient(groq.Config{APIKey: "gsk-test", BaseURL: server.URL})
			Expect(err).NotTo(HaveOccurred())

			_, chatErr := client.Chat(context.Background(), &llm.ChatRequest{
				Messages: []llm.Message{llm.NewUserMessage("bonjour")},
			})
			Expect(chatErr).To(MatchError(llm.ErrEmptyResponse))
		})
	})
})
