package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/embeddings"
	"github.com/callscopeco/callscope/pkg/rag"
	testutils "github.com/callscopeco/callscope/pkg/utils/test"
	"github.com/callscopeco/callscope/pkg/vector"
)

func newTestPipeline(driver *testutils.MockVectorDriver, client *testutils.MockChatClient) *rag.Pipeline {
	mock := testutils.NewMockEmbedder()
	mock.Default = []float32{1, 0, 0}

	embedder, err := embeddings.NewNormalized(mock, 3)
	Expect(err).NotTo(HaveOccurred())

	if client == nil {
		return rag.NewPipeline(embedder, driver, nil, "test-model", zap.NewNop())
	}
	return rag.NewPipeline(embedder, driver, client, "test-model", zap.NewNop())
}

var _ = Describe("handleSearchEndpoint", func() {
	var (
		server *Server
		driver *testutils.MockVectorDriver
	)

	BeforeEach(func() {
		driver = testutils.NewMockVectorDriver()
		driver.Results = []vector.QueryResult{
			{
				Document: vector.Document{
					ID:         "1",
					SourceName: "greeting.txt",
					Content:    "Bonjour, merci d'avoir appelé.",
				},
				Similarity: 0.91,
			},
			{
				Document: vector.Document{
					ID:         "2",
					SourceName: "complaint.txt",
					Content:    "Je suis très mécontent.",
				},
				Similarity: 0.42,
			},
		}

		pipeline := newTestPipeline(driver, testutils.NewMockChatClient("ok"))
		server = NewServer(Config{ListenAddr: ":0"}, pipeline, zap.NewNop())
	})

	Context("when the pipeline is not configured", func() {
		It("returns 503", func() {
			unconfigured := NewServer(Config{ListenAddr: ":0"}, nil, zap.NewNop())

			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=test", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := unconfigured.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusServiceUnavailable))
		})
	})

	Context("when query parameter is missing", func() {
		It("returns 400", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})

	Context("when top_k is not a positive integer", func() {
		It("returns 400", func() {
			for _, topK := range []string{"abc", "-1", "0"} {
				req, err := http.NewRequest(http.MethodGet, "/v1/search?query=test&top_k="+topK, nil)
				Expect(err).NotTo(HaveOccurred())

				resp, err := server.app.Test(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
			}
		})
	})

	Context("with a valid query", func() {
		It("returns ranked results", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=bonjour", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			var output rag.SearchOutput
			Expect(json.Unmarshal(body, &output)).To(Succeed())
			Expect(output.Query).To(Equal("bonjour"))
			Expect(output.Count).To(Equal(2))
			Expect(output.Results[0].SourceName).To(Equal("greeting.txt"))
			Expect(output.Results[0].Content).To(ContainSubstring("Bonjour"))
		})

		It("passes top_k through to retrieval", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=bonjour&top_k=1", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			var output rag.SearchOutput
			Expect(json.Unmarshal(body, &output)).To(Succeed())
			Expect(output.Count).To(Equal(1))
		})
	})

	Context("when the store fails", func() {
		It("returns 500", func() {
			driver.FailQuery = true

			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=bonjour", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))
		})
	})
})
