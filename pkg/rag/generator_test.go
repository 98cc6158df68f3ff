package rag_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/rag"
	testutils "github.com/callscopeco/callscope/pkg/utils/test"
	"github.com/callscopeco/callscope/pkg/vector"
)

func someContext() rag.Context {
	return rag.AssembleContext([]vector.QueryResult{
		{
			Document: vector.Document{
				ID:         "1",
				SourceName: "greeting.txt",
				Content:    "Bonjour, merci d'avoir appelé.",
			},
			Similarity: 0.9,
		},
	})
}

var _ = Describe("Generator", func() {
	var logger *zap.Logger

	BeforeEach(func() {
		logger = zap.NewNop()
	})

	Describe("Generate", func() {
		It("should answer 'not found' without calling the model when the context is empty", func() {
			client := testutils.NewMockChatClient("should never be used")
			generator := rag.NewGenerator(client, "test-model", logger)

			answer := generator.Generate(context.Background(), "Une question ?", rag.Context{})
			Expect(answer.Text).To(ContainSubstring("Aucune information trouvée"))
			Expect(answer.Unavailable).To(BeFalse())
			Expect(client.LastRequest).To(BeNil())
		})

		It("should return a marked unavailable answer with a nil client", func() {
			generator := rag.NewGenerator(nil, "test-model", logger)

			answer := generator.Generate(context.Background(), "Une question ?", someContext())
			Expect(answer.Unavailable).To(BeTrue())
			Expect(answer.Text).To(ContainSubstring("Génération indisponible"))
		})

		It("should return a marked unavailable answer when the client fails", func() {
			client := testutils.NewMockChatClient("")
			client.Fail = true
			generator := rag.NewGenerator(client, "test-model", logger)

			answer := generator.Generate(context.Background(), "Une question ?", someContext())
			Expect(answer.Unavailable).To(BeTrue())
		})

		It("should embed the context and question into the prompt", func() {
			client := testutils.NewMockChatClient("Réponse.")
			generator := rag.NewGenerator(client, "test-model", logger)

			generator.Generate(context.Background(), "Pourquoi le client a-t-il appelé ?", someContext())

			Expect(client.LastRequest).NotTo(BeNil())
			Expect(client.LastRequest.Model).To(Equal("test-model"))
			Expect(client.LastRequest.Messages).To(HaveLen(2))
			Expect(client.LastRequest.Messages[0].Role).To(Equal("system"))
			Expect(client.LastRequest.Messages[1].Role).To(Equal("user"))
			Expect(client.LastRequest.Messages[1].Content).To(ContainSubstring("CONTEXTE:"))
			Expect(client.LastRequest.Messages[1].Content).To(ContainSubstring("greeting.txt"))
			Expect(client.LastRequest.Messages[1].Content).To(ContainSubstring("Pourquoi le client a-t-il appelé ?"))
		})

		It("should request a low temperature", func() {
			client := testutils.NewMockChatClient("Réponse.")
			generator := rag.NewGenerator(client, "test-model", logger)

			generator.Generate(context.Background(), "Une question ?", someContext())

			Expect(client.LastRequest.Temperature).NotTo(BeNil())
			Expect(*client.LastRequest.Temperature).To(BeNumerically("~", 0.2, 0.0001))
		})

		It("should parse cited sources from the answer", func() {
			client := testutils.NewMockChatClient(
				"Le client appelait pour une réclamation.\n\nSources utilisées\n- greeting.txt\n- complaint.txt\n",
			)
			generator := rag.NewGenerator(client, "test-model", logger)

			answer := generator.Generate(context.Background(), "Une question ?", someContext())
			Expect(answer.CitedSources).To(Equal([]string{"greeting.txt", "complaint.txt"}))
		})
	})
})

var _ = Describe("ParseCitedSources", func() {
	It("should return nothing when there is no sources section", func() {
		Expect(rag.ParseCitedSources("Une réponse sans sources.")).To(BeEmpty())
	})

	It("should extract dashed list items", func() {
		text := "Réponse.\n\nSources utilisées:\n- a.txt\n- b.txt"
		Expect(rag.ParseCitedSources(text)).To(Equal([]string{"a.txt", "b.txt"}))
	})

	It("should extract numbered list items", func() {
		text := "Réponse.\n\nSources utilisées:\n1. a.txt\n2) b.txt"
		Expect(rag.ParseCitedSources(text)).To(Equal([]string{"a.txt", "b.txt"}))
	})

	It("should match the header case-insensitively", func() {
		text := "Réponse.\n\nSOURCES UTILISÉES\n- a.txt"
		Expect(rag.ParseCitedSources(text)).To(Equal([]string{"a.txt"}))
	})

	It("should stop at prose after the list", func() {
		text := "Réponse.\n\nSources utilisées:\n- a.txt\n\nVoilà tout."
		Expect(rag.ParseCitedSources(text)).To(Equal([]string{"a.txt"}))
	})

	It("should tolerate blank lines between header and list", func() {
		text := "Sources utilisées:\n\n- a.txt"
		Expect(rag.ParseCitedSources(text)).To(Equal([]string{"a.txt"}))
	})
})
