package memvec_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/vector"
	"github.com/callscopeco/callscope/pkg/vector/memvec"
)

var _ = Describe("MemVecDriver", func() {
	var logger *zap.Logger

	BeforeEach(func() {
		logger = zap.NewNop()
	})

	Describe("NewMemVecDriver", func() {
		It("should error when dimensions are not specified", func() {
			_, err := memvec.NewMemVecDriver(memvec.Config{}, logger)
			Expect(err).To(HaveOccurred())
		})

		It("should create a driver with dimensions configured", func() {
			driver, err := memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver).NotTo(BeNil())
			Expect(driver.Close()).To(Succeed())
		})
	})

	Describe("Interface compliance", func() {
		It("should implement vector.Driver interface", func() {
			var _ vector.Driver = (*memvec.MemVecDriver)(nil)
		})
	})

	Describe("Add", func() {
		var driver *memvec.MemVecDriver

		BeforeEach(func() {
			var err error
			driver, err = memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should assign a UUID to documents without an ID", func() {
			docs := []vector.Document{
				{SourceName: "greeting.txt", Embedding: []float32{1, 0, 0, 0}},
			}
			Expect(driver.Add(context.Background(), docs)).To(Succeed())

			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ID).NotTo(BeEmpty())
		})

		It("should reject documents with mismatched dimensions", func() {
			docs := []vector.Document{
				{ID: "doc-1", Embedding: []float32{1, 0}},
			}
			err := driver.Add(context.Background(), docs)
			Expect(err).To(MatchError(vector.ErrDimension))
		})

		It("should keep duplicate inserts as separate documents", func() {
			doc := vector.Document{SourceName: "greeting.txt", Embedding: []float32{1, 0, 0, 0}}
			Expect(driver.Add(context.Background(), []vector.Document{doc})).To(Succeed())
			Expect(driver.Add(context.Background(), []vector.Document{doc})).To(Succeed())

			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})
	})

	Describe("Query", func() {
		var driver *memvec.MemVecDriver

		BeforeEach(func() {
			var err error
			driver, err = memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())

			docs := []vector.Document{
				{ID: "doc-1", SourceName: "a.txt", Embedding: []float32{1, 0, 0, 0}},
				{ID: "doc-2", SourceName: "b.txt", Embedding: []float32{0, 1, 0, 0}},
				{ID: "doc-3", SourceName: "c.txt", Embedding: []float32{0.9, 0.1, 0, 0}},
			}
			Expect(driver.Add(context.Background(), docs)).To(Succeed())
		})

		It("should return an empty result on an empty store", func() {
			empty, err := memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())

			results, queryErr := empty.Query(context.Background(), []float32{1, 0, 0, 0}, 5)
			Expect(queryErr).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})

		It("should rank the most similar document first", func() {
			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect(results[0].ID).To(Equal("doc-1"))
			Expect(results[1].ID).To(Equal("doc-3"))
			Expect(results[2].ID).To(Equal("doc-2"))
		})

		It("should return similarity scores in descending order", func() {
			results, err := driver.Query(context.Background(), []float32{0.5, 0.5, 0, 0}, 3)
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(results); i++ {
				Expect(results[i-1].Similarity).To(BeNumerically(">=", results[i].Similarity))
			}
		})

		It("should respect the topK limit", func() {
			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})

		It("should return fewer results than topK when the store is smaller", func() {
			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
		})

		It("should break similarity ties by insertion order", func() {
			tied, err := memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())

			docs := []vector.Document{
				{ID: "first", Embedding: []float32{1, 0, 0, 0}},
				{ID: "second", Embedding: []float32{1, 0, 0, 0}},
				{ID: "third", Embedding: []float32{1, 0, 0, 0}},
			}
			Expect(tied.Add(context.Background(), docs)).To(Succeed())

			results, err := tied.Query(context.Background(), []float32{1, 0, 0, 0}, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].ID).To(Equal("first"))
			Expect(results[1].ID).To(Equal("second"))
			Expect(results[2].ID).To(Equal("third"))
		})

		It("should exclude documents without an embedding", func() {
			Expect(driver.Add(context.Background(), []vector.Document{
				{ID: "no-embedding", SourceName: "d.txt"},
			})).To(Succeed())

			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			for _, result := range results {
				Expect(result.ID).NotTo(Equal("no-embedding"))
			}
		})
	})

	Describe("Get", func() {
		var driver *memvec.MemVecDriver

		BeforeEach(func() {
			var err error
			driver, err = memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())

			docs := []vector.Document{
				{ID: "doc-1", SourceName: "a.txt", Content: "bonjour", Embedding: []float32{1, 0, 0, 0}},
				{ID: "doc-2", SourceName: "b.txt", Content: "au revoir", Embedding: []float32{0, 1, 0, 0}},
			}
			Expect(driver.Add(context.Background(), docs)).To(Succeed())
		})

		It("should retrieve documents by IDs", func() {
			docs, err := driver.Get(context.Background(), []string{"doc-1", "doc-2"})
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(2))
		})

		It("should skip non-existent IDs", func() {
			docs, err := driver.Get(context.Background(), []string{"doc-1", "nonexistent"})
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].Content).To(Equal("bonjour"))
		})
	})

	Describe("Delete", func() {
		var driver *memvec.MemVecDriver

		BeforeEach(func() {
			var err error
			driver, err = memvec.NewMemVecDriver(memvec.Config{Dimensions: 4}, logger)
			Expect(err).NotTo(HaveOccurred())

			docs := []vector.Document{
				{ID: "doc-1", Embedding: []float32{1, 0, 0, 0}},
				{ID: "doc-2", Embedding: []float32{0, 1, 0, 0}},
			}
			Expect(driver.Add(context.Background(), docs)).To(Succeed())
		})

		It("should remove deleted documents from query results", func() {
			Expect(driver.Delete(context.Background(), []string{"doc-1"})).To(Succeed())

			results, err := driver.Query(context.Background(), []float32{1, 0, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ID).To(Equal("doc-2"))
		})

		It("should not error when deleting non-existent IDs", func() {
			Expect(driver.Delete(context.Background(), []string{"nonexistent"})).To(Succeed())
		})
	})
})
