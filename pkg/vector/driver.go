// Package vector provides interfaces and implementations for vector storage
// and similarity search over transcribed dialogues.
package vector

import "context"

// Document represents a stored dialogue with its embedding and metadata.
type Document struct {
	// ID is a unique identifier for the document. Drivers with
	// server-assigned ids (e.g. pgvector serial columns) fill it on Add.
	ID string

	// SourceName is the name of the transcript file this document came from.
	SourceName string

	// Content is the full transcript text.
	Content string

	// Embedding is the vector representation of the content.
	Embedding []float32
}

// QueryResult represents a search result with its similarity score.
type QueryResult struct {
	Document

	// Similarity is the cosine similarity to the query vector, in [-1, 1].
	// Higher means more similar.
	Similarity float32
}

// Driver handles storage and retrieval of dialogue embeddings.
type Driver interface {
	// Add stores documents with their embeddings. Returns ErrDimension if
	// an embedding does not match the configured dimension. Re-adding the
	// same content inserts a new record; drivers do not dedupe.
	Add(ctx context.Context, docs []Document) error

	// Query finds up to topK documents most similar to the given embedding,
	// ordered by descending similarity. Only documents with a stored
	// embedding are considered. Ties are broken by insertion order.
	// An empty store yields an empty result, not an error.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Get retrieves documents by their IDs.
	Get(ctx context.Context, ids []string) ([]Document, error)

	// Delete removes documents by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the driver.
	Close() error
}
