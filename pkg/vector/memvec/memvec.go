// Package memvec provides an in-memory vector driver using an exact cosine
// scan. Intended for tests, demos, and small corpora; nothing is persisted.
package memvec

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/vector"
)

// MemVecDriver implements vector.Driver with a linear in-memory scan.
type MemVecDriver struct {
	mu         sync.RWMutex
	docs       []vector.Document
	dimensions uint
	logger     *zap.Logger
}

// Config holds configuration for the in-memory driver.
type Config struct {
	// Dimensions is the required embedding dimension. Must be non-zero.
	Dimensions uint
}

// NewMemVecDriver creates a new in-memory vector driver.
func NewMemVecDriver(c Config, logger *zap.Logger) (*MemVecDriver, error) {
	if c.Dimensions == 0 {
		return nil, fmt.Errorf("memvec embedding dimensions cannot be 0, must be configured")
	}

	return &MemVecDriver{
		docs:       make([]vector.Document, 0),
		dimensions: c.Dimensions,
		logger:     logger,
	}, nil
}

// Add stores documents in insertion order. Documents with an empty ID are
// assigned a random UUID.
func (d *MemVecDriver) Add(_ context.Context, docs []vector.Document) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, doc := range docs {
		if doc.Embedding != nil && uint(len(doc.Embedding)) != d.dimensions {
			return fmt.Errorf("%w: document %q has %d dimensions, store configured for %d",
				vector.ErrDimension, doc.SourceName, len(doc.Embedding), d.dimensions)
		}

		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}

		if doc.Embedding != nil {
			doc.Embedding = vector.Sanitize(doc.Embedding)
		}

		d.docs = append(d.docs, doc)
	}

	d.logger.Debug("added documents to memvec",
		zap.Int("count", len(docs)),
		zap.Int("total", len(d.docs)),
	)

	return nil
}

// Query scans all documents with a stored embedding and returns the topK
// most similar, sorted descending. The sort is stable, so equal scores
// preserve insertion order.
func (d *MemVecDriver) Query(_ context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	results := make([]vector.QueryResult, 0, len(d.docs))
	for _, doc := range d.docs {
		if doc.Embedding == nil {
			continue
		}
		results = append(results, vector.QueryResult{
			Document:   doc,
			Similarity: vector.Cosine(embedding, doc.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}

	d.logger.Debug("queried memvec",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Get retrieves documents by their IDs.
func (d *MemVecDriver) Get(_ context.Context, ids []string) ([]vector.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var docs []vector.Document
	for _, doc := range d.docs {
		if wanted[doc.ID] {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Delete removes documents by their IDs.
func (d *MemVecDriver) Delete(_ context.Context, ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	kept := d.docs[:0]
	for _, doc := range d.docs {
		if !doomed[doc.ID] {
			kept = append(kept, doc)
		}
	}
	d.docs = kept
	return nil
}

// Close releases resources held by the driver.
func (d *MemVecDriver) Close() error {
	return nil
}

// Ensure MemVecDriver implements vector.Driver
var _ vector.Driver = (*MemVecDriver)(nil)
