package rag

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/callscopeco/callscope/pkg/embeddings"
	"github.com/callscopeco/callscope/pkg/llm/provider"
	"github.com/callscopeco/callscope/pkg/vector"
)

// Pipeline wires retrieval, context assembly, and grounded generation into
// the caller-facing ask/search API. It is stateless per call: no
// conversation memory, no caching. Hosts that serve concurrent users may
// share one Pipeline; all held dependencies are safe for concurrent reads.
type Pipeline struct {
	retriever *Retriever
	generator *Generator
	logger    *zap.Logger
}

// NewPipeline constructs the pipeline from explicitly injected
// dependencies. client may be nil when generation is not configured.
func NewPipeline(
	embedder embeddings.Embedder,
	driver vector.Driver,
	client provider.Client,
	model string,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		retriever: NewRetriever(embedder, driver, logger),
		generator: NewGenerator(client, model, logger),
		logger:    logger,
	}
}

// Ask answers a question from the dialogue corpus: retrieve the k most
// similar transcripts, assemble the context window, generate a grounded
// answer. A store failure aborts with an error and no answer is fabricated.
// A generation failure still returns the retrieved sources alongside a
// marked unavailable answer.
func (p *Pipeline) Ask(ctx context.Context, question string, k int) (*AskOutput, error) {
	results, err := p.retriever.Retrieve(ctx, question, k)
	if err != nil {
		return nil, err
	}

	ragContext := AssembleContext(results)
	answer := p.generator.Generate(ctx, question, ragContext)

	sources := make([]Source, 0, len(results))
	for _, result := range results {
		sources = append(sources, Source{
			ID:         result.ID,
			SourceName: result.SourceName,
			Similarity: result.Similarity,
		})
	}

	p.warnUnknownCitations(answer, sources)

	return &AskOutput{
		Question: question,
		Answer:   *answer,
		Sources:  sources,
	}, nil
}

// Search performs retrieval only, returning ranked transcripts without
// calling the generator.
func (p *Pipeline) Search(ctx context.Context, query string, k int) (*SearchOutput, error) {
	results, err := p.retriever.Retrieve(ctx, query, k)
	if err != nil {
		return nil, err
	}

	searchResults := make([]SearchResult, 0, len(results))
	for _, result := range results {
		searchResults = append(searchResults, SearchResult{
			Source: Source{
				ID:         result.ID,
				SourceName: result.SourceName,
				Similarity: result.Similarity,
			},
			Content: result.Content,
		})
	}

	return &SearchOutput{
		Query:   query,
		Results: searchResults,
		Count:   len(searchResults),
	}, nil
}

// warnUnknownCitations cross-checks the model's claimed citations against
// the sources actually supplied. Claims are logged, never rewritten: the
// citation list stays a trust boundary, but drift becomes observable.
func (p *Pipeline) warnUnknownCitations(answer *Answer, sources []Source) {
	if len(answer.CitedSources) == 0 {
		return
	}

	known := make(map[string]bool, len(sources)*2)
	for _, s := range sources {
		known[s.ID] = true
		known[s.SourceName] = true
	}

	for _, cited := range answer.CitedSources {
		if citationMatches(cited, known) {
			continue
		}
		p.logger.Warn("model cited a source it was not given",
			zap.String("cited", cited),
		)
	}
}

// citationMatches reports whether a claimed citation names any supplied id
// or source name. Models often decorate citations ("fichier greeting.txt,
// id=3"), so substring containment of a known identifier counts.
func citationMatches(cited string, known map[string]bool) bool {
	if known[cited] {
		return true
	}
	for id := range known {
		if id != "" && strings.Contains(cited, id) {
			return true
		}
	}
	return false
}
