// Package rag provides the retrieval-augmented grounding pipeline over the
// dialogue corpus: retrieve the top-K most similar transcripts for a
// question, assemble a provenance-tagged context window, and generate an
// answer constrained to cite only the retrieved sources.
package rag

// Source identifies one retrieved transcript and its similarity to the query.
type Source struct {
	ID         string  `json:"id"`
	SourceName string  `json:"source_name"`
	Similarity float32 `json:"similarity"`
}

// SearchResult is a retrieval-only result carrying the transcript content.
type SearchResult struct {
	Source

	Content string `json:"content"`
}

// SearchOutput is the output of a retrieval-only search.
type SearchOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// Answer is the generator's output. CitedSources holds the source
// identifiers as the model reported them in its "Sources utilisées"
// section; they are not independently verified.
type Answer struct {
	Text         string   `json:"text"`
	CitedSources []string `json:"cited_sources,omitempty"`

	// Unavailable marks answers produced without a reachable generation
	// endpoint. Retrieved sources remain valid.
	Unavailable bool `json:"unavailable,omitempty"`
}

// AskOutput is the caller-facing result of a full ask round:
// answer text plus the retrieved sources it was grounded on.
type AskOutput struct {
	Question string   `json:"question"`
	Answer   Answer   `json:"answer"`
	Sources  []Source `json:"sources"`
}
