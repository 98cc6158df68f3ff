package rag

import (
	"fmt"
	"strings"

	"github.com/callscopeco/callscope/pkg/vector"
)

// segmentSeparator joins context segments. Content lines consisting solely
// of "---" are escaped during assembly, so a separator line can never be
// mistaken for transcript content.
const segmentSeparator = "\n\n---\n\n"

// Context is the serialized block of retrieved transcripts handed to the
// generator alongside the question. A Context with zero segments means "no
// information available", which downstream generation treats differently
// from any non-empty context.
type Context struct {
	// Text is the assembled, provenance-tagged context window.
	Text string

	// Segments is the number of transcripts included.
	Segments int
}

// Empty reports whether the context contains no retrieved transcripts.
func (c Context) Empty() bool {
	return c.Segments == 0
}

// AssembleContext deterministically serializes retrieval results into a
// single annotated context window. Pure function of its input: no IO, no
// truncation, identical output for identical input. Each segment carries the
// transcript's id, source name, and similarity to three decimals, followed
// by the full content.
func AssembleContext(results []vector.QueryResult) Context {
	if len(results) == 0 {
		return Context{}
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("[SOURCE id=%s file=%s similarity=%.3f]\n%s",
			result.ID,
			result.SourceName,
			result.Similarity,
			escapeSeparators(result.Content),
		))
	}

	return Context{
		Text:     strings.Join(parts, segmentSeparator),
		Segments: len(results),
	}
}

// escapeSeparators rewrites any content line equal to "---" as "\---" so
// segment boundaries stay unambiguous.
func escapeSeparators(content string) string {
	if !strings.Contains(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			lines[i] = `\---`
		}
	}
	return strings.Join(lines, "\n")
}
