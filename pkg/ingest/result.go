package ingest

import "fmt"

// Result contains statistics from an ingestion run.
type Result struct {
	// Files is the number of .txt files seen in the corpus directory.
	Files int `json:"files"`

	// Inserted is the number of transcripts embedded and stored.
	Inserted int `json:"count_inserted"`

	// Skipped is the number of empty/whitespace-only transcripts dropped.
	Skipped int `json:"count_skipped"`
}

// Summary returns a human-readable summary of the ingestion result.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"Ingestion complete: %d inserted, %d skipped (empty) out of %d transcript files",
		r.Inserted, r.Skipped, r.Files,
	)
}
