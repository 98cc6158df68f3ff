package llm

import "errors"

var (
	// ErrUnavailable is returned when no generation client is configured or
	// the generation endpoint cannot be reached. Callers must degrade to a
	// marked unavailable answer rather than fail the whole request.
	ErrUnavailable = errors.New("generation unavailable")

	// ErrEmptyResponse is returned when the endpoint answers without any
	// completion choice.
	ErrEmptyResponse = errors.New("empty completion response")
)
