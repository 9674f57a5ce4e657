package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a client is requested without credentials.
var ErrMissingAPIKey = errors.New("API key is required")

// GenerationError wraps a failed model call.
type GenerationError struct {
	Model string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed on %s: %v", e.Model, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
