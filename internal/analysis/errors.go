package analysis

import (
	"errors"
	"fmt"
)

// ErrNoGenerator is returned by GenerateReport when the service has no LLM client.
var ErrNoGenerator = errors.New("no report generator configured")

// ErrEmptyProfile is returned when a generation request carries no profile text.
var ErrEmptyProfile = errors.New("profile text is required")

// GenerateError wraps a failed report generation.
type GenerateError struct {
	TargetRole string
	Cause      error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generating report for %q: %v", e.TargetRole, e.Cause)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}
