package charts

import "fmt"

// ScaleError reports a missing or invalid level scale for a framework.
// It is a configuration error, not a data defect.
type ScaleError struct {
	Framework string
	Max       int
	// Configured is set when a scale exists for the framework but is not positive.
	Configured bool
}

func (e *ScaleError) Error() string {
	if e.Configured {
		return fmt.Sprintf("invalid level scale %d for framework %q", e.Max, e.Framework)
	}
	return fmt.Sprintf("no level scale configured for framework %q", e.Framework)
}
