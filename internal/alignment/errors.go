package alignment

import "fmt"

// ValidationError represents malformed or missing required input.
// It is surfaced immediately to the caller; there is no retry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConfigurationError represents engine options outside their expected
// ranges. Construction fails fast rather than producing scores outside [0,1].
type ConfigurationError struct {
	Option  string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Option, e.Message)
}
