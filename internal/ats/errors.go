package ats

import "fmt"

// ConfigurationError represents optimizer options outside their expected
// ranges, reported at construction time.
type ConfigurationError struct {
	Option  string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s: %s", e.Option, e.Message)
}

// ValidationError represents malformed or missing required input.
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
