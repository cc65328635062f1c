package evo

import "fmt"

// ConfigurationError reports an invalid GA parameter or input detected at
// the call boundary, before any work is performed.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("evo: invalid %s: %s", e.Field, e.Message)
}

func configError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
