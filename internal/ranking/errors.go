// Package ranking scores job postings against a resume profile and returns
// a ranked, explained top-N list.
package ranking

import "fmt"

// ConfigurationError represents an inconsistency in the scoring inputs that
// makes every result meaningless, such as a missing resume vector or a
// vector dimensionality mismatch. The ranking call aborts without partial
// results.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// InputValidationError represents a caller mistake detected before scoring
// begins, such as a non-positive topN or a nil resume profile.
type InputValidationError struct {
	Message string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("input validation error: %s", e.Message)
}
