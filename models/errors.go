package models

import (
	"errors"
	"fmt"
)

// ExtractionError means the request text could not be turned into an intent.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return "extraction failed: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// MissingFieldError reports a required intent field that is still empty
// after normalization.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UpstreamError wraps a failed call to a provider or the language service.
// Status is zero when no HTTP response was received.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NormalizationError describes a provider payload whose shape was not recognized.
type NormalizationError struct {
	Kind   Kind
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize %s results: %s", e.Kind, e.Reason)
}

// IsRecoverable reports whether err belongs to the pipeline's error taxonomy.
func IsRecoverable(err error) bool {
	var (
		ee *ExtractionError
		me *MissingFieldError
		ue *UpstreamError
		ne *NormalizationError
	)
	return errors.As(err, &ee) || errors.As(err, &me) || errors.As(err, &ue) || errors.As(err, &ne)
}
