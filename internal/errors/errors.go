// Package errors defines stable error codes for the repolens failure modes.
//
// The taxonomy mirrors the run lifecycle: per-file extraction failures and
// per-view render failures never abort a run; only an invalid file-set input
// at the orchestration entry point is fatal.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ExtractionFailed indicates a single file could not be parsed; the file
	// is skipped and the run continues
	ExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// MergeConflict indicates a duplicate qualified class name; the first
	// occurrence wins and the conflict is logged
	MergeConflict ErrorCode = "MERGE_CONFLICT"
	// RenderFailed indicates one view failed to materialize; other views
	// continue
	RenderFailed ErrorCode = "RENDER_FAILED"
	// SnapshotLoadFailed indicates a corrupt or missing persisted index; the
	// store degrades to empty
	SnapshotLoadFailed ErrorCode = "SNAPSHOT_LOAD_FAILED"
	// SnapshotWriteFailed indicates the index could not be persisted
	SnapshotWriteFailed ErrorCode = "SNAPSHOT_WRITE_FAILED"
	// InvalidInput indicates a missing or invalid file-set input; the only
	// fatal code in the taxonomy
	InvalidInput ErrorCode = "INVALID_INPUT"
	// ThemeLoadFailed indicates a missing or malformed theme file; rendering
	// falls back to the built-in theme
	ThemeLoadFailed ErrorCode = "THEME_LOAD_FAILED"
	// Timeout indicates the overall indexing deadline elapsed with tasks
	// still pending
	Timeout ErrorCode = "TIMEOUT"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// LensError carries an error code, a human-readable message, and the
// offending subject (file path or view name).
type LensError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Subject string    `json:"subject,omitempty"`
	cause   error
}

// New creates a LensError without a subject.
func New(code ErrorCode, message string, cause error) *LensError {
	return &LensError{Code: code, Message: message, cause: cause}
}

// NewPath creates a LensError attached to a file path or view name.
func NewPath(code ErrorCode, subject, message string, cause error) *LensError {
	return &LensError{Code: code, Message: message, Subject: subject, cause: cause}
}

// Error implements the error interface
func (e *LensError) Error() string {
	switch {
	case e.Subject != "" && e.cause != nil:
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Subject, e.Message, e.cause)
	case e.Subject != "":
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Subject, e.Message)
	case e.cause != nil:
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	default:
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error
func (e *LensError) Unwrap() error {
	return e.cause
}

// Fatal reports whether the error should abort the whole run.
func (e *LensError) Fatal() bool {
	return e.Code == InvalidInput
}

// CodeOf extracts the ErrorCode from err, or InternalError when err carries
// no LensError in its chain.
func CodeOf(err error) ErrorCode {
	var le *LensError
	if errors.As(err, &le) {
		return le.Code
	}
	return InternalError
}
