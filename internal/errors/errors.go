// Package errors provides the structured error type returned by the HTTP layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is a stable, machine-readable error identifier.
type ErrorCode string

const (
	ErrCodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
	ErrCodeUploadTooLarge      ErrorCode = "UPLOAD_TOO_LARGE"
	ErrCodeMalformedUpload     ErrorCode = "MALFORMED_UPLOAD"
	ErrCodeSimulationCancelled ErrorCode = "SIMULATION_CANCELLED"
	ErrCodeRenderFailed        ErrorCode = "RENDER_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error code onto a response status.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case ErrCodeUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrCodeMalformedUpload:
		return http.StatusBadRequest
	case ErrCodeSimulationCancelled:
		// nginx's "client closed request"
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func NewUnsupportedFileTypeError(ext string, allowed []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedFileType,
		Message:   fmt.Sprintf("File type %q is not allowed", ext),
		Details:   fmt.Sprintf("accepted types: %v", allowed),
		Metadata:  map[string]interface{}{"extension": ext, "allowed": allowed},
		Timestamp: time.Now().UTC(),
	}
}

func NewUploadTooLargeError(size, limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadTooLarge,
		Message:   "File exceeds the upload limit",
		Details:   fmt.Sprintf("%d bytes > %d bytes", size, limit),
		Metadata:  map[string]interface{}{"size": size, "limit": limit},
		Timestamp: time.Now().UTC(),
	}
}

// NewBodyTooLargeError reports a request body cut off at limit bytes, when
// the actual size is unknown (chunked or truncated reads).
func NewBodyTooLargeError(limit int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeUploadTooLarge,
		Message:   "File exceeds the upload limit",
		Details:   fmt.Sprintf("request body exceeds %d bytes", limit),
		Metadata:  map[string]interface{}{"limit": limit},
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedUploadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedUpload,
		Message:   "Upload could not be read as a multipart form",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewSimulationCancelledError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSimulationCancelled,
		Message:   "Simulation was cancelled before it finished",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRenderFailed,
		Message:   "Failed to render response",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandard returns err as a *StandardError, wrapping unknown errors as
// render failures.
func AsStandard(err error) *StandardError {
	if err == nil {
		return nil
	}
	var se *StandardError
	if stderrors.As(err, &se) {
		return se
	}
	return NewRenderFailedError(err)
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StandardError
	return stderrors.As(err, &se) && se.Code == code
}
