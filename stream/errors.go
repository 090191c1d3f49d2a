package stream

import "fmt"

// ErrorCode classifies stream transport errors.
type ErrorCode int

const (
	// ErrCodeOpenRejected indicates the server rejected the stream at open:
	// a non-2xx status or a content type other than text/event-stream.
	ErrCodeOpenRejected ErrorCode = iota
	// ErrCodeTransport indicates a failure during an active stream
	// (connection reset, read error, malformed response).
	ErrCodeTransport
	// ErrCodeCanceled indicates the session context was canceled.
	ErrCodeCanceled
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOpenRejected:
		return "open_rejected"
	case ErrCodeTransport:
		return "transport"
	case ErrCodeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is a structured stream transport error.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// ContentType is the response content type for open rejections.
	ContentType string
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("stream: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("stream: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewOpenRejectedError creates an open-rejection error for a bad status
// or wrong content type.
func NewOpenRejectedError(statusCode int, contentType string) *Error {
	msg := fmt.Sprintf("HTTP %d", statusCode)
	if contentType != "" {
		msg = fmt.Sprintf("unexpected content type %q", contentType)
	}
	return &Error{
		Code:        ErrCodeOpenRejected,
		StatusCode:  statusCode,
		ContentType: contentType,
		Message:     msg,
	}
}

// NewTransportError creates a mid-stream transport error.
func NewTransportError(err error) *Error {
	return &Error{
		Code:    ErrCodeTransport,
		Message: err.Error(),
		Err:     err,
	}
}

// NewCanceledError creates an error for a canceled session.
func NewCanceledError(err error) *Error {
	return &Error{
		Code:    ErrCodeCanceled,
		Message: err.Error(),
		Err:     err,
	}
}

// IsOpenRejected reports whether err is an open rejection.
func IsOpenRejected(err error) bool {
	se, ok := err.(*Error)
	return ok && se.Code == ErrCodeOpenRejected
}

// IsCanceled reports whether err is a cancellation.
func IsCanceled(err error) bool {
	se, ok := err.(*Error)
	return ok && se.Code == ErrCodeCanceled
}
