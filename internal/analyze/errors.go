package analyze

import (
	"context"
	"errors"
	"net/http"
)

// Error codes returned to API clients.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodePDFError        = "PDF_ERROR"
	CodeTimeout         = "TIMEOUT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeAnalysisError   = "ANALYSIS_ERROR"
)

// Error is the analysis failure taxonomy. It is constructed at the point of
// failure and propagated unchanged to the HTTP boundary; messages are safe to
// show to clients.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewInvalidInput reports a malformed or missing request value.
func NewInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message, Status: http.StatusBadRequest}
}

// NewPayloadTooLarge reports a payload exceeding the configured size limit.
func NewPayloadTooLarge(message string) *Error {
	return &Error{Code: CodePayloadTooLarge, Message: message, Status: http.StatusRequestEntityTooLarge}
}

// NewPDFError reports a structurally unparseable PDF.
func NewPDFError(message string) *Error {
	return &Error{Code: CodePDFError, Message: message, Status: http.StatusBadRequest}
}

// NewTimeout reports an operation that exceeded its deadline.
func NewTimeout(message string) *Error {
	return &Error{Code: CodeTimeout, Message: message, Status: http.StatusGatewayTimeout}
}

// NewInternal reports an unanticipated failure.
func NewInternal(message string) *Error {
	return &Error{Code: CodeInternalError, Message: message, Status: http.StatusInternalServerError}
}

// NewAnalysisError reports a scoring-specific failure.
func NewAnalysisError(message string) *Error {
	return &Error{Code: CodeAnalysisError, Message: message, Status: http.StatusInternalServerError}
}

// AsError maps any error to the taxonomy. Typed errors pass through,
// context deadline expiry becomes TIMEOUT, everything else INTERNAL_ERROR.
func AsError(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeout("operation timed out")
	}
	return NewInternal(err.Error())
}
