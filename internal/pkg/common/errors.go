package common

import (
	"errors"
	"net/http"
)

// ErrorResponse API error body
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CustomError coded error carrying an HTTP status
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches coded errors by code so that wrapped copies of a
// predefined error still satisfy errors.Is.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a coded error
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Wrap returns a copy of a predefined error with a cause attached.
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// CodeOf returns the code of the first CustomError in err's chain.
func CodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	if err == nil {
		return ""
	}
	return ErrCodeInternalError
}

// ToResponse converts a CustomError to its JSON body.
func (e *CustomError) ToResponse(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// Error codes
const (
	// client (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"

	// server (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR"

	// generation path; recovered by falling back to local recommendations
	ErrCodeAIDisabled      = "AI_DISABLED"
	ErrCodeAITransport     = "AI_TRANSPORT"
	ErrCodeAITimeout       = "AI_TIMEOUT"
	ErrCodeAIBadStatus     = "AI_BAD_STATUS"
	ErrCodeAIEmptyResponse = "AI_EMPTY_RESPONSE"
	ErrCodeAIDecode        = "AI_DECODE_FAILED"
)

// Predefined errors
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusRequestTimeout, nil)
	ErrPayloadTooLarge = NewError(ErrCodePayloadTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	ErrInternalError = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)

	ErrAIDisabled      = NewError(ErrCodeAIDisabled, "AI provider not configured", http.StatusServiceUnavailable, nil)
	ErrAITransport     = NewError(ErrCodeAITransport, "AI provider unreachable", http.StatusBadGateway, nil)
	ErrAITimeout       = NewError(ErrCodeAITimeout, "AI provider timed out", http.StatusGatewayTimeout, nil)
	ErrAIBadStatus     = NewError(ErrCodeAIBadStatus, "AI provider returned error status", http.StatusBadGateway, nil)
	ErrAIEmptyResponse = NewError(ErrCodeAIEmptyResponse, "AI provider response has no text", http.StatusBadGateway, nil)
	ErrAIDecode        = NewError(ErrCodeAIDecode, "AI output is not a valid recommendation list", http.StatusBadGateway, nil)
)
