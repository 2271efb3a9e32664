package models

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	CodeInvalidRequest ErrorCode = "invalid_request"
	CodeInvalidRubric  ErrorCode = "invalid_rubric"
	CodeInternalError  ErrorCode = "internal_error"
	CodeUnknownError   ErrorCode = "unknown_error"
)

// APIError is a classified failure carrying a stable code. The server
// renders it as the error envelope; the client returns it for non-200
// responses.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func NewAPIError(code ErrorCode, format string, args ...interface{}) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %s - %s", e.Code, e.Message)
}

// Status maps the error code to its HTTP status.
func (e *APIError) Status() int {
	switch e.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeInvalidRubric:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type ErrorResponse struct {
	Error *APIError `json:"error"`
}
