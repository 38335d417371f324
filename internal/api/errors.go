package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/omnicart/crmbridge/internal/crm/envelope"
	"github.com/omnicart/crmbridge/internal/crm/transport"
	"github.com/omnicart/crmbridge/internal/schema"
)

// ErrorCode represents machine-readable error codes
type ErrorCode string

const (
	// General error codes
	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
	ErrCodeBadRequest  ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"

	// Validation error codes
	ErrCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidJSON ErrorCode = "INVALID_JSON"

	// Upstream CRM error codes
	ErrCodeProviderRejected    ErrorCode = "PROVIDER_REJECTED"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamMalformed   ErrorCode = "UPSTREAM_MALFORMED"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error     string            `json:"error"`                // HTTP status text
	Message   string            `json:"message"`              // Human-readable description
	Code      ErrorCode         `json:"code"`                 // Machine-readable error code
	Fields    map[string]string `json:"fields,omitempty"`     // Field-level errors
	RequestID string            `json:"request_id,omitempty"` // Request ID for debugging
}

// NewErrorResponse creates a new error response
func NewErrorResponse(statusCode int, code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    code,
	}
}

// WithFields adds field-level errors to the response
func (e *ErrorResponse) WithFields(fields map[string]string) *ErrorResponse {
	e.Fields = fields
	return e
}

// writeErrorResponse writes a structured error response to the http response writer
func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errResp *ErrorResponse) {
	// Add request ID from chi middleware if available
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		errResp.RequestID = reqID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errResp)
}

// BadRequestError creates a bad request error response
func BadRequestError(w http.ResponseWriter, r *http.Request, code ErrorCode, message string) {
	writeErrorResponse(w, r, http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, code, message))
}

// InternalError creates an internal server error response
func InternalError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, ErrCodeInternal, message))
}

// NotFoundError creates a not found error response
func NotFoundError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusNotFound, NewErrorResponse(http.StatusNotFound, ErrCodeNotFound, message))
}

// DomainError maps a CRM-layer error onto the HTTP surface:
//
//	schema.ValidationError  -> 400 VALIDATION_ERROR (caller sent bad input)
//	envelope.ProviderError  -> 422 PROVIDER_REJECTED (CRM refused the request)
//	envelope.MalformedError -> 502 UPSTREAM_MALFORMED (CRM answered garbage)
//	transport.Error         -> 502 UPSTREAM_UNAVAILABLE (no usable HTTP exchange)
//
// Anything else is a 500.
func DomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		errResp := NewErrorResponse(http.StatusBadRequest, ErrCodeValidation, verr.Message).
			WithFields(verr.Fields)
		writeErrorResponse(w, r, http.StatusBadRequest, errResp)
		return
	}

	var perr *envelope.ProviderError
	if errors.As(err, &perr) {
		errResp := NewErrorResponse(http.StatusUnprocessableEntity, ErrCodeProviderRejected, perr.Message).
			WithFields(perr.Fields)
		writeErrorResponse(w, r, http.StatusUnprocessableEntity, errResp)
		return
	}

	var merr *envelope.MalformedError
	if errors.As(err, &merr) {
		writeErrorResponse(w, r, http.StatusBadGateway,
			NewErrorResponse(http.StatusBadGateway, ErrCodeUpstreamMalformed, "CRM returned an unreadable response"))
		return
	}

	var terr *transport.Error
	if errors.As(err, &terr) {
		writeErrorResponse(w, r, http.StatusBadGateway,
			NewErrorResponse(http.StatusBadGateway, ErrCodeUpstreamUnavailable, "CRM request failed"))
		return
	}

	InternalError(w, r, "internal error")
}
