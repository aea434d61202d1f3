// Package http provides the JSON API server and its handlers.
//
// This file implements the builder used to write every JSON response and
// the mapping from domain errors to status codes.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"expensewise/internal/core"
	"expensewise/internal/log"
	"expensewise/internal/storage"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.statusCode == http.StatusNoContent {
		w.WriteHeader(b.statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	if b.body != nil {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(b.body)
	}
}

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Error   string   `json:"error"`
	Reasons []string `json:"reasons,omitempty"`
}

// ErrorResponse creates a standard JSON error response.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Body(ErrorBody{Error: message})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

// ValidationErrorResponse creates a 422 carrying every violated rule.
func ValidationErrorResponse(ve *core.ValidationError) *JSONResponseBuilder {
	return NewJSONResponse().
		Status(http.StatusUnprocessableEntity).
		Body(ErrorBody{Error: ve.Error(), Reasons: ve.Reasons})
}

// errorFor maps a service error to its response. Client errors are logged
// at debug; unexpected errors are logged and hidden behind a generic 500.
func errorFor(r *http.Request, err error) *JSONResponseBuilder {
	logger := log.FromContext(r.Context())
	errType := errorTypeOf(err)
	var resp *JSONResponseBuilder
	var ve *core.ValidationError
	var de *decodeError
	switch {
	case errors.As(err, &de):
		resp = BadRequestError(de.Error())
	case errors.As(err, &ve):
		resp = ValidationErrorResponse(ve)
	case errors.Is(err, core.ErrNotFound):
		resp = NotFoundError("not found")
	case errors.Is(err, core.ErrLoanSettled):
		resp = ErrorResponse(http.StatusConflict, err.Error())
	default:
		log.NewStructuredLogger(logger).
			LogError(r.Context(), "Request failed", err, r.Method+" "+r.URL.Path, errType)
		return ErrorResponse(http.StatusInternalServerError, "internal error")
	}
	logger.DebugContext(r.Context(), "Request rejected",
		log.FieldError, err.Error(), log.FieldErrorType, errType)
	return resp
}

// errorTypeOf classifies err for the error_type log field.
func errorTypeOf(err error) string {
	var ve *core.ValidationError
	var de *decodeError
	switch {
	case errors.As(err, &de), errors.As(err, &ve):
		return log.ErrorTypeValidation
	case errors.Is(err, core.ErrNotFound):
		return log.ErrorTypeNotFound
	case errors.Is(err, core.ErrLoanSettled):
		return log.ErrorTypeConflict
	case errors.Is(err, storage.ErrStorage):
		return log.ErrorTypeDatabase
	}
	return log.ErrorTypeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	NewJSONResponse().Status(status).Body(v).Write(w)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errorFor(r, err).Write(w)
}
