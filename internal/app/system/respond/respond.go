// internal/app/system/respond/respond.go
//
// JSON response envelope: {success, data?, results?, message?}. All
// success and error paths go through here so every endpoint speaks the
// same shape.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/joblane/joblane/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Envelope is the wire shape for every response.
type Envelope struct {
	Success bool   `json:"success"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// JSON writes an envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 with a message and optional data.
func OKMessage(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 with a message and the created record.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// List writes a 200 with data and a results count.
func List(w http.ResponseWriter, results int, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Results: &results, Data: data})
}

// Fail writes an error envelope with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Error maps err's kind to an HTTP status and writes the error envelope.
// Unclassified errors are logged and rendered as a generic 500.
func Error(w http.ResponseWriter, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal && logger != nil {
		logger.Error("request failed", zap.Error(err))
	}
	Fail(w, statusFor(kind), apperr.MessageOf(err))
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.Geocoding:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NotFoundHandler serves unknown routes with a JSON 404, keeping the
// envelope consistent even for typo'd paths.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusNotFound, "route not found: "+r.URL.Path)
	}
}
