package resp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ncobase/recordlist/ecode"
	"github.com/ncobase/recordlist/linkhandler"
	"github.com/ncobase/recordlist/store"
)

// Exception represents the response structure.
type Exception struct {
	Status  int    `json:"status,omitempty"`  // HTTP status
	Code    int    `json:"code,omitempty"`    // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
	Data    any    `json:"data,omitempty"`    // Response data
}

// Success writes an OK response carrying data.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes a success response with a custom status code. A
// plain string payload becomes the message.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	var payload any
	if len(data) > 0 {
		payload = data[0]
	}
	if msg, ok := payload.(string); ok {
		writeJSON(w, statusCode, map[string]any{"message": msg})
		return
	}
	if payload == nil {
		writeJSON(w, statusCode, map[string]any{"message": "ok"})
		return
	}
	writeJSON(w, statusCode, payload)
}

// Fail writes a failure response.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = &Exception{}
	}
	code := r.Code
	if code == 0 {
		code = ecode.RequestErr
	}
	status := r.Status
	if status == 0 {
		status = ecode.ToHTTPStatus(code)
	}
	message := r.Message
	if message == "" {
		message = ecode.Text(code)
	}
	writeJSON(w, status, &Exception{Code: code, Message: message, Errors: r.Errors})
}

// BadRequest writes a parameter failure.
func BadRequest(w http.ResponseWriter, message string, errs ...any) {
	e := &Exception{Code: ecode.ParamErr, Message: message}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	Fail(w, e)
}

// NotFound writes a missing-resource failure.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Code: ecode.NotFound, Message: message})
}

// FromError classifies err against the domain error taxonomy and writes the
// matching failure: missing records map to 404, an unavailable collaborator
// to 503, an unusable handler configuration to the config error, everything
// else to a generic server error.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		Fail(w, &Exception{Code: ecode.NotFound, Message: err.Error()})
	case errors.Is(err, store.ErrCollaboratorUnavailable):
		Fail(w, &Exception{Code: ecode.CollaboratorErr, Message: err.Error()})
	case errors.Is(err, linkhandler.ErrNoHandlersConfigured):
		Fail(w, &Exception{Code: ecode.ConfigErr, Message: err.Error()})
	default:
		Fail(w, &Exception{Code: ecode.ServerErr, Message: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
