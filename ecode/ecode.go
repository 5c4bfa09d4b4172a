package ecode

import "net/http"

// Common error codes
const (
	OK = 0

	RequestErr = -400
	ParamErr   = -401
	// AccessDenied is not raised by the core itself, permission denials
	// silently omit actions, but the serve layer uses it for rejected
	// clipboard commands.
	AccessDenied = -403
	NotFound     = -404

	// ConfigErr covers deployment misconfiguration, such as an empty or
	// cyclic link handler set.
	ConfigErr = -450

	ServerErr = -500
	// CollaboratorErr indicates an unavailable external collaborator
	// (record store, file system, session store).
	CollaboratorErr = -503
)

var messages = map[int]string{
	OK:              "ok",
	RequestErr:      "Invalid request",
	ParamErr:        "Invalid parameters",
	AccessDenied:    "Access denied",
	NotFound:        "Resource not found",
	ConfigErr:       "Invalid configuration",
	ServerErr:       "Internal server error",
	CollaboratorErr: "Collaborator unavailable",
}

// Text returns the human-readable message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// Register registers a custom error code with its message.
// Registering an existing code overwrites its message.
func Register(code int, message string) {
	messages[code] = message
}

// ToHTTPStatus maps an error code to an HTTP status code.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case RequestErr, ParamErr:
		return http.StatusBadRequest
	case AccessDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case ConfigErr, ServerErr:
		return http.StatusInternalServerError
	case CollaboratorErr:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
