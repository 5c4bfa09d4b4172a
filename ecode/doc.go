// Package ecode defines standardized error codes for the record browsing
// backend and provides utilities for code to message and HTTP status mapping.
//
// Error codes follow a standardized numbering scheme:
//   - 0: Success (OK)
//   - -400 to -499: Request / configuration errors
//   - -500+: Server and collaborator errors
//
// Retrieve human-readable error messages:
//
//	message := ecode.Text(ecode.ParamErr)
//	// Returns: "Invalid parameters"
//
// Error codes can be mapped to appropriate HTTP status codes:
//
//	httpStatus := ecode.ToHTTPStatus(ecode.NotFound)
//	// Returns: 404
package ecode
