// Package resp provides the standardized JSON response envelope of the
// record browsing HTTP API.
//
// Successful responses carry the payload directly; failures carry a business
// code from the ecode package plus a message:
//
//	{
//	  "code": -404,
//	  "message": "Resource not found",
//	  "errors": {...}
//	}
//
// FromError maps the domain error taxonomy (missing records, unavailable
// collaborators, bad parameters) onto status and business codes, so HTTP
// handlers return errors instead of picking codes themselves.
package resp
