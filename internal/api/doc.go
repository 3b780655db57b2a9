// Package api provides the HTTP client for the CareerLog backend.
//
// # Overview
//
// Every endpoint the backend exposes is wrapped by a typed method on Client:
// auth (login/register), users, jobs CRUD, alerts, analytics, and resume
// downloads. All of them funnel through a single request core that attaches
// the bearer token, encodes the body, and interprets the response envelope.
//
// # Response Envelope
//
// The backend wraps every JSON response in a fixed envelope:
//
//	{ "success": bool, "data": <T> | null, "error": { "code", "message" } | null }
//
// Exactly one of data/error is meaningful, gated by success. Error responses
// that travel through the backend's HTTP exception path arrive nested as
// {"detail": <envelope>}; exactly one such layer is unwrapped before the
// envelope is read. The envelope is authoritative; HTTP status codes are
// informational, with the single exception of 401 (see below).
//
// # Authentication
//
// The client reads the bearer token fresh from its TokenSource on every
// request; it never caches or refreshes. No token means an unauthenticated
// request. When the backend answers 401 the client clears the token source
// and fires the OnUnauthorized hook, then returns the error as usual. The
// hook is a signal for the composition root; the client itself knows
// nothing about views or navigation.
//
// # Failure Classes
//
// Callers see two distinct failure shapes:
//
//   - *Error: the backend rejected the request (or the body was not valid
//     JSON, code INVALID_RESPONSE). Carries the backend's code and verbatim
//     message plus the HTTP status.
//   - plain wrapped errors: the transport failed (connection refused,
//     timeout, DNS). Never converted to *Error.
//
// Distinguish them with errors.As. There are no retries anywhere: one round
// trip per call, fail fast.
//
// # Request Bodies
//
// JSON is the default encoding. Job drafts that attach a resume file switch
// to multipart form data via Form; the request core passes a Form through
// untouched and the boundary content type comes from the form itself.
//
// # Concurrency
//
// Client is safe for concurrent use. Requests are independent: no
// deduplication, no ordering guarantees between in-flight calls, no
// cancellation beyond the caller's context.
package api
