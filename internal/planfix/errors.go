package planfix

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category classifies a client failure for the protocol boundary.
// Categories are stable: callers may match on them to decide whether a retry
// with corrected input or a later retry makes sense.
type Category string

const (
	// CategoryConfiguration marks missing or invalid credentials. Fatal;
	// detected before any network call.
	CategoryConfiguration Category = "ConfigurationError"
	// CategoryValidation marks bad caller input, detected before any
	// network call. The caller may retry with corrected input.
	CategoryValidation Category = "ValidationError"
	// CategoryRemoteUnavailable marks network failures and 5xx responses
	// after the retry budget is exhausted. The caller may retry later.
	CategoryRemoteUnavailable Category = "RemoteUnavailable"
	// CategoryRemoteRejected marks 4xx responses other than 404 and 429.
	// The request will never be accepted as-is.
	CategoryRemoteRejected Category = "RemoteRejected"
	// CategoryNotFound marks a 404 for an entity id that does not exist.
	CategoryNotFound Category = "NotFound"
)

// Error is the failure type surfaced by every client operation. Message is
// safe to expose to protocol clients: it never contains credentials, request
// bodies, or wrapped error chains from the transport.
type Error struct {
	Category Category
	Message  string

	// rateLimited marks a 429. The request was never processed, so even a
	// write without an idempotency key may be resubmitted.
	rateLimited bool
	// retryAfter carries the server-provided wait hint, when one was sent.
	retryAfter time.Duration

	err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// NewError builds an Error with the given category and message.
func NewError(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// apiErrorEnvelope is the error body Planfix returns on failed requests:
// {"result": "fail", "code": 123, "error": "..."}.
type apiErrorEnvelope struct {
	Result  string `json:"result"`
	Code    int    `json:"code"`
	Err     string `json:"error"`
	Message string `json:"message"`
}

// remoteMessage extracts a human-readable message from a Planfix error body.
// It falls back to the HTTP status when the body is not the known envelope.
func remoteMessage(body []byte, statusCode int) string {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Result == "fail" && envelope.Err != "" {
			return fmt.Sprintf("API error %d: %s", envelope.Code, envelope.Err)
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Err != "" {
			return envelope.Err
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
