// Package apierr converts heterogeneous transport and server failures into a
// single normalized error shape. No raw *http.Response or transport error
// crosses the store boundary; every call site funnels failures through here.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors for the normalized failure classes. Wrapped by *Error, so
// callers can match with errors.Is.
var (
	// ErrUnreachable means no response reached the server at all.
	ErrUnreachable = errors.New("cannot reach server")
	// ErrUnauthorized covers HTTP 401 and 403.
	ErrUnauthorized = errors.New("unauthorized or session expired")
	// ErrNotFound covers HTTP 404.
	ErrNotFound = errors.New("resource not found")
)

const genericMessage = "unexpected error"

// Error is the one error type surfaced to presentation code.
type Error struct {
	// Status is the HTTP status code, or 0 for transport failures.
	Status int
	// Message is the human-readable normalized message. For a 400 with a
	// server-supplied message it is that message verbatim.
	Message string

	kind error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the failure-class sentinel for errors.Is matching.
func (e *Error) Unwrap() error { return e.kind }

// serverBody is the union of the two error envelopes the backend emits:
// {"error": "..."} from the auth controllers and {"message": "..."} from the
// framework's default handler.
type serverBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FromTransport normalizes a failure where no HTTP response was received.
func FromTransport(err error) *Error {
	return &Error{
		Status:  0,
		Message: fmt.Sprintf("%s: %v", ErrUnreachable.Error(), err),
		kind:    ErrUnreachable,
	}
}

// FromResponse normalizes a non-2xx HTTP response. It consumes the body.
func FromResponse(resp *http.Response) *Error {
	msg := readServerMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Status: resp.StatusCode, Message: ErrUnauthorized.Error(), kind: ErrUnauthorized}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Status: resp.StatusCode, Message: ErrNotFound.Error(), kind: ErrNotFound}
	case resp.StatusCode == http.StatusBadRequest && msg != "":
		// Business-rule rejection: the server message passes through verbatim.
		return &Error{Status: resp.StatusCode, Message: msg}
	default:
		if msg == "" {
			msg = genericMessage
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}
}

// Validation wraps a client-side precondition failure that was caught before
// any network call was attempted.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// IsUnauthorized reports whether err is a normalized 401/403.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsNotFound reports whether err is a normalized 404.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnreachable reports whether err is a normalized transport failure.
func IsUnreachable(err error) bool { return errors.Is(err, ErrUnreachable) }

func readServerMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(body) == 0 {
		return ""
	}
	var sb serverBody
	if err := json.Unmarshal(body, &sb); err != nil {
		return ""
	}
	if sb.Error != "" {
		return sb.Error
	}
	return sb.Message
}
