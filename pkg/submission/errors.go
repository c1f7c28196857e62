package submission

import (
	"errors"
	"fmt"
)

// Kind classifies a failed submission.
type Kind string

const (
	// KindNetwork means the server could not be reached.
	KindNetwork Kind = "network_error"
	// KindUnauthorized is a 401 response.
	KindUnauthorized Kind = "unauthorized"
	// KindServer is a 500 response.
	KindServer Kind = "server_error"
	// KindRequestFailed covers every other non-success outcome.
	KindRequestFailed Kind = "request_failed"
)

var (
	// ErrEndpointRequired is returned when no endpoint URL is configured.
	ErrEndpointRequired = errors.New("submission: endpoint is required")
	// ErrDecode wraps a 2xx response whose body is not JSON.
	ErrDecode = errors.New("submission: decode response")
)

// Error is returned by Client.Send for every failed submission. Message is
// the user-facing text; Err keeps the underlying cause when there is one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submission: %s: %v", e.Kind, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("submission: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("submission: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind carried by err, or "" when err is not a
// submission Error.
func KindOf(err error) Kind {
	var subErr *Error
	if errors.As(err, &subErr) {
		return subErr.Kind
	}
	return ""
}

// MessageOf returns the user-facing message for err. Errors that did not
// come from Send fall back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var subErr *Error
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	return err.Error()
}

func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "Network Error: unable to reach the server. Please check your connection and try again.",
		Err:     err,
	}
}

func unauthorizedError() *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Status:  401,
		Message: "Unauthorized: you are not allowed to submit this form.",
	}
}

func serverError() *Error {
	return &Error{
		Kind:    KindServer,
		Status:  500,
		Message: "Server Error: the server failed to process the request. Please try again later.",
	}
}

func requestFailed(status int, statusText, body string) *Error {
	msg := "Request Failed: " + body
	if body == "" {
		msg = fmt.Sprintf("Request Failed: status %d %s", status, statusText)
	}
	return &Error{
		Kind:    KindRequestFailed,
		Status:  status,
		Message: msg,
	}
}
