package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind distinguishes the three transport failure classes. A timed-out
// request is reported separately from other network failures.
type ErrorKind string

const (
	KindTimeout ErrorKind = "timeout"
	KindNetwork ErrorKind = "network"
	KindHTTP    ErrorKind = "http-status"
)

// Error is the typed failure returned by the transport layer. For KindHTTP
// it carries the numeric status and a best-effort human message: the
// body-provided message when present, otherwise a generic mapping for
// common statuses.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Kind == KindHTTP {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return string(e.Kind) + ": " + e.Message
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindTimeout
}

// IsStatus reports whether err is an HTTP-status error with the given code.
func IsStatus(err error, status int) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == KindHTTP && te.Status == status
}

// IsUnauthorized reports whether err is a 401-class failure. The transport
// never clears the session itself; the session manager reacts to this.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Your session has expired. Please log in again."
	case status == http.StatusForbidden:
		return "You do not have permission to perform this action."
	case status == http.StatusNotFound:
		return "The requested resource was not found."
	case status == http.StatusTooManyRequests:
		return "Too many requests. Please try again later."
	case status >= 500:
		return "Server error. Please try again later."
	default:
		return fmt.Sprintf("Request failed with status %d", status)
	}
}
