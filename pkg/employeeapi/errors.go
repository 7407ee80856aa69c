package employeeapi

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds, matched with errors.Is.
var (
	ErrConnectivity = errors.New("connectivity error")
	ErrApplication  = errors.New("application error")
	ErrParse        = errors.New("parse error")
)

// ConnectivityError reports a transport failure: DNS, refused connection, timeout.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("request employees: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() []error { return []error{ErrConnectivity, e.Err} }

// ApplicationError reports a non-success HTTP status.
type ApplicationError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ApplicationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("employees endpoint returned %s", e.statusText())
	}
	return fmt.Sprintf("employees endpoint returned %s body: %s", e.statusText(), e.Body)
}

func (e *ApplicationError) Unwrap() error { return ErrApplication }

func (e *ApplicationError) statusText() string {
	if s := strings.TrimSpace(e.Status); s != "" {
		return s
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// ParseError reports a successful response whose body does not decode.
type ParseError struct {
	Err     error
	Snippet string
}

func (e *ParseError) Error() string {
	snippet := e.Snippet
	if snippet == "" {
		snippet = "<empty>"
	}
	return fmt.Sprintf("decode employees response: %v (body: %s)", e.Err, snippet)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// Error class names returned by Kind.
const (
	KindNone         = "none"
	KindConnectivity = "connectivity"
	KindApplication  = "application"
	KindParse        = "parse"
	KindUnknown      = "unknown"
)

// Kind names the error class for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrConnectivity):
		return KindConnectivity
	case errors.Is(err, ErrApplication):
		return KindApplication
	case errors.Is(err, ErrParse):
		return KindParse
	default:
		return KindUnknown
	}
}

// UserMessage renders err as the short text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		connErr  *ConnectivityError
		appErr   *ApplicationError
		parseErr *ParseError
	)
	switch {
	case errors.As(err, &connErr):
		return "Failed: " + diagnostic(connErr.Err)
	case errors.As(err, &appErr):
		return "Error: " + appErr.statusText()
	case errors.As(err, &parseErr):
		return "Error: unexpected response from server"
	default:
		return "Failed: " + diagnostic(err)
	}
}

func diagnostic(err error) string {
	if err == nil {
		return "unknown error"
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return "unknown error"
}
