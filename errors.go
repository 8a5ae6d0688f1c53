package ooba

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates Next() was called on a stream closed by the caller.
	ErrStreamClosed = errors.New("stream closed")
)

// ErrorKind classifies why a call failed.
type ErrorKind int

const (
	// KindRequestRejected: the server answered with a non-success status
	// before any output was produced.
	KindRequestRejected ErrorKind = iota + 1
	// KindMalformedFrame: a response payload did not match the expected shape.
	KindMalformedFrame
	// KindTransport: the connection failed, timed out, or broke mid-stream.
	KindTransport
	// KindServer: the server reported an error inside the event stream.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequestRejected:
		return "request rejected"
	case KindMalformedFrame:
		return "malformed frame"
	case KindTransport:
		return "transport failure"
	case KindServer:
		return "server error"
	default:
		return "unknown error"
	}
}

// Error is the single error type returned for failed calls, whatever
// their origin. Use errors.As to inspect it. Cancellation by the caller is
// never reported as an *Error.
type Error struct {
	Kind ErrorKind

	// StatusCode and Body are set for KindRequestRejected. Body is a
	// truncated excerpt of the response body.
	StatusCode int
	Body       string

	// Payload is a truncated excerpt of the offending frame for
	// KindMalformedFrame and KindServer.
	Payload string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "ooba: " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, &ooba.Error{Kind: ooba.KindTransport}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ErrorKindOf returns the Kind of the *Error in err's chain, or 0 if there is none.
func ErrorKindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
