package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/sse"
	"github.com/mattn/go-runewidth"
)

const (
	// excerptWidth bounds the body and payload excerpts kept on errors,
	// in terminal display columns.
	excerptWidth = 512

	// maxErrorBody bounds how much of a rejected response is read.
	maxErrorBody = 64 << 10
)

// excerpt returns s trimmed and truncated for inclusion in an error.
func excerpt(s string) string {
	return runewidth.Truncate(strings.TrimSpace(s), excerptWidth, "...")
}

// classifyResponse turns a non-success response into a request-rejected
// error. It reads and closes the body.
func classifyResponse(resp *http.Response) *ooba.Error {
	defer resp.Body.Close()
	e := &ooba.Error{
		Kind:       ooba.KindRequestRejected,
		StatusCode: resp.StatusCode,
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		e.Message = "failed to read body"
		e.Err = err
		return e
	}
	e.Body = excerpt(string(body))
	e.Message = errorMessage(body)
	if e.Message == "" {
		e.Message = e.Body
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}

// classifyTransport maps a failure to reach or read from the server. A
// canceled context is returned as is: cancellation is not a failure.
func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var oe *ooba.Error
	if errors.As(err, &oe) {
		return oe
	}
	if errors.Is(err, sse.ErrLineTooLong) {
		return &ooba.Error{Kind: ooba.KindMalformedFrame, Message: "frame too large", Err: err}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ooba.Error{Kind: ooba.KindTransport, Message: "timeout", Err: ctx.Err()}
	}
	return &ooba.Error{Kind: ooba.KindTransport, Err: err}
}

// malformedFrame reports a payload that does not match the expected shape.
func malformedFrame(payload, msg string, err error) *ooba.Error {
	return &ooba.Error{
		Kind:    ooba.KindMalformedFrame,
		Payload: excerpt(payload),
		Message: msg,
		Err:     err,
	}
}

// serverError reports an error the server delivered inside the stream.
func serverError(payload, msg string) *ooba.Error {
	if msg == "" {
		msg = excerpt(payload)
	}
	return &ooba.Error{
		Kind:    ooba.KindServer,
		Payload: excerpt(payload),
		Message: msg,
	}
}

// errorMessage extracts a message from the JSON error bodies servers
// commonly return: {"error":{"message":...}}, {"error":"..."},
// {"detail":...} and {"message":...}. It returns "" for anything else.
func errorMessage(body []byte) string {
	var v struct {
		Error   json.RawMessage `json:"error"`
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	if msg := errorDetailMessage(v.Error); msg != "" {
		return msg
	}
	if msg := errorDetailMessage(v.Detail); msg != "" {
		return msg
	}
	return v.Message
}

// errorDetailMessage reads an error value that is either a string or an
// object with a message.
func errorDetailMessage(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var d apiErrorDetail
	if err := json.Unmarshal(raw, &d); err == nil {
		if d.Type != "" && d.Message != "" {
			return fmt.Sprintf("%s: %s", d.Type, d.Message)
		}
		if d.Message != "" {
			return d.Message
		}
	}
	return excerpt(string(raw))
}

// hasError reports whether raw holds an error value.
func hasError(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
