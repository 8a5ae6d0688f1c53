// Package sse decodes server-sent event streams into frames.
//
// The reader is pull-based: each call to Next consumes input only until
// the next complete frame is assembled, so a caller can stop at any point
// without draining the stream.
package sse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxFrameSize bounds a single line of the stream. Longer lines are
// reported as an error instead of being buffered without limit.
const MaxFrameSize = 1 << 20

// ErrLineTooLong is returned when a line exceeds MaxFrameSize.
var ErrLineTooLong = errors.New("sse: line exceeds maximum frame size")

// Frame is one complete event: the data lines between two blank lines.
type Frame struct {
	Event string // value of the last "event:" field, empty if none
	Data  string // "data:" values joined with "\n"
}

// Reader reads Frames from an event stream.
type Reader struct {
	scanner   *bufio.Scanner
	truncated bool
	done      bool
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), MaxFrameSize)
	return &Reader{scanner: s}
}

// Next returns the next complete frame. It returns io.EOF once the input is
// exhausted. A frame still open when the input ends is discarded and
// reported by Truncated instead of being returned.
func (r *Reader) Next() (Frame, error) {
	if r.done {
		return Frame{}, io.EOF
	}

	var event string
	var data strings.Builder
	hasData := false

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if strings.TrimSpace(line) == "" {
			if hasData && strings.TrimSpace(data.String()) != "" {
				return Frame{Event: event, Data: data.String()}, nil
			}
			// Empty segment, keep reading.
			event = ""
			data.Reset()
			hasData = false
			continue
		}

		field, value := parseField(line)
		switch field {
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		case "event":
			event = value
		}
		// Comments (":...") and other fields (id, retry) are ignored.
	}

	r.done = true
	if err := r.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Frame{}, ErrLineTooLong
		}
		return Frame{}, fmt.Errorf("sse: %w", err)
	}
	if hasData && strings.TrimSpace(data.String()) != "" {
		r.truncated = true
	}
	return Frame{}, io.EOF
}

// Truncated reports whether the input ended inside a frame whose
// terminating blank line never arrived. Only meaningful after Next has
// returned io.EOF.
func (r *Reader) Truncated() bool {
	return r.truncated
}

// parseField splits "field: value" per the event-stream format: a single
// leading space of the value is removed, a line without a colon is a field
// with an empty value, and a line starting with a colon is a comment.
func parseField(line string) (field, value string) {
	i := strings.IndexByte(line, ':')
	switch {
	case i == 0:
		return "", ""
	case i < 0:
		return line, ""
	}
	field, value = line[:i], line[i+1:]
	value = strings.TrimPrefix(value, " ")
	return field, value
}
