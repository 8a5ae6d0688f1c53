package openai

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/sse"
	"github.com/sirupsen/logrus"
)

// stream implements [ooba.Stream] over an event-stream response body.
// It owns the body and the frame reader for the duration of one call.
type stream[T any] struct {
	ctx    context.Context
	body   io.ReadCloser
	reader *sse.Reader
	decode decodeFunc[T]
	log    logrus.FieldLogger

	state        ooba.StreamState
	count        int
	frames       int
	finishReason string
	err          error // terminal error, if any
	bodyClosed   bool
}

// Interface compliance checks.
var (
	_ ooba.Stream[ooba.ChatFragment] = (*stream[ooba.ChatFragment])(nil)
	_ ooba.Stream[string]            = (*stream[string])(nil)
)

func newStream[T any](ctx context.Context, body io.ReadCloser, decode decodeFunc[T], log logrus.FieldLogger) *stream[T] {
	return &stream[T]{
		ctx:    ctx,
		body:   body,
		reader: sse.NewReader(body),
		decode: decode,
		log:    log,
		state:  ooba.StreamStateNew,
	}
}

// Next returns the next fragment. Returns io.EOF when the stream completes
// normally.
func (s *stream[T]) Next() (T, error) {
	var zero T
	switch s.state {
	case ooba.StreamStateComplete:
		return zero, io.EOF
	case ooba.StreamStateError, ooba.StreamStateCanceled:
		return zero, s.err
	case ooba.StreamStateClosed:
		return zero, ooba.ErrStreamClosed
	}

	for {
		// Frames may already be buffered; cancellation must still stop
		// emission before the next read.
		if err := s.ctx.Err(); err != nil {
			s.terminate(err)
			return zero, s.err
		}

		frame, err := s.reader.Next()
		if err == io.EOF {
			s.complete()
			return zero, io.EOF
		}
		if err != nil {
			s.terminate(err)
			return zero, s.err
		}

		s.state = ooba.StreamStateStreaming
		s.frames++

		if strings.TrimSpace(frame.Data) == sentinel {
			s.complete()
			return zero, io.EOF
		}
		if frame.Event == errorEvent {
			s.terminate(serverError(frame.Data, errorMessage([]byte(frame.Data))))
			return zero, s.err
		}

		d, err := s.decode(frame.Data)
		if err != nil {
			s.terminate(err)
			return zero, s.err
		}
		if d.finishReason != "" {
			s.finishReason = d.finishReason
		}
		if !d.emit {
			continue
		}
		s.count++
		return d.value, nil
	}
}

// State returns the current stream state.
func (s *stream[T]) State() ooba.StreamState {
	return s.state
}

// Count returns the number of fragments returned so far.
func (s *stream[T]) Count() int {
	return s.count
}

// FinishReason returns the last finish reason seen.
func (s *stream[T]) FinishReason() string {
	return s.finishReason
}

// Close closes the underlying HTTP response body. Closing mid-stream drops
// the connection, which tells the server to stop generating.
func (s *stream[T]) Close() error {
	if !s.state.Terminal() {
		s.state = ooba.StreamStateClosed
	}
	return s.closeBody()
}

func (s *stream[T]) closeBody() error {
	if s.bodyClosed {
		return nil
	}
	s.bodyClosed = true
	return s.body.Close()
}

func (s *stream[T]) complete() {
	s.state = ooba.StreamStateComplete
	if s.reader.Truncated() {
		s.log.WithField("fragments", s.count).Warn("stream ended inside a frame; discarded the incomplete frame")
	}
	s.log.WithFields(logrus.Fields{
		"fragments":     s.count,
		"frames":        s.frames,
		"finish_reason": s.finishReason,
	}).Debug("stream complete")
	_ = s.closeBody()
}

// terminate records a terminal error and sets the appropriate state.
func (s *stream[T]) terminate(err error) {
	s.err = classifyTransport(s.ctx, err)
	var oe *ooba.Error
	if !errors.As(s.err, &oe) {
		s.state = ooba.StreamStateCanceled
		s.log.WithField("fragments", s.count).Debug("stream canceled")
	} else {
		s.state = ooba.StreamStateError
		s.log.WithError(s.err).WithField("fragments", s.count).Debug("stream failed")
	}
	_ = s.closeBody()
}
