package ooba

import (
	"io"
	"iter"
)

// StreamState indicates the current state of a Stream.
type StreamState int

const (
	StreamStateNew       StreamState = iota // Before Next() is ever called.
	StreamStateStreaming                    // Mid-stream, receiving fragments.
	StreamStateComplete                     // Next() returned io.EOF.
	StreamStateError                        // Next() returned an *Error.
	StreamStateCanceled                     // The call's context was canceled.
	StreamStateClosed                       // Close() called before terminal state.
)

// String returns a lowercase name for the state.
func (s StreamState) String() string {
	switch s {
	case StreamStateNew:
		return "new"
	case StreamStateStreaming:
		return "streaming"
	case StreamStateComplete:
		return "complete"
	case StreamStateError:
		return "error"
	case StreamStateCanceled:
		return "canceled"
	case StreamStateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further fragments can be produced.
func (s StreamState) Terminal() bool {
	return s >= StreamStateComplete
}

// Stream is a pull-based sequence of fragments for a single streaming call.
// Each Next() reads from the connection only as far as needed to produce
// one fragment. Cancellation flows through the context passed when the
// stream was opened.
//
// Next() returns:
//   - a fragment and nil error while the server is producing output.
//   - io.EOF once the server signalled the end of the stream.
//   - an *Error when the call failed (malformed frame, server error,
//     transport failure). The same error is returned on every later call.
//   - context.Canceled when the caller canceled the call. This is not an
//     *Error.
//   - ErrStreamClosed after Close() was called before a terminal state.
//
// Fragments already returned stay valid when a later Next() fails.
type Stream[T any] interface {
	Next() (T, error)
	State() StreamState
	// Count returns the number of fragments returned by Next so far.
	Count() int
	// FinishReason returns the last finish_reason reported by the server,
	// including reasons carried by frames that produced no fragment.
	FinishReason() string
	Close() error
}

// All adapts s into a range-over-func sequence. Iteration stops after the
// first error, which is yielded once with a zero fragment; io.EOF ends the
// sequence without being yielded. The stream is closed when iteration ends,
// including when the loop body breaks early.
func All[T any](s Stream[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer s.Close()
		for {
			v, err := s.Next()
			if err != nil {
				if err != io.EOF {
					var zero T
					yield(zero, err)
				}
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
