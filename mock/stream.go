package mock

import "github.com/fwojciec/ooba"

// Interface compliance checks.
var (
	_ ooba.Stream[ooba.ChatFragment] = (*Stream[ooba.ChatFragment])(nil)
	_ ooba.Stream[string]            = (*Stream[string])(nil)
)

// Stream is a test double for ooba.Stream.
// Set the function fields for the methods you need. NextFn, CountFn and
// FinishReasonFn panic when nil to catch missing setup. CloseFn and StateFn
// are nil-safe (no-op and StreamStateNew) because test code commonly calls
// defer stream.Close().
type Stream[T any] struct {
	NextFn         func() (T, error)
	StateFn        func() ooba.StreamState
	CountFn        func() int
	FinishReasonFn func() string
	CloseFn        func() error
}

// Next delegates to NextFn.
func (s *Stream[T]) Next() (T, error) {
	return s.NextFn()
}

// State delegates to StateFn. Returns StreamStateNew when StateFn is nil.
func (s *Stream[T]) State() ooba.StreamState {
	if s.StateFn == nil {
		return ooba.StreamStateNew
	}
	return s.StateFn()
}

// Count delegates to CountFn.
func (s *Stream[T]) Count() int {
	return s.CountFn()
}

// FinishReason delegates to FinishReasonFn.
func (s *Stream[T]) FinishReason() string {
	return s.FinishReasonFn()
}

// Close delegates to CloseFn. Returns nil when CloseFn is not set.
func (s *Stream[T]) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
