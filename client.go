// Package ooba is a client for local text-generation servers that expose an
// OpenAI-compatible HTTP API, such as text-generation-webui.
//
// The root package holds the domain types. Implementations live in
// sub-packages named after the protocol or dependency they wrap: package
// openai talks HTTP to the server, package sse decodes event streams.
package ooba

import "context"

// Client talks to a text-generation server.
//
// StreamChat and StreamCompletion return an error without a Stream when
// the server rejects the request, so a rejected call never produces
// fragments. Request values are passed by value; implementations must not
// append to the caller's slices.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	StreamChat(ctx context.Context, req ChatRequest) (Stream[ChatFragment], error)
	StreamCompletion(ctx context.Context, req CompletionRequest) (Stream[string], error)
}
