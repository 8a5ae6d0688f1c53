// Package mock provides test doubles for ooba interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/ooba"
)

// Interface compliance check.
var _ ooba.Client = (*Client)(nil)

// Client is a test double for ooba.Client.
// Set the function fields for the methods you need.
type Client struct {
	ChatFn             func(ctx context.Context, req ooba.ChatRequest) (ooba.ChatResponse, error)
	CompleteFn         func(ctx context.Context, req ooba.CompletionRequest) (ooba.CompletionResponse, error)
	StreamChatFn       func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error)
	StreamCompletionFn func(ctx context.Context, req ooba.CompletionRequest) (ooba.Stream[string], error)
}

// Chat delegates to ChatFn.
func (c *Client) Chat(ctx context.Context, req ooba.ChatRequest) (ooba.ChatResponse, error) {
	return c.ChatFn(ctx, req)
}

// Complete delegates to CompleteFn.
func (c *Client) Complete(ctx context.Context, req ooba.CompletionRequest) (ooba.CompletionResponse, error) {
	return c.CompleteFn(ctx, req)
}

// StreamChat delegates to StreamChatFn.
func (c *Client) StreamChat(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
	return c.StreamChatFn(ctx, req)
}

// StreamCompletion delegates to StreamCompletionFn.
func (c *Client) StreamCompletion(ctx context.Context, req ooba.CompletionRequest) (ooba.Stream[string], error) {
	return c.StreamCompletionFn(ctx, req)
}
