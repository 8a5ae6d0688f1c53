package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_StreamChat(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamChatFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream[ooba.ChatFragment]
		c := mock.Client{
			StreamChatFn: func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
				assert.Equal(t, "llama", req.Model)
				return &s, nil
			},
		}
		got, err := c.StreamChat(context.Background(), ooba.ChatRequest{Model: "llama"})
		require.NoError(t, err)
		assert.Equal(t, &s, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := &ooba.Error{Kind: ooba.KindRequestRejected, StatusCode: 500}
		c := mock.Client{
			StreamChatFn: func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
				return nil, wantErr
			},
		}
		_, err := c.StreamChat(context.Background(), ooba.ChatRequest{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when StreamChatFn not set", func(t *testing.T) {
		t.Parallel()
		c := mock.Client{}
		assert.Panics(t, func() {
			_, _ = c.StreamChat(context.Background(), ooba.ChatRequest{})
		})
	})
}

func TestClient_StreamCompletion(t *testing.T) {
	t.Parallel()
	var s mock.Stream[string]
	c := mock.Client{
		StreamCompletionFn: func(ctx context.Context, req ooba.CompletionRequest) (ooba.Stream[string], error) {
			assert.Equal(t, []string{"."}, req.Stop)
			return &s, nil
		},
	}
	got, err := c.StreamCompletion(context.Background(), ooba.CompletionRequest{Options: ooba.Options{Stop: []string{"."}}})
	require.NoError(t, err)
	assert.Equal(t, &s, got)
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()
	want := ooba.ChatResponse{Message: ooba.Message{Role: ooba.RoleAssistant, Content: "hi"}}
	c := mock.Client{
		ChatFn: func(ctx context.Context, req ooba.ChatRequest) (ooba.ChatResponse, error) {
			return want, nil
		},
	}
	got, err := c.Chat(context.Background(), ooba.ChatRequest{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_Complete(t *testing.T) {
	t.Parallel()
	wantErr := errors.New("boom")
	c := mock.Client{
		CompleteFn: func(ctx context.Context, req ooba.CompletionRequest) (ooba.CompletionResponse, error) {
			return ooba.CompletionResponse{}, wantErr
		},
	}
	_, err := c.Complete(context.Background(), ooba.CompletionRequest{})
	assert.ErrorIs(t, err, wantErr)

	assert.Panics(t, func() {
		_, _ = (&mock.Client{}).Complete(context.Background(), ooba.CompletionRequest{})
	})
}
