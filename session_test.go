package ooba_test

import (
	"testing"
	"time"

	"github.com/fwojciec/ooba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ChatRequest(t *testing.T) {
	t.Parallel()

	t.Run("prepends system prompt", func(t *testing.T) {
		t.Parallel()
		s := ooba.Session{
			SystemPrompt: "You are helpful.",
			Messages:     []ooba.Message{{Role: ooba.RoleUser, Content: "hi"}},
		}
		req := s.ChatRequest("llama", ooba.Options{MaxTokens: 10})

		require.Len(t, req.Messages, 2)
		assert.Equal(t, ooba.Message{Role: ooba.RoleSystem, Content: "You are helpful."}, req.Messages[0])
		assert.Equal(t, "hi", req.Messages[1].Content)
		assert.Equal(t, "llama", req.Model)
		assert.Equal(t, 10, req.MaxTokens)
		assert.Len(t, s.Messages, 1, "session messages must not change")
	})

	t.Run("no system prompt", func(t *testing.T) {
		t.Parallel()
		s := ooba.Session{Messages: []ooba.Message{{Role: ooba.RoleUser, Content: "hi"}}}
		req := s.ChatRequest("", ooba.Options{})
		require.Len(t, req.Messages, 1)
		assert.Equal(t, ooba.RoleUser, req.Messages[0].Role)
	})
}

func TestSession_Append(t *testing.T) {
	t.Parallel()
	s := ooba.Session{}
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	s.Append(ooba.Message{Role: ooba.RoleUser, Content: "hi", Timestamp: ts})

	require.Len(t, s.Messages, 1)
	assert.Equal(t, ts, s.UpdatedAt)

	s.Append(ooba.Message{Role: ooba.RoleAssistant, Content: "hello"})
	assert.False(t, s.Messages[1].Timestamp.IsZero())
	assert.True(t, s.UpdatedAt.After(ts))
}
