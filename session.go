package ooba

import "time"

// Session represents a chat conversation kept across calls.
type Session struct {
	ID           string
	Messages     []Message
	SystemPrompt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ChatRequest builds a request for the next assistant turn. The system
// prompt, when set, is sent as a leading system message; it is not stored
// in Messages.
func (s *Session) ChatRequest(model string, opts Options) ChatRequest {
	msgs := make([]Message, 0, len(s.Messages)+1)
	if s.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: s.SystemPrompt})
	}
	msgs = append(msgs, s.Messages...)
	return ChatRequest{Model: model, Messages: msgs, Options: opts}
}

// Append adds a message and bumps UpdatedAt.
func (s *Session) Append(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = msg.Timestamp
}
