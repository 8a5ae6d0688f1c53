package ooba

import "time"

// ChatResponse is the result of a non-streaming chat call.
type ChatResponse struct {
	ID           string
	Model        string
	Created      time.Time
	Message      Message
	FinishReason string
	Usage        Usage
}

// CompletionResponse is the result of a non-streaming completion call.
type CompletionResponse struct {
	ID           string
	Model        string
	Created      time.Time
	Text         string
	FinishReason string
	Usage        Usage
}
