// Package openai implements [ooba.Client] for servers exposing the
// OpenAI-compatible chat and completion endpoints, such as the API of
// text-generation-webui.
//
// Streaming calls return a pull-based [ooba.Stream]: every Next call reads
// event-stream frames from the response body only until one of them
// yields a fragment, so output is never buffered beyond a single frame.
package openai

import "encoding/json"

const (
	defaultBaseURL  = "http://127.0.0.1:5000"
	chatPath        = "/v1/chat/completions"
	completionsPath = "/v1/completions"

	// sentinel is the payload that ends a stream.
	sentinel = "[DONE]"

	// errorEvent is the event name some servers use for in-stream errors.
	errorEvent = "error"
)

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiChatRequest is the JSON body sent to /v1/chat/completions.
type apiChatRequest struct {
	Model       string       `json:"model,omitempty"`
	Messages    []apiMessage `json:"messages"`
	Stream      bool         `json:"stream"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature *float64     `json:"temperature,omitempty"`
	TopP        *float64     `json:"top_p,omitempty"`
	Stop        []string     `json:"stop,omitempty"`
}

// apiCompletionRequest is the JSON body sent to /v1/completions.
type apiCompletionRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	Stream      bool     `json:"stream"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Streaming response types. Pointer fields distinguish an absent field
// from its zero value; required fields are checked by the decoder.

type chatChunk struct {
	ID      string            `json:"id"`
	Choices []chatChunkChoice `json:"choices"`
	Usage   *apiUsage         `json:"usage"`
	Error   json.RawMessage   `json:"error"`
}

type chatChunkChoice struct {
	Index        int        `json:"index"`
	Delta        *chatDelta `json:"delta"`
	FinishReason *string    `json:"finish_reason"`
}

type chatDelta struct {
	Role    *string `json:"role"`
	Content *string `json:"content"`
}

type completionChunk struct {
	ID      string                  `json:"id"`
	Choices []completionChunkChoice `json:"choices"`
	Usage   *apiUsage               `json:"usage"`
	Error   json.RawMessage         `json:"error"`
}

type completionChunkChoice struct {
	Index        int     `json:"index"`
	Text         *string `json:"text"`
	FinishReason *string `json:"finish_reason"`
}

// Non-streaming response types.

type apiChatResponse struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Model   string          `json:"model"`
	Choices []apiChatChoice `json:"choices"`
	Usage   *apiUsage       `json:"usage"`
}

type apiChatChoice struct {
	Index        int         `json:"index"`
	Message      *apiMessage `json:"message"`
	FinishReason *string     `json:"finish_reason"`
}

type apiCompletionResponse struct {
	ID      string                  `json:"id"`
	Object  string                  `json:"object"`
	Created int64                   `json:"created"`
	Model   string                  `json:"model"`
	Choices []completionChunkChoice `json:"choices"`
	Usage   *apiUsage               `json:"usage"`
}

// apiErrorDetail is the error object OpenAI-compatible servers return,
// either as the whole body or nested under "error".
type apiErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
