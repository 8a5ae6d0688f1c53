package ooba

// Options carries generation parameters shared by chat and completion
// requests. The server uses its own defaults when fields are zero/nil.
type Options struct {
	MaxTokens   int      // 0 = server default
	Temperature *float64 // nil = server default
	TopP        *float64 // nil = server default
	Stop        []string // stop sequences
}

// ChatRequest asks the server to continue a conversation.
type ChatRequest struct {
	Model    string // empty = model currently loaded by the server
	Messages []Message
	Options
}

// CompletionRequest asks the server to continue a plain-text prompt.
type CompletionRequest struct {
	Model  string
	Prompt string
	Options
}
