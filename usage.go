package ooba

// Usage tracks token consumption as reported by the server.
// Servers that do not report usage leave it zero.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Total returns PromptTokens + CompletionTokens.
func (u Usage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}
