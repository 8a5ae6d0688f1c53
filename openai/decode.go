package openai

import (
	"encoding/json"

	"github.com/fwojciec/ooba"
)

// decoded is the result of decoding one frame payload.
type decoded[T any] struct {
	value        T
	emit         bool   // false when the frame carries nothing for the caller
	finishReason string // finish_reason of the first choice, if any
}

// decodeFunc decodes a frame payload. Errors are always *ooba.Error.
type decodeFunc[T any] func(payload string) (decoded[T], error)

// decodeChat decodes a chat-delta payload. Only the first choice is used.
// Deltas without content, such as the one opening the assistant turn, are
// decoded but not emitted.
func decodeChat(payload string) (decoded[ooba.ChatFragment], error) {
	var chunk chatChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return decoded[ooba.ChatFragment]{}, malformedFrame(payload, "invalid chat chunk", err)
	}
	if hasError(chunk.Error) {
		return decoded[ooba.ChatFragment]{}, serverError(payload, errorDetailMessage(chunk.Error))
	}
	if chunk.Choices == nil {
		return decoded[ooba.ChatFragment]{}, malformedFrame(payload, "chat chunk has no choices", nil)
	}
	if len(chunk.Choices) == 0 {
		// Usage-only trailer.
		return decoded[ooba.ChatFragment]{}, nil
	}

	choice := chunk.Choices[0]
	if choice.Delta == nil {
		return decoded[ooba.ChatFragment]{}, malformedFrame(payload, "chat choice has no delta", nil)
	}

	var frag ooba.ChatFragment
	if choice.Delta.Role != nil {
		frag.Role = ooba.Role(*choice.Delta.Role)
	}
	if choice.Delta.Content != nil {
		frag.Content = *choice.Delta.Content
	}
	if choice.FinishReason != nil {
		frag.FinishReason = *choice.FinishReason
	}
	return decoded[ooba.ChatFragment]{
		value:        frag,
		emit:         frag.Content != "",
		finishReason: frag.FinishReason,
	}, nil
}

// decodeCompletion decodes a completion-token payload. Every token is
// emitted, including empty ones, so the caller sees exactly the server's
// sequence of text values.
func decodeCompletion(payload string) (decoded[string], error) {
	var chunk completionChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return decoded[string]{}, malformedFrame(payload, "invalid completion chunk", err)
	}
	if hasError(chunk.Error) {
		return decoded[string]{}, serverError(payload, errorDetailMessage(chunk.Error))
	}
	if chunk.Choices == nil {
		return decoded[string]{}, malformedFrame(payload, "completion chunk has no choices", nil)
	}
	if len(chunk.Choices) == 0 {
		return decoded[string]{}, nil
	}

	choice := chunk.Choices[0]
	if choice.Text == nil {
		return decoded[string]{}, malformedFrame(payload, "completion choice has no text", nil)
	}
	d := decoded[string]{value: *choice.Text, emit: true}
	if choice.FinishReason != nil {
		d.finishReason = *choice.FinishReason
	}
	return d, nil
}
