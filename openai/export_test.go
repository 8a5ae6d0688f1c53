package openai

import "github.com/fwojciec/ooba"

// DecodeChat exposes decodeChat for testing. It returns the fragment and
// whether it would be handed to the caller.
func DecodeChat(payload string) (ooba.ChatFragment, bool, error) {
	d, err := decodeChat(payload)
	return d.value, d.emit, err
}

// DecodeCompletion exposes decodeCompletion for testing.
func DecodeCompletion(payload string) (string, bool, error) {
	d, err := decodeCompletion(payload)
	return d.value, d.emit, err
}
