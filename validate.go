package ooba

import (
	"fmt"
	"strings"
)

// Validate checks universal constraints on ChatRequest.
func (r ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("at least one message is required: %w", ErrValidation)
	}
	for i, m := range r.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d: unknown role %q: %w", i, m.Role, ErrValidation)
		}
	}
	return r.Options.Validate()
}

// Validate checks universal constraints on CompletionRequest.
func (r CompletionRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty: %w", ErrValidation)
	}
	return r.Options.Validate()
}

// Validate checks the generation parameters.
func (o Options) Validate() error {
	if o.Temperature != nil {
		if *o.Temperature < 0 || *o.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *o.Temperature, ErrValidation)
		}
	}
	if o.TopP != nil {
		if *o.TopP < 0 || *o.TopP > 1 {
			return fmt.Errorf("top_p must be in [0, 1], got %g: %w", *o.TopP, ErrValidation)
		}
	}
	if o.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", o.MaxTokens, ErrValidation)
	}
	for i, s := range o.Stop {
		if s == "" {
			return fmt.Errorf("stop sequence %d is empty: %w", i, ErrValidation)
		}
	}
	return nil
}
