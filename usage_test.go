package ooba_test

import (
	"testing"

	"github.com/fwojciec/ooba"
	"github.com/stretchr/testify/assert"
)

func TestUsage_Total(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ooba.Usage{}.Total())
	assert.Equal(t, 15, ooba.Usage{PromptTokens: 10, CompletionTokens: 5}.Total())
}
