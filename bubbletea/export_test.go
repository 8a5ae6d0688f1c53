package bubbletea

import "github.com/fwojciec/ooba"

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr MessageBlock) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// SetRunningWithCancel is a test helper that puts the model in a running
// state with a cancel function.
func SetRunningWithCancel(m Model, cancel func()) Model {
	m.running = true
	m.cancel = cancel
	return m
}

// Request returns the request the model would send next.
func Request(m Model) ooba.ChatRequest {
	return m.session.ChatRequest(m.modelName, m.opts)
}
