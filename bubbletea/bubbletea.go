// Package bubbletea provides a Bubble Tea chat TUI on top of an ooba stream.
package bubbletea

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ooba"
)

// StreamFunc opens a chat stream for req. It is usually the StreamChat
// method of an ooba.Client.
type StreamFunc func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits and returns the final model. Canceling ctx quits the
// program.
func Run(ctx context.Context, m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, err
}

// FragmentMsg delivers one fragment pulled from the active stream.
type FragmentMsg struct {
	Fragment ooba.ChatFragment
}

// StreamDoneMsg signals that the active stream reached a terminal state.
// Err is nil when the server finished the response.
type StreamDoneMsg struct {
	Err          error
	FinishReason string
}

// streamOpenedMsg carries a stream whose request the server accepted.
type streamOpenedMsg struct {
	stream ooba.Stream[ooba.ChatFragment]
}

// openStream opens a stream in the background.
func openStream(ctx context.Context, open StreamFunc, req ooba.ChatRequest) tea.Cmd {
	return func() tea.Msg {
		s, err := open(ctx, req)
		if err != nil {
			return StreamDoneMsg{Err: err}
		}
		return streamOpenedMsg{stream: s}
	}
}

// nextFragment pulls exactly one fragment from s. Reading happens in the
// command goroutine, so a slow server never blocks rendering.
func nextFragment(s ooba.Stream[ooba.ChatFragment]) tea.Cmd {
	return func() tea.Msg {
		frag, err := s.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return StreamDoneMsg{Err: err, FinishReason: s.FinishReason()}
		}
		return FragmentMsg{Fragment: frag}
	}
}
