package bubbletea_test

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ooba"
	bt "github.com/fwojciec/ooba/bubbletea"
	"github.com/fwojciec/ooba/mock"
	"github.com/stretchr/testify/require"
)

// replying returns a StreamFunc whose streams yield parts, then end.
func replying(parts ...string) bt.StreamFunc {
	return func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
		i := 0
		return &mock.Stream[ooba.ChatFragment]{
			NextFn: func() (ooba.ChatFragment, error) {
				if err := ctx.Err(); err != nil {
					return ooba.ChatFragment{}, err
				}
				if i == len(parts) {
					return ooba.ChatFragment{}, io.EOF
				}
				i++
				return ooba.ChatFragment{Content: parts[i-1]}, nil
			},
			FinishReasonFn: func() string { return "stop" },
		}, nil
	}
}

// hanging returns a StreamFunc whose streams block until canceled.
func hanging() bt.StreamFunc {
	return func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
		return &mock.Stream[ooba.ChatFragment]{
			NextFn: func() (ooba.ChatFragment, error) {
				<-ctx.Done()
				return ooba.ChatFragment{}, ctx.Err()
			},
			FinishReasonFn: func() string { return "" },
		}, nil
	}
}

// failing returns a StreamFunc that rejects every request with err.
func failing(err error) bt.StreamFunc {
	return func(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
		return nil, err
	}
}

var nopStream = replying()

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, open bt.StreamFunc) bt.Model {
	t.Helper()
	return initModelWithSize(t, open, 80, 24)
}

func initModelWithSize(t *testing.T, open bt.StreamFunc, width, height int) bt.Model {
	t.Helper()
	m := bt.New(open, &ooba.Session{}, ooba.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// drive feeds msg to m and keeps running the returned commands, feeding
// their messages back, until the reply is done or nothing is left to run.
func drive(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	for {
		updated, cmd := m.Update(msg)
		var ok bool
		m, ok = updated.(bt.Model)
		require.True(t, ok)
		if _, done := msg.(bt.StreamDoneMsg); done || cmd == nil {
			return m
		}
		msg = cmd()
	}
}
