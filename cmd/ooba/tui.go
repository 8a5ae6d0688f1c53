package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/ooba"
	bt "github.com/fwojciec/ooba/bubbletea"
	oobajson "github.com/fwojciec/ooba/json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		sessionPath string
		system      string
		gen         genFlags
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Chat interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := loadOrCreateSession(sessionPath, system)
			if err != nil {
				return err
			}

			m := bt.New(a.client.StreamChat, &session, ooba.DefaultTheme(),
				bt.WithModelName(a.cfg.Model),
				bt.WithOptions(gen.options(cmd.Flags())),
			)
			if _, err := bt.Run(cmd.Context(), m); err != nil {
				return fmt.Errorf("TUI: %w", err)
			}

			if len(session.Messages) == 0 && sessionPath == "" {
				return nil
			}
			path := sessionPath
			if path == "" {
				path = filepath.Join(a.cfg.SessionDir, session.ID+".json")
			}
			if err := oobajson.Save(path, session); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			fmt.Fprintf(a.stderr, "Session saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionPath, "session", "", "session file to resume and save to")
	cmd.Flags().StringVar(&system, "system", "", "system prompt for a new session")
	gen.register(cmd.Flags())
	return cmd
}

// loadOrCreateSession resumes the session at path. A new session is
// started when path is empty or does not exist yet.
func loadOrCreateSession(path, system string) (ooba.Session, error) {
	if path != "" {
		s, err := oobajson.Load(path)
		switch {
		case err == nil:
			if system != "" {
				s.SystemPrompt = system
			}
			return s, nil
		case !errors.Is(err, os.ErrNotExist):
			return ooba.Session{}, fmt.Errorf("load session: %w", err)
		}
	}
	now := time.Now()
	return ooba.Session{
		ID:           uuid.NewString(),
		SystemPrompt: system,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
