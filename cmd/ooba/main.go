// Command ooba talks to a local text-generation server through its
// OpenAI-compatible API.
//
// Usage:
//
//	ooba chat [prompt]        send one chat message and stream the reply
//	ooba complete [prompt]    continue a plain-text prompt
//	ooba tui                  interactive chat
//
// Settings come from flags, OOBA_* environment variables (OOBA_BASE_URL,
// OOBA_API_KEY, OOBA_MODEL) and an ooba.yaml config file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/openai"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode reports err on w and returns the process exit status.
func exitCode(err error, w io.Writer) int {
	if errors.Is(err, context.Canceled) {
		return 130
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	fmt.Fprintf(w, "%s %v\n", style.Render("ooba:"), err)
	return 1
}

// app carries what every subcommand needs once configuration is resolved.
type app struct {
	cfg    config
	client ooba.Client
	log    *logrus.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	v := viper.New()
	var configPath string

	root := &cobra.Command{
		Use:           "ooba",
		Short:         "Client for a local OpenAI-compatible text-generation server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(stderr, cfg.Verbose)
			a.client = openai.New(
				openai.WithBaseURL(cfg.BaseURL),
				openai.WithAPIKey(cfg.APIKey),
				openai.WithModel(cfg.Model),
				openai.WithLogger(a.log),
			)
			a.log.WithField("base_url", cfg.BaseURL).Debug("configured client")
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default: ./ooba.yaml, then the user config dir)")
	pf.String("base-url", defaultBaseURL, "server base URL")
	pf.String("api-key", "", "bearer token, if the server requires one")
	pf.String("model", "", "model name (default: the model loaded by the server)")
	pf.BoolP("verbose", "v", false, "log requests and stream progress to stderr")

	root.AddCommand(
		newChatCmd(a),
		newCompleteCmd(a),
		newTUICmd(a),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
