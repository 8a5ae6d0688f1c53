package main

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fwojciec/ooba"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// genFlags are the generation parameters shared by chat and complete.
type genFlags struct {
	maxTokens   int
	temperature float64
	topP        float64
	stop        []string
	noStream    bool
}

func (g *genFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&g.maxTokens, "max-tokens", 0, "maximum tokens to generate (0: server default)")
	fs.Float64Var(&g.temperature, "temperature", 0, "sampling temperature in [0, 2]")
	fs.Float64Var(&g.topP, "top-p", 0, "nucleus sampling threshold in [0, 1]")
	fs.StringArrayVar(&g.stop, "stop", nil, "stop sequence (repeatable)")
}

func (g *genFlags) registerNoStream(fs *pflag.FlagSet) {
	fs.BoolVar(&g.noStream, "no-stream", false, "wait for the whole response instead of streaming")
}

// options returns the parameters the user set. Unset sampling flags are
// left to the server.
func (g *genFlags) options(fs *pflag.FlagSet) ooba.Options {
	opts := ooba.Options{MaxTokens: g.maxTokens, Stop: g.stop}
	if fs.Changed("temperature") {
		t := g.temperature
		opts.Temperature = &t
	}
	if fs.Changed("top-p") {
		p := g.topP
		opts.TopP = &p
	}
	return opts
}

// prompt joins args, or reads stdin when there are none or the only
// argument is "-".
func (a *app) prompt(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", fmt.Errorf("read prompt: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return strings.Join(args, " "), nil
}

func newChatCmd(a *app) *cobra.Command {
	var (
		gen    genFlags
		system string
	)
	cmd := &cobra.Command{
		Use:   "chat [prompt]",
		Short: "Send one chat message and print the reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.prompt(args)
			if err != nil {
				return err
			}
			var msgs []ooba.Message
			if system != "" {
				msgs = append(msgs, ooba.Message{Role: ooba.RoleSystem, Content: system})
			}
			msgs = append(msgs, ooba.Message{Role: ooba.RoleUser, Content: text})
			req := ooba.ChatRequest{Messages: msgs, Options: gen.options(cmd.Flags())}

			if gen.noStream {
				resp, err := a.client.Chat(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, resp.Message.Content)
				a.logFinish(resp.FinishReason, resp.Usage)
				return nil
			}

			s, err := a.client.StreamChat(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printStream(a, ooba.All(s), func(f ooba.ChatFragment) string { return f.Content }, s)
		},
	}
	gen.register(cmd.Flags())
	gen.registerNoStream(cmd.Flags())
	cmd.Flags().StringVar(&system, "system", "", "system prompt")
	return cmd
}

func newCompleteCmd(a *app) *cobra.Command {
	var gen genFlags
	cmd := &cobra.Command{
		Use:   "complete [prompt]",
		Short: "Continue a plain-text prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.prompt(args)
			if err != nil {
				return err
			}
			req := ooba.CompletionRequest{Prompt: text, Options: gen.options(cmd.Flags())}

			if gen.noStream {
				resp, err := a.client.Complete(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, resp.Text)
				a.logFinish(resp.FinishReason, resp.Usage)
				return nil
			}

			s, err := a.client.StreamCompletion(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printStream(a, ooba.All(s), func(tok string) string { return tok }, s)
		},
	}
	gen.register(cmd.Flags())
	gen.registerNoStream(cmd.Flags())
	return cmd
}

// finisher is the part of a stream consulted once it has ended.
type finisher interface {
	Count() int
	FinishReason() string
}

// printStream writes fragments to stdout as they arrive. Output already
// written stays written when the stream fails.
func printStream[T any](a *app, seq iter.Seq2[T, error], text func(T) string, s finisher) error {
	for v, err := range seq {
		if err != nil {
			if s.Count() > 0 {
				fmt.Fprintln(a.stdout)
			}
			return err
		}
		fmt.Fprint(a.stdout, text(v))
	}
	fmt.Fprintln(a.stdout)
	a.log.WithField("fragments", s.Count()).Debug("stream finished")
	a.logFinish(s.FinishReason(), ooba.Usage{})
	return nil
}

func (a *app) logFinish(reason string, usage ooba.Usage) {
	if reason == "length" {
		a.log.Warn("output stopped at the token limit; raise --max-tokens for longer output")
	}
	if usage.Total() > 0 {
		a.log.WithField("prompt_tokens", usage.PromptTokens).
			WithField("completion_tokens", usage.CompletionTokens).
			Debug("usage")
	}
}
