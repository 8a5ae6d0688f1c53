package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ooba"
)

var _ tea.Model = Model{}

// Option configures a [Model].
type Option func(*Model)

// WithModelName sets the model named in every request. Empty leaves the
// choice to the client or the server.
func WithModelName(name string) Option {
	return func(m *Model) { m.modelName = name }
}

// WithOptions sets the generation parameters sent with every request.
func WithOptions(opts ooba.Options) Option {
	return func(m *Model) { m.opts = opts }
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	open      StreamFunc
	session   *ooba.Session
	theme     ooba.Theme
	styles    Styles
	modelName string
	opts      ooba.Options

	blocks []MessageBlock
	reply  *AssistantTextBlock // block receiving the current reply

	running      bool
	cancel       context.CancelFunc
	stream       ooba.Stream[ooba.ChatFragment]
	fragments    int
	finishReason string
	err          error
	ready        bool
}

// New creates a new TUI Model that sends the conversation in session
// through open.
func New(open StreamFunc, session *ooba.Session, theme ooba.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	m := Model{
		Input:   ti,
		open:    open,
		session: session,
		theme:   theme,
		styles:  NewStyles(theme),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// Running returns whether a reply is being generated.
func (m Model) Running() bool { return m.running }

// Err returns the error of the last reply, if any. Cancellation is not an
// error.
func (m Model) Err() error { return m.err }

// Session returns the conversation shown by the model.
func (m Model) Session() *ooba.Session { return m.session }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case streamOpenedMsg:
		m.stream = msg.stream
		return m, nextFragment(m.stream)

	case FragmentMsg:
		m = m.appendFragment(msg.Fragment)
		if m.stream != nil {
			return m, nextFragment(m.stream)
		}
		return m, nil

	case StreamDoneMsg:
		m = m.finishReply(msg)
		return m, m.Input.Focus()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	const (
		inputHeight  = 1
		statusHeight = 1
		gapHeight    = 2
	)
	vpHeight := max(msg.Height-inputHeight-statusHeight-gapHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m = m.renderSession()
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	m.refresh()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		return m.submit(text)
	}

	if m.running {
		return m, nil
	}
	// Letters go to the input only; j/k would otherwise scroll.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.finishReason = ""
	m.fragments = 0

	m.session.Append(ooba.Message{Role: ooba.RoleUser, Content: text, Timestamp: time.Now()})
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m.reply = nil
	m.refresh()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true

	req := m.session.ChatRequest(m.modelName, m.opts)
	return m, openStream(ctx, m.open, req)
}

func (m Model) appendFragment(f ooba.ChatFragment) Model {
	if m.reply == nil {
		m.reply = NewAssistantTextBlock(m.theme)
		m.blocks = append(m.blocks, m.reply)
	}
	m.reply.Append(f.Content)
	m.fragments++
	m.refresh()
	return m
}

// finishReply releases the stream and records whatever text arrived. A
// reply cut short by cancellation or an error keeps its partial text.
func (m Model) finishReply(msg StreamDoneMsg) Model {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.running = false
	m.finishReason = msg.FinishReason

	if m.reply != nil && m.reply.Text() != "" {
		m.session.Append(ooba.Message{Role: ooba.RoleAssistant, Content: m.reply.Text(), Timestamp: time.Now()})
	}
	m.reply = nil

	if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
		m.err = msg.Err
		m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
	}
	m.refresh()
	return m
}

// renderSession creates blocks from existing session messages.
func (m Model) renderSession() Model {
	for _, msg := range m.session.Messages {
		switch msg.Role {
		case ooba.RoleUser:
			m.blocks = append(m.blocks, NewUserMessageBlock(msg.Content, m.styles))
		case ooba.RoleAssistant:
			b := NewAssistantTextBlock(m.theme)
			b.Append(msg.Content)
			m.blocks = append(m.blocks, b)
		}
	}
	return m
}

// refresh re-renders the blocks into the viewport and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
}

func (m Model) renderContent() string {
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.running && m.fragments == 0:
		return m.styles.Muted.Render("Waiting for the server... Ctrl+C to stop")
	case m.running:
		return m.styles.Muted.Render(fmt.Sprintf("Generating (%d fragments)... Ctrl+C to stop", m.fragments))
	case m.finishReason == "length":
		return m.styles.Accent.Render("Reply cut at the token limit.") + " " +
			m.styles.Muted.Render("Enter to send, Ctrl+C to quit")
	default:
		return m.styles.Muted.Render("Enter to send, Ctrl+C to quit")
	}
}
