package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/goldmark"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock renders a streamed reply as markdown.
//
// Text up to the last paragraph break outside a code fence is settled: it
// cannot change as more fragments arrive, so it is rendered once per width
// and cached. Only the tail is re-rendered on each fragment.
type AssistantTextBlock struct {
	text  strings.Builder
	theme ooba.Theme

	settled  string         // raw text up to the last safe paragraph break
	rendered map[int]string // settled text rendered per width
}

// NewAssistantTextBlock creates an empty block for a reply.
func NewAssistantTextBlock(theme ooba.Theme) *AssistantTextBlock {
	return &AssistantTextBlock{
		theme:    theme,
		rendered: make(map[int]string),
	}
}

// Append adds a fragment of reply text.
func (b *AssistantTextBlock) Append(s string) {
	b.text.WriteString(s)
	b.settle()
}

// Text returns the raw reply text received so far.
func (b *AssistantTextBlock) Text() string {
	return b.text.String()
}

func (b *AssistantTextBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AssistantTextBlock) View(width int) string {
	head := b.renderSettled(width)
	tail := goldmark.Render(b.tail(), width, b.theme)
	switch {
	case strings.TrimSpace(tail) == "":
		return head
	case head == "":
		return tail
	default:
		return head + "\n\n" + tail
	}
}

// settle moves the settled boundary to the last "\n\n" that is not inside
// an open code fence.
func (b *AssistantTextBlock) settle() {
	raw := b.text.String()
	end := len(raw)
	for {
		i := strings.LastIndex(raw[:end], "\n\n")
		if i <= len(b.settled) {
			return
		}
		if !openFence(raw[:i]) {
			b.settled = raw[:i]
			clear(b.rendered)
			return
		}
		end = i
	}
}

func (b *AssistantTextBlock) renderSettled(width int) string {
	if b.settled == "" {
		return ""
	}
	if r, ok := b.rendered[width]; ok {
		return r
	}
	r := goldmark.Render(b.settled, width, b.theme)
	b.rendered[width] = r
	return r
}

func (b *AssistantTextBlock) tail() string {
	if b.settled == "" {
		return b.text.String()
	}
	return strings.TrimPrefix(b.text.String()[len(b.settled):], "\n\n")
}

// openFence reports whether s ends inside a fenced code block. Only fences
// at the start of a line count.
func openFence(s string) bool {
	open := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "```") {
			open = !open
		}
	}
	return open
}
