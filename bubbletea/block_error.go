package bubbletea

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ooba"
)

var _ MessageBlock = (*ErrorBlock)(nil)

// ErrorBlock renders a failed reply.
type ErrorBlock struct {
	err    error
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(err error, styles Styles) *ErrorBlock {
	return &ErrorBlock{err: err, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	content := b.styles.Error.Render(fmt.Sprintf("Error: %v", b.err))
	if hint := errorHint(b.err); hint != "" {
		content += "\n" + b.styles.Muted.Render(hint)
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// errorHint suggests what to check for the common failure kinds.
func errorHint(err error) string {
	var oe *ooba.Error
	if !errors.As(err, &oe) {
		return ""
	}
	switch oe.Kind {
	case ooba.KindTransport:
		return "Is the server running? Check --base-url."
	case ooba.KindRequestRejected:
		return "The server refused the request. Is a model loaded?"
	case ooba.KindMalformedFrame:
		return "The server sent a response this client does not understand."
	}
	return ""
}
