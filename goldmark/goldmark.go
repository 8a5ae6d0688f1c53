// Package goldmark renders assistant markdown to ANSI-styled terminal
// output, using goldmark for parsing and lipgloss for styling.
package goldmark

import (
	"strings"

	"github.com/fwojciec/ooba"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// defaultWidth is used when the caller does not know the terminal width.
const defaultWidth = 80

// md parses CommonMark plus strikethrough and bare-URL autolinks, both of
// which local models emit often.
var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// keep their lines as written.
//
// Render accepts partial documents: text that is still streaming in, such
// as an unterminated code fence, renders as far as it goes.
func Render(source string, width int, theme ooba.Theme) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	r := newRenderer(src, theme)
	return strings.Join(r.blocks(doc, width), "\n\n")
}
