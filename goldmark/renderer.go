package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ooba"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// minWrapWidth keeps deeply nested content readable on narrow terminals.
const minWrapWidth = 10

type renderer struct {
	src []byte

	heading lipgloss.Style
	strong  lipgloss.Style
	em      lipgloss.Style
	strike  lipgloss.Style
	code    lipgloss.Style
	link    lipgloss.Style
	muted   lipgloss.Style
}

func newRenderer(src []byte, theme ooba.Theme) *renderer {
	return &renderer{
		src:     src,
		heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		strong:  lipgloss.NewStyle().Bold(true),
		em:      lipgloss.NewStyle().Italic(true),
		strike:  lipgloss.NewStyle().Strikethrough(true),
		code:    lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)),
		link:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Underline(true),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(max(width, minWrapWidth)).Render(s)
}

// blocks renders the children of parent, one string per block.
func (r *renderer) blocks(parent ast.Node, width int) []string {
	var out []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if s := r.block(n, width); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *renderer) block(n ast.Node, width int) string {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n), width)
	case *ast.Heading:
		return wrap(r.heading.Render(r.inline(n)), width)
	case *ast.FencedCodeBlock:
		return r.codeBlock(n, string(n.Language(r.src)))
	case *ast.CodeBlock:
		return r.codeBlock(n, "")
	case *ast.Blockquote:
		return r.blockquote(n, width)
	case *ast.List:
		return strings.Join(r.list(n, width), "\n")
	case *ast.ThematicBreak:
		return r.muted.Render(strings.Repeat("─", min(width, defaultWidth)))
	case *ast.HTMLBlock:
		return strings.TrimRight(r.lines(n), "\n")
	default:
		return strings.Join(r.blocks(n, width), "\n\n")
	}
}

// lines returns the raw source lines of a block.
func (r *renderer) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(r.src))
	}
	return b.String()
}

func (r *renderer) codeBlock(n ast.Node, lang string) string {
	var out []string
	if lang != "" {
		out = append(out, r.muted.Render(lang))
	}
	gutter := r.muted.Render("│") + " "
	body := strings.TrimRight(r.lines(n), "\n")
	for _, line := range strings.Split(body, "\n") {
		out = append(out, gutter+r.code.Render(line))
	}
	return strings.Join(out, "\n")
}

func (r *renderer) blockquote(n *ast.Blockquote, width int) string {
	bar := r.muted.Render("┃") + " "
	inner := strings.Join(r.blocks(n, width-2), "\n\n")
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = bar + r.em.Render(line)
	}
	return strings.Join(lines, "\n")
}

// list renders a list as lines. Continuation lines of an item are indented
// to align with the text after its marker.
func (r *renderer) list(n *ast.List, width int) []string {
	var out []string
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		pad := strings.Repeat(" ", len(marker))
		first := true
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			var lines []string
			if sub, ok := ic.(*ast.List); ok {
				lines = r.list(sub, width-len(marker))
			} else {
				lines = strings.Split(r.block(ic, width-len(marker)), "\n")
			}
			for _, line := range lines {
				prefix := pad
				if first {
					prefix = marker
					first = false
				}
				out = append(out, prefix+line)
			}
		}
		if first {
			out = append(out, strings.TrimRight(marker, " "))
		}
	}
	return out
}

// inline renders the inline children of n into a single styled string.
func (r *renderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.writeInline(&b, c)
	}
	return b.String()
}

func (r *renderer) writeInline(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			b.WriteByte('\n')
		case n.SoftLineBreak():
			b.WriteByte(' ')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Emphasis:
		if n.Level >= 2 {
			b.WriteString(r.strong.Render(r.inline(n)))
		} else {
			b.WriteString(r.em.Render(r.inline(n)))
		}
	case *extast.Strikethrough:
		b.WriteString(r.strike.Render(r.inline(n)))
	case *ast.CodeSpan:
		b.WriteString(r.code.Render(r.inline(n)))
	case *ast.Link:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
	case *ast.Image:
		b.WriteString(r.link.Render(r.inline(n)))
		b.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		b.WriteString(r.link.Render(string(n.URL(r.src))))
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.writeInline(b, c)
		}
	}
}
