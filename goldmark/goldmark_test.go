package goldmark_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/ooba"
	"github.com/fwojciec/ooba/goldmark"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI output so styled elements produce escape codes.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := ooba.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", goldmark.Render("", 80, theme))
		assert.Equal(t, "", goldmark.Render(" \n\n", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("hello world", 80, theme)
		assert.Equal(t, "hello world", strings.TrimRight(stripANSI(result), " "))
	})

	t.Run("heading is styled differently from a paragraph", func(t *testing.T) {
		t.Parallel()
		heading := goldmark.Render("# Title", 80, theme)
		paragraph := goldmark.Render("Title", 80, theme)
		assert.Contains(t, stripANSI(heading), "Title")
		assert.NotContains(t, stripANSI(heading), "#")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("emphasis markers are removed", func(t *testing.T) {
		t.Parallel()
		for src, want := range map[string]string{
			"**bold**":          "bold",
			"*italic*":          "italic",
			"***bold italic***": "bold italic",
			"~~gone~~":          "gone",
			"`code`":            "code",
		} {
			got := stripANSI(goldmark.Render(src, 80, theme))
			assert.Equal(t, want, strings.TrimSpace(got), "source %q", src)
		}
	})

	t.Run("fenced code block keeps lines without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		result := stripANSI(goldmark.Render(src, 20, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "go", lines[0])
		assert.Equal(t, `│ fmt.Println("hello world")`, lines[1])
	})

	t.Run("fenced code block without language", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("```\nsome code\n```", 80, theme))
		assert.Equal(t, "│ some code", result)
	})

	t.Run("unterminated fence renders the partial code", func(t *testing.T) {
		t.Parallel()
		src := "Here you go:\n\n```python\nfor i in range(3):\n    print(i"
		result := stripANSI(goldmark.Render(src, 80, theme))
		assert.Contains(t, result, "Here you go:")
		assert.Contains(t, result, "│ for i in range(3):")
		assert.Contains(t, result, "│     print(i")
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		src := "paragraph\n\n    indented code\n    more code"
		result := stripANSI(goldmark.Render(src, 80, theme))
		assert.Contains(t, result, "│ indented code")
		assert.Contains(t, result, "│ more code")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("- one\n- two\n- three", 80, theme))
		lines := strings.Split(result, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "- one", strings.TrimRight(lines[0], " "))
		assert.Equal(t, "- three", strings.TrimRight(lines[2], " "))
	})

	t.Run("ordered list keeps its start number", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("3. third\n4. fourth", 80, theme))
		assert.Contains(t, result, "3. third")
		assert.Contains(t, result, "4. fourth")
	})

	t.Run("nested list is indented", func(t *testing.T) {
		t.Parallel()
		src := "- outer\n  - inner one\n  - inner two"
		lines := strings.Split(stripANSI(goldmark.Render(src, 80, theme)), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "- outer"))
		assert.True(t, strings.HasPrefix(lines[1], "  - inner one"), "got %q", lines[1])
		assert.True(t, strings.HasPrefix(lines[2], "  - inner two"), "got %q", lines[2])
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		lines := strings.Split(stripANSI(goldmark.Render(src, 30, theme)), "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], "- "))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("[click](https://example.com)", 80, theme))
		assert.Contains(t, result, "click (https://example.com)")
	})

	t.Run("bare URL is linkified", func(t *testing.T) {
		t.Parallel()
		plain := goldmark.Render("see https://example.com/docs", 80, theme)
		assert.Contains(t, stripANSI(plain), "https://example.com/docs")
		assert.NotEqual(t, stripANSI(plain), plain, "autolink should be styled")
	})

	t.Run("image renders alt text and URL", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("![alt text](https://example.com/img.png)", 80, theme))
		assert.Contains(t, result, "alt text")
		assert.Contains(t, result, "(https://example.com/img.png)")
	})

	t.Run("blockquote has a gutter", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("> quoted words", 80, theme))
		assert.True(t, strings.HasPrefix(result, "┃ quoted words"), "got %q", result)
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		result := stripANSI(goldmark.Render(long, 30, theme))
		assert.Contains(t, result, "word1")
		assert.Contains(t, result, "word12")
		assert.Greater(t, len(strings.Split(result, "\n")), 1)
	})

	t.Run("blocks are separated by a blank line", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("first paragraph\n\nsecond paragraph", 80, theme))
		parts := strings.Split(result, "\n\n")
		require.Len(t, parts, 2)
		assert.Equal(t, "first paragraph", strings.TrimSpace(parts[0]))
		assert.Equal(t, "second paragraph", strings.TrimSpace(parts[1]))
	})

	t.Run("thematic break", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(goldmark.Render("above\n\n---\n\nbelow", 40, theme))
		assert.Contains(t, result, "above")
		assert.Contains(t, result, strings.Repeat("─", 40))
		assert.Contains(t, result, "below")
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		result := goldmark.Render("hello world", 0, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})
}
