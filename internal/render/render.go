// Package render turns file content into ANSI text: chroma for code,
// glamour for markdown.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// Renderer caches glamour renderers per style and width. Safe for
// concurrent use.
type Renderer struct {
	Profile termenv.Profile

	mu       sync.Mutex
	markdown map[mdKey]*glamour.TermRenderer
}

type mdKey struct {
	style string
	width int
}

// New returns a renderer for the given colour profile.
func New(profile termenv.Profile) *Renderer {
	return &Renderer{Profile: profile, markdown: map[mdKey]*glamour.TermRenderer{}}
}

func (r *Renderer) formatter() chroma.Formatter {
	switch r.Profile {
	case termenv.TrueColor:
		return formatters.TTY16m
	case termenv.Ascii:
		return formatters.NoOp
	default:
		return formatters.TTY256
	}
}

// Code highlights source for language and prefixes each line with a
// right-aligned line number. Unknown languages fall back to plain text.
func (r *Renderer) Code(source, language, style string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}
	lines := chroma.SplitTokensIntoLines(it.Tokens())
	width := len(fmt.Sprint(len(lines)))
	f := r.formatter()

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d  ", width, i+1)
		var lb strings.Builder
		if err := f.Format(&lb, s, chroma.Literator(chompLine(line)...)); err != nil {
			return "", fmt.Errorf("format line %d: %w", i+1, err)
		}
		b.WriteString(lb.String())
	}
	return b.String(), nil
}

// chompLine drops the line break chroma leaves in a line's last token, so
// the formatter cannot wrap it in colour codes.
func chompLine(line []chroma.Token) []chroma.Token {
	out := make([]chroma.Token, 0, len(line))
	for _, tok := range line {
		tok.Value = strings.TrimRight(tok.Value, "\r\n")
		if tok.Value != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Markdown renders md with a glamour standard style wrapped at width.
func (r *Renderer) Markdown(md, style string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	tr, err := r.markdownRenderer(style, width)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

func (r *Renderer) markdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := mdKey{style: style, width: width}
	if tr, ok := r.markdown[key]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(r.Profile),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	r.markdown[key] = tr
	return tr, nil
}
