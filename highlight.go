package mdhtml

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
)

// Highlighter turns the body of a code block into HTML. language is the
// first word of the fence info string and may be empty. The result must be
// safe to place inside a <pre> element.
type Highlighter interface {
	Highlight(code, language string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(code, language string) (string, error)

// Highlight calls f(code, language).
func (f HighlighterFunc) Highlight(code, language string) (string, error) {
	return f(code, language)
}

// ChromaHighlighter highlights code with chroma. Output uses CSS classes
// unless InlineStyles is set; see HighlightCSS for the matching
// stylesheet.
type ChromaHighlighter struct {
	// Style is a chroma style name. Empty selects DefaultHighlightStyle.
	Style        string
	InlineStyles bool
}

// Highlight tokenizes code with the lexer registered for language, or with
// the best guess from the code itself when language is empty or unknown.
func (h ChromaHighlighter) Highlight(code, language string) (string, error) {
	style, ok := HighlightStyleByName(h.Style)
	if !ok {
		return "", fmt.Errorf("highlight: unknown style %q", h.Style)
	}
	iterator, err := lexerFor(code, language).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", language, err)
	}
	formatter := chromahtml.New(
		chromahtml.WithClasses(!h.InlineStyles),
		chromahtml.PreventSurroundingPre(true),
	)
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", fmt.Errorf("highlight %s: %w", language, err)
	}
	return b.String(), nil
}

func lexerFor(code, language string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// PlainHighlighter escapes code without adding markup.
var PlainHighlighter = HighlighterFunc(func(code, _ string) (string, error) {
	return html.EscapeString(code), nil
})
