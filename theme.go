package mdhtml

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle names the style used when none is configured.
const DefaultHighlightStyle = "github"

// HighlightStyles returns the names of the registered highlight styles.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HighlightStyleByName returns a registered highlight style by name. An
// empty name selects DefaultHighlightStyle.
func HighlightStyleByName(name string) (*chroma.Style, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		normalized = DefaultHighlightStyle
	}
	style, ok := styles.Registry[normalized]
	return style, ok
}

// DefaultStyle returns the default highlight style.
func DefaultStyle() *chroma.Style {
	style, ok := HighlightStyleByName(DefaultHighlightStyle)
	if !ok {
		return styles.Fallback
	}
	return style
}

// HighlightCSS writes the stylesheet matching the class names emitted by a
// ChromaHighlighter without inline styles.
func HighlightCSS(w io.Writer, name string) error {
	style, ok := HighlightStyleByName(name)
	if !ok {
		return fmt.Errorf("highlight css: unknown style %q", name)
	}
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, style); err != nil {
		return fmt.Errorf("highlight css: %w", err)
	}
	return nil
}
