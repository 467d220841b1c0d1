package mdhtml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrInvalidTokenType reports a token kind the renderer cannot map.
var ErrInvalidTokenType = errors.New("invalid token type")

// Render converts a token tree into HTML. Each element starts on its own
// line and nested elements are indented by two spaces per level.
func Render(tokens []*Token, opts ...RenderOption) (string, error) {
	r := renderer{cfg: newRenderConfig(opts)}
	return r.render(tokens, "")
}

type renderer struct {
	cfg renderConfig
}

func (r *renderer) render(tokens []*Token, indent string) (string, error) {
	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out, err := r.token(tok, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, out)
	}
	return strings.Join(lines, "\n"), nil
}

// content is the inside of an element: the token's text for a leaf, the
// children on their own indented lines otherwise.
func (r *renderer) content(tok *Token, indent string) (string, error) {
	if len(tok.Children) == 0 {
		return tok.Text, nil
	}
	inner, err := r.render(tok.Children, indent+"  ")
	if err != nil {
		return "", err
	}
	return "\n" + inner + "\n" + indent, nil
}

func (r *renderer) element(tok *Token, indent, open, close string) (string, error) {
	inner, err := r.content(tok, indent)
	if err != nil {
		return "", err
	}
	return indent + open + inner + close, nil
}

func (r *renderer) token(tok *Token, indent string) (string, error) {
	switch tok.Kind {
	case KindHeading:
		tag := "h" + strconv.Itoa(headingDepth(tok))
		return r.element(tok, indent, "<"+tag+">", "</"+tag+">")
	case KindParagraph:
		return r.element(tok, indent, "<p>", "</p>")
	case KindStrong:
		return r.element(tok, indent, "<strong>", "</strong>")
	case KindEmphasis:
		return r.element(tok, indent, "<em>", "</em>")
	case KindStrongEmphasis:
		return r.element(tok, indent, "<strong><em>", "</em></strong>")
	case KindBlockquote:
		return r.element(tok, indent, "<blockquote>", "</blockquote>")
	case KindThematicBreak:
		return indent + "<hr/>", nil
	case KindHTMLBlock:
		return indent + tok.Text, nil
	case KindLink:
		open := `<a href="` + html.EscapeString(href(tok)) + `" rel="nofollow">`
		return r.element(tok, indent, open, "</a>")
	case KindImage:
		return indent + `<img src="` + html.EscapeString(href(tok)) + `" alt="` + html.EscapeString(tok.Text) + `"/>`, nil
	case KindCodeSpan:
		return indent + "<code>" + html.EscapeString(tok.Text) + "</code>", nil
	case KindFencedCode, KindIndentedCode:
		return indent + `<pre class="hljs">` + "\n" + r.highlight(tok) + "\n" + indent + "</pre>", nil
	case KindList:
		return r.list(tok, indent)
	case KindText:
		if len(tok.Children) > 0 {
			return r.render(tok.Children, indent)
		}
		return indent + tok.Text, nil
	case KindEscape:
		return indent + html.EscapeString(tok.Text), nil
	}
	return "", fmt.Errorf("render %s token %q: %w", tok.Kind, excerpt(tok.Raw, 32), ErrInvalidTokenType)
}

func (r *renderer) list(tok *Token, indent string) (string, error) {
	l := tok.List()
	if l == nil {
		return "", fmt.Errorf("render list without items: %w", ErrInvalidTokenType)
	}
	open, close := "<ul>", "</ul>"
	if l.Ordered {
		open, close = `<ol start="`+strconv.Itoa(l.Start)+`">`, "</ol>"
	}
	var b strings.Builder
	b.WriteString(indent + open)
	for _, item := range l.Items {
		inner, err := r.render(item.Children, indent+"    ")
		if err != nil {
			return "", err
		}
		b.WriteString("\n" + indent + "  <li>\n")
		b.WriteString(inner)
		b.WriteString("\n" + indent + "  </li>")
	}
	b.WriteString("\n" + indent + close)
	return b.String(), nil
}

// highlight returns the highlighted body of a code block. A failing
// highlighter degrades to escaped plain text.
func (r *renderer) highlight(tok *Token) string {
	var lang string
	if c := tok.Code(); c != nil {
		lang = c.Language
	}
	out, err := r.cfg.highlighter.Highlight(tok.Text, lang)
	if err != nil {
		return html.EscapeString(tok.Text)
	}
	return strings.TrimRight(out, "\n")
}

func headingDepth(tok *Token) int {
	h := tok.Heading()
	if h == nil {
		return 1
	}
	return min(max(h.Depth, 1), 6)
}

func href(tok *Token) string {
	if l := tok.Link(); l != nil {
		return l.Href
	}
	return ""
}
