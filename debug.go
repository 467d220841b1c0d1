package mdhtml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"
)

const (
	dumpIndent   = 2
	dumpMinWidth = 16
	ellipsis     = "…"
)

// DumpOptions configures Dump.
type DumpOptions struct {
	// Width truncates each line to this many cells. Zero disables
	// truncation.
	Width int
	// Hyperlinks wraps link targets in OSC 8 escapes so terminals can open
	// them. See DetectOSC8Support.
	Hyperlinks bool
}

// Dump writes tokens as an indented tree, one token per line. Leaves print
// as "kind: text"; list items print as item0, item1 and so on.
func Dump(w io.Writer, tokens []*Token, opts DumpOptions) error {
	out := dumpTokens(tokens, 0, opts)
	if out == "" {
		return nil
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

func dumpTokens(tokens []*Token, depth int, opts DumpOptions) string {
	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		line := dumpToken(tok, depth, opts)
		if l := tok.Link(); opts.Hyperlinks && l != nil && l.Href != "" {
			line = linkFirstLine(line, l.Href, fitURL(l.Href, lineBudget(opts.Width, depth+len(tok.Kind.String())+1)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func dumpToken(tok *Token, depth int, opts DumpOptions) string {
	width := opts.Width
	label := tok.Kind.String()
	if l := tok.Link(); l != nil && l.Href != "" {
		label += " " + fitURL(l.Href, lineBudget(width, depth+len(label)+1))
	}
	if c := tok.Code(); c != nil && c.Language != "" {
		label += " " + c.Language
	}
	if l := tok.List(); l != nil {
		items := make([]string, 0, len(l.Items))
		for i, item := range l.Items {
			head := "item" + strconv.Itoa(i)
			if len(item.Children) > 0 {
				head += "\n" + indent.String(dumpTokens(item.Children, depth+2*dumpIndent, opts), dumpIndent)
			}
			items = append(items, head)
		}
		return label + "\n" + indent.String(strings.Join(items, "\n"), dumpIndent)
	}
	if len(tok.Children) > 0 {
		return label + "\n" + indent.String(dumpTokens(tok.Children, depth+dumpIndent, opts), dumpIndent)
	}
	line := label + ": " + strings.ReplaceAll(tok.Text, "\n", `\n`)
	return fitText(line, lineBudget(width, depth))
}

// linkFirstLine turns the first occurrence of shown on the first line of
// s into a hyperlink to href. Truncated URLs are left alone.
func linkFirstLine(s, href, shown string) string {
	first, rest, hasRest := strings.Cut(s, "\n")
	idx := strings.Index(first, " "+shown)
	if idx < 0 {
		return s
	}
	idx++
	first = first[:idx] + hyperlink(href, shown) + first[idx+len(shown):]
	if hasRest {
		return first + "\n" + rest
	}
	return first
}

// lineBudget is the width left for text written at the given column. A
// zero width means unlimited and yields -1.
func lineBudget(width, column int) int {
	if width <= 0 {
		return -1
	}
	return max(width-column, dumpMinWidth)
}

func fitText(text string, limit int) string {
	if limit < 0 || ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	return truncate.StringWithTail(text, uint(limit), ellipsis)
}

func fitURL(url string, limit int) string {
	if limit < 0 || ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
		url = trimmed
	}
	return fitText(url, limit)
}

type dumpNode struct {
	Kind     string       `yaml:"kind"`
	Text     string       `yaml:"text,omitempty"`
	Depth    int          `yaml:"depth,omitempty"`
	Language string       `yaml:"language,omitempty"`
	Href     string       `yaml:"href,omitempty"`
	Ordered  bool         `yaml:"ordered,omitempty"`
	Start    int          `yaml:"start,omitempty"`
	Children []dumpNode   `yaml:"children,omitempty"`
	Items    [][]dumpNode `yaml:"items,omitempty"`
}

// DumpYAML writes tokens as a YAML sequence of nodes.
func DumpYAML(w io.Writer, tokens []*Token) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(dumpIndent)
	if err := enc.Encode(dumpNodes(tokens)); err != nil {
		return fmt.Errorf("dump yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("dump yaml: %w", err)
	}
	return nil
}

func dumpNodes(tokens []*Token) []dumpNode {
	nodes := make([]dumpNode, 0, len(tokens))
	for _, tok := range tokens {
		n := dumpNode{Kind: tok.Kind.String(), Children: dumpNodesOrNil(tok.Children)}
		if len(tok.Children) == 0 {
			n.Text = tok.Text
		}
		switch a := tok.Attrs.(type) {
		case *HeadingAttrs:
			n.Depth = a.Depth
		case *CodeAttrs:
			n.Language = a.Language
		case *LinkAttrs:
			n.Href = a.Href
		case *ListAttrs:
			n.Text = ""
			n.Ordered = a.Ordered
			n.Start = a.Start
			for _, item := range a.Items {
				n.Items = append(n.Items, dumpNodes(item.Children))
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func dumpNodesOrNil(tokens []*Token) []dumpNode {
	if len(tokens) == 0 {
		return nil
	}
	return dumpNodes(tokens)
}
