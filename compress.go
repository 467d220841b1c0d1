package mdhtml

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var reSoftBreak = regexp.MustCompile(` *\n[ \n]*`)

// Compress removes parser artifacts from a token tree and returns the
// cleaned sequence. It works bottom-up and is idempotent:
//
//   - escapes become text holding the escaped character;
//   - a text token with exactly one child is replaced by that child;
//   - a childless text token merges into a childless text token before
//     it, and is dropped when it holds only whitespace;
//   - spans, headings, paragraphs and links whose only child is a childless
//     text token take over its text;
//   - line breaks in text payloads collapse to single spaces and the
//     payloads are trimmed.
//
// Tokens that change are replaced by copies; the input tree is not
// modified.
func Compress(tokens []*Token) []*Token {
	return compress(tokens)
}

func compress(tokens []*Token) []*Token {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]*Token, 0, len(tokens))
	for _, tok := range tokens {
		tok = compressChildren(tok)

		if tok.Kind == KindEscape {
			tok = &Token{Kind: KindText, Raw: tok.Raw, Text: html.EscapeString(tok.Text)}
		}
		if tok.Kind == KindText && len(tok.Children) == 1 {
			tok = tok.Children[0]
		}
		if tok.isLeafText() {
			if n := len(out); n > 0 && out[n-1].isLeafText() {
				prev := out[n-1]
				out[n-1] = &Token{Kind: KindText, Raw: prev.Raw + tok.Raw, Text: prev.Text + tok.Text}
				continue
			}
			if strings.TrimSpace(tok.Text) == "" {
				continue
			}
		}
		if adoptsText(tok.Kind) && len(tok.Children) == 1 && tok.Children[0].isLeafText() {
			adopted := *tok
			adopted.Text = tok.Children[0].Text
			adopted.Children = nil
			tok = &adopted
		}
		out = append(out, tok)
	}
	for i, tok := range out {
		if !collapsesSpace(tok) {
			continue
		}
		if text := collapseSpace(tok.Text); text != tok.Text {
			c := *tok
			c.Text = text
			out[i] = &c
		}
	}
	return out
}

// compressChildren returns tok with its children, and the children of its
// list items, compressed.
func compressChildren(tok *Token) *Token {
	l := tok.List()
	if len(tok.Children) == 0 && l == nil {
		return tok
	}
	c := *tok
	c.Children = compress(tok.Children)
	if l != nil {
		attrs := *l
		attrs.Items = make([]*ListItem, len(l.Items))
		for i, item := range l.Items {
			it := *item
			it.Children = compress(item.Children)
			attrs.Items[i] = &it
		}
		c.Attrs = &attrs
	}
	return &c
}

func adoptsText(k Kind) bool {
	switch k {
	case KindStrong, KindEmphasis, KindStrongEmphasis, KindHeading, KindParagraph, KindLink:
		return true
	}
	return false
}

func collapsesSpace(tok *Token) bool {
	switch tok.Kind {
	case KindText, KindStrong, KindEmphasis, KindStrongEmphasis:
		return true
	case KindParagraph, KindHeading, KindLink:
		return len(tok.Children) == 0
	}
	return false
}

func collapseSpace(s string) string {
	return strings.TrimSpace(reSoftBreak.ReplaceAllString(s, " "))
}
