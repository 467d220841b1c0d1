package mdhtml

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidToken reports a non-empty remainder that no rule matched.
var ErrInvalidToken = errors.New("invalid token")

var (
	reBlankLine    = regexp.MustCompile(`(?m)^ +$`)
	reIndentPrefix = regexp.MustCompile(`(?m)^ {1,4}`)
	reLeadingSpace = regexp.MustCompile(`(?m)^ +`)
)

// Lex parses src into a normalized token tree.
func Lex(src string) ([]*Token, error) {
	tokens, links, err := blockTokens(preprocess(src), nil)
	if err != nil {
		return nil, err
	}
	if err := inlineBlocks(tokens, links); err != nil {
		return nil, err
	}
	return Compress(tokens), nil
}

// HTML renders src to HTML. It is Render(Lex(src)).
func HTML(src string, opts ...RenderOption) (string, error) {
	tokens, err := Lex(src)
	if err != nil {
		return "", err
	}
	return Render(tokens, opts...)
}

func preprocess(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	src = strings.ReplaceAll(src, "\t", "    ")
	return reBlankLine.ReplaceAllString(src, "")
}

// blockRule builds a token from a prefix of src. prev is the last token
// emitted into the sequence being built, nil at its start or after a blank
// line.
type blockRule func(src string, prev *Token) (*Token, bool)

// blockRules is in precedence order; the first match wins.
var blockRules = []blockRule{
	newlineToken,
	indentedCodeToken,
	fenceToken,
	headingToken,
	thematicBreakToken,
	blockquoteToken,
	listToken,
	htmlBlockToken,
	linkDefinitionToken,
	tableToken,
	setextHeadingToken,
	paragraphToken,
	textToken,
}

func newlineToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchNewline(src)
	if !ok {
		return nil, false
	}
	return &Token{Kind: KindNewline, Raw: m.raw}, true
}

// indentedCodeToken turns indented lines that directly follow a paragraph
// or text block into a continuation of that block.
func indentedCodeToken(src string, prev *Token) (*Token, bool) {
	m, ok := matchIndentedCode(src)
	if !ok {
		return nil, false
	}
	if prev != nil && (prev.Kind == KindParagraph || prev.Kind == KindText) {
		text := reLeadingSpace.ReplaceAllString(m.raw, "")
		return &Token{Kind: KindNone, Raw: m.raw, Text: strings.TrimRight(text, "\n")}, true
	}
	return &Token{
		Kind:  KindIndentedCode,
		Raw:   m.raw,
		Text:  strings.TrimRight(reIndentPrefix.ReplaceAllString(m.raw, ""), "\n"),
		Attrs: &CodeAttrs{},
	}, true
}

func fenceToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchFence(src)
	if !ok {
		return nil, false
	}
	var lang string
	if f := strings.Fields(m.groups[1]); len(f) > 0 {
		lang = f[0]
	}
	return &Token{
		Kind:  KindFencedCode,
		Raw:   m.raw,
		Text:  strings.TrimRight(m.groups[2], "\n"),
		Attrs: &CodeAttrs{Language: lang},
	}, true
}

func headingToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchHeading(src)
	if !ok {
		return nil, false
	}
	return &Token{
		Kind:  KindHeading,
		Raw:   m.raw,
		Text:  m.groups[1],
		Attrs: &HeadingAttrs{Depth: len(m.groups[0])},
	}, true
}

func thematicBreakToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchThematicBreak(src)
	if !ok {
		return nil, false
	}
	return &Token{Kind: KindThematicBreak, Raw: m.raw}, true
}

func blockquoteToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchBlockquote(src)
	if !ok {
		return nil, false
	}
	return &Token{Kind: KindBlockquote, Raw: m.raw, Text: stripQuoteMarkers(m.raw)}, true
}

func listToken(src string, _ *Token) (*Token, bool) {
	l, ok := matchList(src)
	if !ok {
		return nil, false
	}
	attrs := &ListAttrs{Bullet: l.bullet, Ordered: l.ordered}
	if l.ordered {
		attrs.Start, _ = strconv.Atoi(l.bullet)
	}
	for _, content := range l.items {
		attrs.Items = append(attrs.Items, &ListItem{Raw: content})
	}
	return &Token{Kind: KindList, Raw: l.raw, Attrs: attrs}, true
}

func htmlBlockToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchHTMLBlock(src)
	if !ok {
		return nil, false
	}
	return &Token{Kind: KindHTMLBlock, Raw: m.raw, Text: strings.TrimRight(m.raw, "\n")}, true
}

func linkDefinitionToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchLinkDefinition(src)
	if !ok {
		return nil, false
	}
	return &Token{
		Kind:  KindLinkDefinition,
		Raw:   m.raw,
		Text:  m.groups[0],
		Attrs: &LinkAttrs{Href: m.groups[1], Label: m.groups[0]},
	}, true
}

func tableToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchTable(src)
	if !ok {
		return nil, false
	}
	return &Token{Kind: KindTable, Raw: m.raw}, true
}

func setextHeadingToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchSetextHeading(src)
	if !ok {
		return nil, false
	}
	depth := 2
	if m.groups[0][0] == '=' {
		depth = 1
	}
	return &Token{
		Kind:  KindHeading,
		Raw:   m.raw,
		Text:  strings.TrimSpace(m.groups[1]),
		Attrs: &HeadingAttrs{Depth: depth},
	}, true
}

func paragraphToken(src string, _ *Token) (*Token, bool) {
	m, ok := matchParagraph(src)
	if !ok {
		return nil, false
	}
	text := reLeadingSpace.ReplaceAllString(m.raw, "")
	return &Token{Kind: KindParagraph, Raw: m.raw, Text: strings.TrimRight(text, "\n")}, true
}

// textToken is the fallback. Consecutive text lines merge.
func textToken(src string, prev *Token) (*Token, bool) {
	m, ok := matchLine(src)
	if !ok {
		return nil, false
	}
	text := strings.TrimRight(m.raw, "\n")
	if prev != nil && prev.Kind == KindText {
		return &Token{Kind: KindNone, Raw: m.raw, Text: text}, true
	}
	return &Token{Kind: KindText, Raw: m.raw, Text: text}, true
}

func stripQuoteMarkers(raw string) string {
	lines := strings.SplitAfter(raw, "\n")
	for i, line := range lines {
		lines[i] = line[len(reQuoteMarker.FindString(line)):]
	}
	return strings.Join(lines, "")
}

func nextBlockToken(src string, prev *Token) (*Token, bool) {
	for _, rule := range blockRules {
		if tok, ok := rule(src, prev); ok {
			return tok, true
		}
	}
	return nil, false
}

// blockTokens consumes src into block tokens. Link definitions are recorded
// into a table chained to parent; list items and blockquotes are tokenized
// recursively, each with its own table.
func blockTokens(src string, parent *LinkTable) ([]*Token, *LinkTable, error) {
	links := NewLinkTable(parent)
	var (
		tokens []*Token
		prev   *Token
	)
	for len(src) > 0 {
		tok, ok := nextBlockToken(src, prev)
		if !ok || tok.Raw == "" {
			return nil, nil, fmt.Errorf("%w after: %q", ErrInvalidToken, excerpt(src, 32))
		}
		src = src[len(tok.Raw):]

		switch tok.Kind {
		case KindNone:
			mergeContinuation(prev, tok)
			continue
		case KindNewline:
			prev = nil
			continue
		case KindLinkDefinition:
			links.Define(tok.Text, tok.Link().Href)
			prev = nil
			continue
		case KindList:
			for _, item := range tok.List().Items {
				children, itemLinks, err := blockTokens(item.Raw, links)
				if err != nil {
					return nil, nil, err
				}
				item.Children, item.Links = children, itemLinks
			}
		case KindBlockquote:
			children, quoteLinks, err := blockTokens(tok.Text, links)
			if err != nil {
				return nil, nil, err
			}
			tok.Children = children
			tok.Attrs = &QuoteAttrs{Links: quoteLinks}
		}
		tokens = append(tokens, tok)
		prev = tok
	}
	return tokens, links, nil
}

// mergeContinuation appends the payload of a merge sentinel to the block it
// continues.
func mergeContinuation(prev, tok *Token) {
	prev.Raw += tok.Raw
	prev.Text += "\n" + tok.Text
}

// inlineBlocks parses the text of paragraphs, text blocks and headings into
// span tokens, descending into blockquotes and list items with their own
// link scopes.
func inlineBlocks(tokens []*Token, links *LinkTable) error {
	for _, tok := range tokens {
		switch tok.Kind {
		case KindParagraph, KindText, KindHeading:
			children, err := inlineTokens(tok.Text, links)
			if err != nil {
				return err
			}
			tok.Children = append(tok.Children, children...)
		case KindBlockquote:
			scope := links
			if q := tok.quote(); q != nil && q.Links != nil {
				scope = q.Links
			}
			if err := inlineBlocks(tok.Children, scope); err != nil {
				return err
			}
		case KindList:
			for _, item := range tok.List().Items {
				scope := links
				if item.Links != nil {
					scope = item.Links
				}
				if err := inlineBlocks(item.Children, scope); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// inlineTokens consumes src into span tokens. Links and emphasis are parsed
// recursively over their inner text.
func inlineTokens(src string, links *LinkTable) ([]*Token, error) {
	var tokens []*Token
	scan := newInlineScan(src, links)
	for len(src) > 0 {
		tok, ok := nextInlineToken(src, scan)
		if !ok || tok.Raw == "" {
			return nil, fmt.Errorf("%w after: %q", ErrInvalidToken, excerpt(src, 30))
		}
		src = src[len(tok.Raw):]

		switch tok.Kind {
		case KindLink, KindStrong, KindEmphasis, KindStrongEmphasis:
			children, err := inlineTokens(tok.Text, links)
			if err != nil {
				return nil, err
			}
			tok.Children = append(tok.Children, children...)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
