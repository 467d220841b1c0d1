package mdhtml

import "strings"

// inlineRule builds a span token from a prefix of src, which is always a
// suffix of the payload of s.
type inlineRule func(src string, s *inlineScan) (*Token, bool)

// inlineRules is in precedence order; the first match wins.
var inlineRules = []inlineRule{
	escapeToken,
	linkToken,
	refLinkToken,
	delimitedToken(KindStrongEmphasis, 3),
	delimitedToken(KindStrong, 2),
	delimitedToken(KindEmphasis, 1),
	codeSpanToken,
	inlineTextToken,
}

func nextInlineToken(src string, s *inlineScan) (*Token, bool) {
	for _, rule := range inlineRules {
		if tok, ok := rule(src, s); ok {
			return tok, true
		}
	}
	return nil, false
}

// escapeToken matches a backslash followed by ASCII punctuation. The token
// text is the escaped character.
func escapeToken(src string, _ *inlineScan) (*Token, bool) {
	if len(src) < 2 || src[0] != '\\' || !isASCIIPunct(src[1]) {
		return nil, false
	}
	return &Token{Kind: KindEscape, Raw: src[:2], Text: src[1:2]}, true
}

// openBracket reports where the bracketed text of a link or image starts.
func openBracket(src string) (start int, image bool, ok bool) {
	switch {
	case strings.HasPrefix(src, "!["):
		return 2, true, true
	case strings.HasPrefix(src, "["):
		return 1, false, true
	}
	return 0, false, false
}

// linkToken matches [text](href) and ![alt](href).
func linkToken(src string, s *inlineScan) (*Token, bool) {
	start, image, ok := openBracket(src)
	if !ok {
		return nil, false
	}
	textLen := s.closingBracket(src, start, '[', ']')
	if textLen < 0 {
		return nil, false
	}
	textEnd := start + textLen
	if textEnd+1 >= len(src) || src[textEnd+1] != '(' {
		return nil, false
	}
	hrefLen := s.closingBracket(src, textEnd+2, '(', ')')
	if hrefLen < 0 {
		return nil, false
	}
	hrefEnd := textEnd + 2 + hrefLen
	kind := KindLink
	if image {
		kind = KindImage
	}
	return &Token{
		Kind:  kind,
		Raw:   src[:hrefEnd+1],
		Text:  src[start:textEnd],
		Attrs: &LinkAttrs{Href: parseDestination(src[textEnd+2 : hrefEnd])},
	}, true
}

// parseDestination drops angle brackets and any trailing title.
func parseDestination(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") {
		if end := strings.IndexByte(s, '>'); end > 0 {
			return s[1:end]
		}
	}
	if i := strings.IndexAny(s, " \n"); i >= 0 {
		return s[:i]
	}
	return s
}

// refLinkToken matches [label], [text][label] and [text][], plus the image
// forms, and resolves the label against links right away.
func refLinkToken(src string, s *inlineScan) (*Token, bool) {
	start, image, ok := openBracket(src)
	if !ok {
		return nil, false
	}
	textLen := s.closingBracket(src, start, '[', ']')
	if textLen <= 0 {
		return nil, false
	}
	text := src[start : start+textLen]
	end := start + textLen + 1
	label := text
	if end < len(src) && src[end] == '[' {
		if n := strings.IndexAny(src[end+1:], "[]\n"); n >= 0 && src[end+1+n] == ']' {
			if n > 0 {
				label = src[end+1 : end+1+n]
			}
			end += n + 2
		}
	}
	tok := &Token{Kind: KindRefLink, Raw: src[:end], Text: text, Attrs: &LinkAttrs{Label: label}}
	resolveRefLink(tok, image, s.links)
	return tok, true
}

// resolveRefLink rewrites a reference link into a link or image when its
// label is defined, and into literal text otherwise.
func resolveRefLink(tok *Token, image bool, links *LinkTable) {
	href, ok := links.Lookup(tok.Link().Label)
	if !ok {
		tok.Kind = KindText
		tok.Text = tok.Raw
		tok.Attrs = nil
		return
	}
	tok.Kind = KindLink
	if image {
		tok.Kind = KindImage
	}
	tok.Link().Href = href
}

// delimitedToken matches text wrapped in exactly n identical emphasis
// markers. A run of a different length neither opens nor closes the span,
// so **a** never splits into nested single emphasis.
func delimitedToken(kind Kind, n int) inlineRule {
	return func(src string, s *inlineScan) (*Token, bool) {
		raw, inner, ok := s.delimited(src, n)
		if !ok {
			return nil, false
		}
		return &Token{Kind: kind, Raw: raw, Text: inner}, true
	}
}

// delimited matches a span wrapped in runs of exactly n markers. A failed
// scan is remembered: no later opener of the same run length can close
// past the point the scan covered outside code spans.
func (s *inlineScan) delimited(src string, n int) (raw, inner string, ok bool) {
	if len(src) < 2*n+1 {
		return "", "", false
	}
	marker := src[0]
	if marker != '*' && marker != '_' {
		return "", "", false
	}
	if runLen(src, 0) != n || isSpace(src[n]) {
		return "", "", false
	}
	key := delimKey{marker: marker, n: n}
	off := s.offset(src)
	if from, failed := s.noDelim[key]; failed && off >= from {
		return "", "", false
	}
	skipped := 0
	for i := n; i < len(src); {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			if end := s.codeSpanEnd(src, i); end > 0 {
				i = end
				skipped = end
				continue
			}
			i += runLen(src, i)
			continue
		case marker:
			r := runLen(src, i)
			closes := r == n && i > n && !isSpace(src[i-1])
			if closes && marker == '_' && i+r < len(src) && isAlnumByte(src[i+r]) {
				closes = false
			}
			if closes {
				return src[:i+r], src[n:i], true
			}
			i += r
			continue
		}
		i++
	}
	remember(s.noDelim, key, off+skipped)
	return "", "", false
}

// codeSpanEnd returns the index just past the code span starting at i, or
// -1 when its backtick run is never closed by a run of the same length.
func codeSpanEnd(src string, i int) int {
	n := runLen(src, i)
	for j := i + n; j < len(src); {
		if src[j] != '`' {
			j++
			continue
		}
		r := runLen(src, j)
		if r == n {
			return j + r
		}
		j += r
	}
	return -1
}

func codeSpanToken(src string, s *inlineScan) (*Token, bool) {
	if src == "" || src[0] != '`' {
		return nil, false
	}
	end := s.codeSpanEnd(src, 0)
	if end < 0 {
		return nil, false
	}
	n := runLen(src, 0)
	text := strings.ReplaceAll(src[n:end-n], "\n", " ")
	if len(text) > 2 && text[0] == ' ' && text[len(text)-1] == ' ' && strings.TrimSpace(text) != "" {
		text = text[1 : len(text)-1]
	}
	return &Token{Kind: KindCodeSpan, Raw: src[:end], Text: text}, true
}

// inlineTextToken is the fallback. It consumes at least one byte, a whole
// marker run when src starts with one, and stops before the next byte that
// could open another span. An underscore only stops the run at a word
// boundary.
func inlineTextToken(src string, _ *inlineScan) (*Token, bool) {
	if src == "" {
		return nil, false
	}
	i := 1
	switch src[0] {
	case '*', '_', '`':
		i = runLen(src, 0)
	}
	for ; i < len(src); i++ {
		c := src[i]
		if strings.IndexByte("\\<![`*", c) >= 0 {
			break
		}
		if c == '_' && !isAlnumByte(src[i-1]) {
			break
		}
	}
	return &Token{Kind: KindText, Raw: src[:i], Text: src[:i]}, true
}
