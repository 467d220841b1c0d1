package mdhtml

import (
	"regexp"
	"strings"
)

// match is the result of a rule: the consumed prefix and the captured
// sub-fields, in rule-specific order.
type match struct {
	raw    string
	groups []string
}

var (
	reNewline     = regexp.MustCompile(`^\n+`)
	reIndented    = regexp.MustCompile(`^(?: {4}[^\n]+\n*)+`)
	reFenceOpen   = regexp.MustCompile("^ {0,3}(`{3,})([^`\n]*)\n")
	reHeading     = regexp.MustCompile(`^ {0,3}(#{1,6}) +([^\n]*?) *(?:\n+|$)`)
	reHr          = regexp.MustCompile(`^ {0,3}(?:-{3,}|_{3,}|\*{3,}) *(?:\n+|$)`)
	reQuoteMarker = regexp.MustCompile(`^ {0,3}> ?`)
	reListItem    = regexp.MustCompile(`^( {0,3})([*+-]|\d{1,9}[.)]) ([^\n]*)(?:\n|$)`)
	reHTMLOpen    = regexp.MustCompile(`^ {0,3}(?:<[A-Za-z][A-Za-z0-9-]*(?:[ \t][^>\n]*)?/?>|</[A-Za-z][A-Za-z0-9-]*[ \t]*>|<!--)`)
	reLinkDef     = regexp.MustCompile(`^ {0,3}\[((?:\\.|[^\[\]\\\n])+)\]:[ ]*(?:\n[ ]*)?<?([^\s<>]+)>?(?:[ ]+(?:"[^"\n]*"|'[^'\n]*'|\([^)\n]*\)))?[ ]*(?:\n+|$)`)
	reSetext      = regexp.MustCompile(`^ {0,3}([^\n]+)\n {0,3}(=+|-+) *(?:\n+|$)`)
)

func matchRegexp(re *regexp.Regexp, src string) (match, bool) {
	m := re.FindStringSubmatch(src)
	if m == nil || m[0] == "" {
		return match{}, false
	}
	return match{raw: m[0], groups: m[1:]}, true
}

func matchNewline(src string) (match, bool) {
	return matchRegexp(reNewline, src)
}

func matchIndentedCode(src string) (match, bool) {
	return matchRegexp(reIndented, src)
}

// matchFence captures the fence marker, the info string and the body. An
// unterminated fence runs to the end of src.
func matchFence(src string) (match, bool) {
	m := reFenceOpen.FindStringSubmatch(src)
	if m == nil {
		return match{}, false
	}
	marker, info := m[1], m[2]
	body := src[len(m[0]):]
	for pos := 0; pos < len(body); {
		next := pos + lineLen(body[pos:])
		if isClosingFence(body[pos:next], marker) {
			return match{
				raw:    src[:len(m[0])+next],
				groups: []string{marker, info, body[:pos]},
			}, true
		}
		pos = next
	}
	return match{raw: src, groups: []string{marker, info, body}}, true
}

func isClosingFence(line, marker string) bool {
	line = strings.TrimSuffix(line, "\n")
	if leadingSpaces(line) > 3 {
		return false
	}
	return strings.TrimRight(strings.TrimLeft(line, " "), " ") == marker
}

// matchHeading captures the run of hashes and the heading text with the
// closing sequence removed.
func matchHeading(src string) (match, bool) {
	m, ok := matchRegexp(reHeading, src)
	if !ok {
		return match{}, false
	}
	m.groups[1] = stripClosingHashes(m.groups[1])
	return m, true
}

func stripClosingHashes(text string) string {
	text = strings.TrimRight(text, " ")
	trimmed := strings.TrimRight(text, "#")
	if trimmed == text {
		return text
	}
	if trimmed == "" || strings.HasSuffix(trimmed, " ") {
		return strings.TrimRight(trimmed, " ")
	}
	return text
}

func matchThematicBreak(src string) (match, bool) {
	return matchRegexp(reHr, src)
}

// matchBlockquote consumes consecutive quote segments. Each segment is a
// marker followed either by a paragraph, which brings its lazy
// continuation lines along, or by the rest of the line.
func matchBlockquote(src string) (match, bool) {
	pos := 0
	for pos < len(src) {
		marker := reQuoteMarker.FindString(src[pos:])
		if marker == "" {
			break
		}
		content := src[pos+len(marker):]
		if p, ok := matchParagraph(content); ok {
			pos += len(marker) + len(p.raw)
			continue
		}
		pos += len(marker) + lineLen(content)
	}
	if pos == 0 {
		return match{}, false
	}
	return match{raw: src[:pos]}, true
}

type listItemMatch struct {
	raw     string
	bullet  string
	ordered bool
	content string
}

// matchListItem consumes a list marker line plus the lines indented at
// least to the item's content column. Blank lines are kept only when more
// item content follows them. The content is returned de-indented.
func matchListItem(src string) (listItemMatch, bool) {
	m := reListItem.FindStringSubmatch(src)
	if m == nil {
		return listItemMatch{}, false
	}
	width := len(m[1]) + len(m[2]) + 1
	item := listItemMatch{bullet: m[2], content: m[3]}
	if c := m[2][len(m[2])-1]; c == '.' || c == ')' {
		item.ordered = true
		item.bullet = m[2][:len(m[2])-1]
	}
	var content strings.Builder
	content.WriteString(m[3])
	if strings.HasSuffix(m[0], "\n") {
		content.WriteByte('\n')
	}
	pos := len(m[0])
	for pos < len(src) {
		rest := src[pos:]
		if rest[0] == '\n' {
			gap := len(rest) - len(strings.TrimLeft(rest, "\n"))
			if pos+gap >= len(src) || leadingSpaces(src[pos+gap:]) < width {
				break
			}
			content.WriteString(rest[:gap])
			pos += gap
			continue
		}
		if leadingSpaces(rest) < width {
			break
		}
		n := lineLen(rest)
		content.WriteString(rest[width:n])
		pos += n
	}
	item.raw = src[:pos]
	item.content = content.String()
	return item, true
}

type listMatch struct {
	raw     string
	bullet  string
	ordered bool
	items   []string
}

// matchList folds consecutive items into one list while the bullet type
// matches: any ordinal continues an ordered list, unordered bullets must be
// identical.
func matchList(src string) (listMatch, bool) {
	first, ok := matchListItem(src)
	if !ok {
		return listMatch{}, false
	}
	l := listMatch{bullet: first.bullet, ordered: first.ordered, items: []string{first.content}}
	pos := len(first.raw)
	for pos < len(src) {
		gap := len(src[pos:]) - len(strings.TrimLeft(src[pos:], "\n"))
		next, ok := matchListItem(src[pos+gap:])
		if !ok || !l.sameType(next) {
			break
		}
		l.items = append(l.items, next.content)
		pos += gap + len(next.raw)
	}
	l.raw = src[:pos]
	return l, true
}

func (l listMatch) sameType(item listItemMatch) bool {
	if l.ordered {
		return item.ordered
	}
	return !item.ordered && item.bullet == l.bullet
}

// matchHTMLBlock consumes from an opening tag through the next blank line.
func matchHTMLBlock(src string) (match, bool) {
	if !reHTMLOpen.MatchString(src) {
		return match{}, false
	}
	if end := strings.Index(src, "\n\n"); end >= 0 {
		return match{raw: src[:end+1]}, true
	}
	return match{raw: src}, true
}

// matchLinkDefinition captures the label and the destination.
func matchLinkDefinition(src string) (match, bool) {
	return matchRegexp(reLinkDef, src)
}

// matchTable is reserved; tables are not parsed.
func matchTable(string) (match, bool) {
	return match{}, false
}

// matchSetextHeading captures the underline and the heading text.
func matchSetextHeading(src string) (match, bool) {
	m, ok := matchRegexp(reSetext, src)
	if !ok {
		return match{}, false
	}
	return match{raw: m.raw, groups: []string{m.groups[1], m.groups[0]}}, true
}

// matchParagraph consumes the first line and every following line up to
// one that starts another block.
func matchParagraph(src string) (match, bool) {
	if src == "" || src[0] == '\n' {
		return match{}, false
	}
	pos := lineLen(src)
	for pos < len(src) && !interruptsParagraph(src[pos:]) {
		pos += lineLen(src[pos:])
	}
	return match{raw: src[:pos]}, true
}

func interruptsParagraph(src string) bool {
	return src[0] == '\n' ||
		reHr.MatchString(src) ||
		reHeading.MatchString(src) ||
		reSetext.MatchString(src) ||
		reQuoteMarker.MatchString(src) ||
		reFenceOpen.MatchString(src) ||
		reListItem.MatchString(src) ||
		reHTMLOpen.MatchString(src)
}

// matchLine is the fallback: the current line, verbatim.
func matchLine(src string) (match, bool) {
	if src == "" {
		return match{}, false
	}
	return match{raw: src[:lineLen(src)]}, true
}
