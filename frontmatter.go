package mdhtml

import (
	"regexp"
	"strings"
)

const frontMatterDelimiter = "---"

var reFrontMatterVar = regexp.MustCompile(`^ *(\w+) *: *(.*\S) *$`)

// FrontMatter is the metadata header of a document.
type FrontMatter struct {
	Variables map[string]string
	// Body is the document with the header removed.
	Body string
}

// ParseFrontMatter splits a leading header of the form
//
//	---
//	title: Hello
//	slug: home
//	---
//
// from src. It reports false when src does not start with a header, when
// the header is never closed, or when any header line is not a key: value
// pair; the document is then meant to be used as is.
func ParseFrontMatter(src string) (FrontMatter, bool) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\t", "  ")
	src = strings.TrimLeft(trimBOM(src), " \n\r\f\v")

	open, pos, ok := nextLine(src, 0)
	if !ok || strings.TrimSpace(open) != frontMatterDelimiter {
		return FrontMatter{}, false
	}
	vars := make(map[string]string)
	for {
		line, next, ok := nextLine(src, pos)
		if !ok {
			return FrontMatter{}, false
		}
		pos = next
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == frontMatterDelimiter {
			break
		}
		m := reFrontMatterVar.FindStringSubmatch(line)
		if m == nil {
			return FrontMatter{}, false
		}
		vars[m[1]] = m[2]
	}
	return FrontMatter{Variables: vars, Body: strings.TrimLeft(src[pos:], "\n")}, true
}

// nextLine returns the line starting at start without its line break and
// the offset of the line after it. It reports false at the end of src.
func nextLine(src string, start int) (string, int, bool) {
	if start >= len(src) {
		return "", start, false
	}
	i := strings.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	end := start + i
	return trimCR(src[start:end]), end + 1, true
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
