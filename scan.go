package mdhtml

import "strings"

// findClosingBracket returns the index in src of the bracket that closes
// an already consumed opening bracket, or -1. Nested pairs are depth
// tracked and a backslash escapes the byte after it.
func findClosingBracket(src string, open, close byte) int {
	if strings.IndexByte(src, close) < 0 {
		return -1
	}
	level := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case open:
			level++
		case close:
			level--
			if level < 0 {
				return i
			}
		}
	}
	return -1
}

// lineLen returns the length of the first line of src including its line
// break, if any.
func lineLen(src string) int {
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return i + 1
	}
	return len(src)
}

// runLen counts the bytes equal to src[i] starting at i.
func runLen(src string, i int) int {
	if i >= len(src) {
		return 0
	}
	c := src[i]
	n := 0
	for i+n < len(src) && src[i+n] == c {
		n++
	}
	return n
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// isAlnumByte treats every non-ASCII byte as alphanumeric so that
// underscores between multibyte letters stay intraword.
func isAlnumByte(b byte) bool {
	return b >= 0x80 ||
		(b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
