package mdhtml

// inlineScan is the state of one inlineTokens pass over a payload. It keeps
// the link scope and remembers scans that cannot succeed anywhere later in
// the payload, so unclosed markers and brackets cost linear time overall.
type inlineScan struct {
	payload string
	links   *LinkTable

	brackets map[int]int
	parens   map[int]int
	// noDelim and noCode hold, per run, the payload offset from which a
	// closing run is known not to exist.
	noDelim map[delimKey]int
	noCode  map[int]int
}

type delimKey struct {
	marker byte
	n      int
}

func newInlineScan(payload string, links *LinkTable) *inlineScan {
	return &inlineScan{
		payload: payload,
		links:   links,
		noDelim: make(map[delimKey]int),
		noCode:  make(map[int]int),
	}
}

// offset is the payload offset of src, a suffix of the payload.
func (s *inlineScan) offset(src string) int {
	return len(s.payload) - len(src)
}

// remember records that scans for key fail from offset from onwards.
func remember[K comparable](failed map[K]int, key K, from int) {
	if prev, ok := failed[key]; ok && prev <= from {
		return
	}
	failed[key] = from
}

// closingBracket is findClosingBracket(src[from:], open, close) answered
// from a table of matching pairs built once per payload. The opening
// bracket is src[from-1].
func (s *inlineScan) closingBracket(src string, from int, open, close byte) int {
	table := &s.brackets
	if open == '(' {
		table = &s.parens
	}
	if *table == nil {
		*table = matchBrackets(s.payload, open, close)
	}
	base := s.offset(src) + from
	end, ok := (*table)[base-1]
	if !ok {
		return findClosingBracket(src[from:], open, close)
	}
	if end < 0 {
		return -1
	}
	return end - base
}

// codeSpanEnd is codeSpanEnd with failures remembered per run length.
func (s *inlineScan) codeSpanEnd(src string, i int) int {
	n := runLen(src, i)
	abs := s.offset(src) + i
	if from, failed := s.noCode[n]; failed && abs >= from {
		return -1
	}
	end := codeSpanEnd(src, i)
	if end < 0 {
		remember(s.noCode, n, abs)
	}
	return end
}

// matchBrackets pairs every unescaped open byte in src with the close byte
// that balances it, or -1. Escapes are skipped the way findClosingBracket
// skips them.
func matchBrackets(src string, open, close byte) map[int]int {
	matches := make(map[int]int)
	var stack []int
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case open:
			matches[i] = -1
			stack = append(stack, i)
		case close:
			if n := len(stack); n > 0 {
				matches[stack[n-1]] = i
				stack = stack[:n-1]
			}
		}
	}
	return matches
}
