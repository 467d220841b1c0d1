package mdhtml

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or appears to
// be binary: it holds a NUL, or at least 2% of a sample of 64 bytes or
// more are control characters other than line breaks and tabs.
func ValidateInput(src []byte) error {
	var v validator
	rest, err := v.addBytes(src)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return ErrInvalidUTF8
	}
	return nil
}

type validator struct {
	total   int
	control int
}

// addBytes validates the complete runes of b and returns the trailing
// bytes of an incomplete rune.
func (v *validator) addBytes(b []byte) ([]byte, error) {
	i := 0
	for i < len(b) {
		if !utf8.FullRune(b[i:]) {
			break
		}
		r, size := utf8.DecodeRune(b[i:])
		if err := v.addRune(r, size); err != nil {
			return nil, err
		}
		i += size
	}
	return b[i:], nil
}

func (v *validator) addRune(r rune, size int) error {
	if r == utf8.RuneError && size == 1 {
		return ErrInvalidUTF8
	}
	if r == 0 {
		return ErrBinaryInput
	}
	v.total += size
	if isControlRune(r) {
		v.control++
	}
	if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	return r < 0x20 || r == 0x7F
}
