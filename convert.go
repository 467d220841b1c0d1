package mdhtml

import (
	"errors"
	"fmt"
	"io"
)

// MaxInputBytes caps how much of a document Convert reads.
const MaxInputBytes = 16 << 20

// ErrInputTooLarge reports a document longer than MaxInputBytes.
var ErrInputTooLarge = errors.New("input too large")

// ConvertRequest configures Convert.
type ConvertRequest struct {
	Reader io.Reader
	Writer io.Writer
	// KeepFrontMatter renders a leading metadata header as Markdown
	// instead of removing it.
	KeepFrontMatter bool
	Options         []RenderOption
}

// Convert reads a Markdown document, validates it, removes its front
// matter and writes the rendered HTML followed by a newline. The returned
// FrontMatter is empty when the document has none.
func Convert(req ConvertRequest) (FrontMatter, error) {
	if req.Reader == nil {
		return FrontMatter{}, fmt.Errorf("convert: reader is nil")
	}
	if req.Writer == nil {
		return FrontMatter{}, fmt.Errorf("convert: writer is nil")
	}
	src, err := ReadDocument(req.Reader)
	if err != nil {
		return FrontMatter{}, fmt.Errorf("convert: %w", err)
	}
	doc := string(src)
	var fm FrontMatter
	if !req.KeepFrontMatter {
		if parsed, ok := ParseFrontMatter(doc); ok {
			fm, doc = parsed, parsed.Body
		}
	}
	out, err := HTML(doc, req.Options...)
	if err != nil {
		return FrontMatter{}, fmt.Errorf("convert: %w", err)
	}
	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(req.Writer, out); err != nil {
		return FrontMatter{}, fmt.Errorf("convert: write: %w", err)
	}
	return fm, nil
}

// ReadDocument reads all of r and validates it as Markdown input. It fails
// with ErrInputTooLarge once more than MaxInputBytes arrive, and with
// ValidateInput's errors for binary or invalid UTF-8 input.
func ReadDocument(r io.Reader) ([]byte, error) {
	src, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(src) > MaxInputBytes {
		return nil, ErrInputTooLarge
	}
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	return src, nil
}
