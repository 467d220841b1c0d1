package mdhtml

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	highlighter Highlighter
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{highlighter: ChromaHighlighter{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.highlighter == nil {
		cfg.highlighter = PlainHighlighter
	}
	return cfg
}

// WithHighlighter sets the highlighter used for code blocks. A nil
// highlighter leaves code escaped but otherwise plain.
func WithHighlighter(h Highlighter) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlighter = h
	}
}

// WithHighlightStyle highlights code blocks with chroma using the named
// style and class-based markup.
func WithHighlightStyle(name string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlighter = ChromaHighlighter{Style: name}
	}
}
