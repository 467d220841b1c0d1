package mdhtml

import (
	"reflect"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		vars map[string]string
		body string
	}{
		{
			name: "leading blank line",
			src:  "\n---\ntitle: Hello\nslug: home\n---\n<h1>Hello world!</h1>",
			vars: map[string]string{"title": "Hello", "slug": "home"},
			body: "<h1>Hello world!</h1>",
		},
		{
			name: "crlf and padding",
			src:  "---\r\n  title :  A: B  \r\n---\r\n\r\n# Body\r\n",
			vars: map[string]string{"title": "A: B"},
			body: "# Body\n",
		},
		{
			name: "blank header lines",
			src:  "---\n\na: 1\n\n---\nx",
			vars: map[string]string{"a": "1"},
			body: "x",
		},
		{
			name: "empty header",
			src:  "---\n---\nbody",
			vars: map[string]string{},
			body: "body",
		},
		{
			name: "closing delimiter at end",
			src:  "---\na: 1\n---",
			vars: map[string]string{"a": "1"},
			body: "",
		},
		{
			name: "byte order mark",
			src:  "\ufeff---\na: 1\n---\nx",
			vars: map[string]string{"a": "1"},
			body: "x",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fm, ok := ParseFrontMatter(tc.src)
			if !ok {
				t.Fatalf("expected front matter")
			}
			if !reflect.DeepEqual(fm.Variables, tc.vars) {
				t.Fatalf("variables: want %v got %v", tc.vars, fm.Variables)
			}
			if fm.Body != tc.body {
				t.Fatalf("body: want %q got %q", tc.body, fm.Body)
			}
		})
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"no header":           "# Title\n",
		"unterminated":        "---\ntitle: Post\n",
		"body inside header":  "---\ntitle: Post\n\n# Hello\n",
		"not key value":       "---\n# Keep\n---\n\nTail\n",
		"key with dash":       "---\nmy-key: x\n---\n",
		"empty value":         "---\ntitle:\n---\n",
		"delimiter not first": "# Intro\n\n---\ntitle: x\n---\n",
		"empty":               "",
	}
	for name, src := range tests {
		if _, ok := ParseFrontMatter(src); ok {
			t.Fatalf("%s: unexpected front matter in %q", name, src)
		}
	}
}
