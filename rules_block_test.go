package mdhtml

import (
	"reflect"
	"testing"
)

func TestMatchIndentedCode(t *testing.T) {
	t.Parallel()
	m, ok := matchIndentedCode("    this is code\n    this is next line\n   how what")
	if !ok {
		t.Fatalf("expected match")
	}
	if want := "    this is code\n    this is next line\n"; m.raw != want {
		t.Fatalf("raw: want %q got %q", want, m.raw)
	}
	if _, ok := matchIndentedCode("   three spaces\n"); ok {
		t.Fatalf("three spaces must not start a code block")
	}
}

func TestMatchFence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		raw  string
		info string
		body string
	}{
		{
			name: "closed",
			src:  "  ``` javascript\n this is code block\n next line \n```\n",
			raw:  "  ``` javascript\n this is code block\n next line \n```\n",
			info: " javascript",
			body: " this is code block\n next line \n",
		},
		{
			name: "unterminated",
			src:  "  ```\n this is code block\n next line \n",
			raw:  "  ```\n this is code block\n next line \n",
			body: " this is code block\n next line \n",
		},
		{
			name: "shorter closing run",
			src:  "  ``` javascript\n this is code block\n next line \n``",
			raw:  "  ``` javascript\n this is code block\n next line \n``",
			info: " javascript",
			body: " this is code block\n next line \n``",
		},
		{
			name: "stops at closing fence",
			src:  "````\na\n````\ntail\n",
			raw:  "````\na\n````\n",
			body: "a\n",
		},
		{
			name: "longer run does not close",
			src:  "```\na\n````\n```\n",
			raw:  "```\na\n````\n```\n",
			body: "a\n````\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, ok := matchFence(tc.src)
			if !ok {
				t.Fatalf("expected match")
			}
			if m.raw != tc.raw {
				t.Fatalf("raw: want %q got %q", tc.raw, m.raw)
			}
			if m.groups[1] != tc.info {
				t.Fatalf("info: want %q got %q", tc.info, m.groups[1])
			}
			if m.groups[2] != tc.body {
				t.Fatalf("body: want %q got %q", tc.body, m.groups[2])
			}
		})
	}
}

func TestMatchThematicBreak(t *testing.T) {
	t.Parallel()
	for _, src := range []string{" ------\n", "___\n", "****\n", "---"} {
		m, ok := matchThematicBreak(src)
		if !ok {
			t.Fatalf("%q: expected match", src)
		}
		if m.raw != src {
			t.Fatalf("%q: raw %q", src, m.raw)
		}
	}
	for _, src := range []string{"--\n", "-*-\n", "    ---\n"} {
		if _, ok := matchThematicBreak(src); ok {
			t.Fatalf("%q: unexpected match", src)
		}
	}
}

func TestMatchHeading(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src    string
		hashes string
		text   string
	}{
		{src: "  # TITLE#1\n", hashes: "#", text: "TITLE#1"},
		{src: "  ## TITLE#2  \n", hashes: "##", text: "TITLE#2"},
		{src: "  ###### TITLE#3  \n", hashes: "######", text: "TITLE#3"},
		{src: "### closed ###\n", hashes: "###", text: "closed"},
		{src: "# #\n", hashes: "#", text: ""},
		{src: "# ", hashes: "#", text: ""},
	}
	for _, tc := range tests {
		m, ok := matchHeading(tc.src)
		if !ok {
			t.Fatalf("%q: expected match", tc.src)
		}
		if m.groups[0] != tc.hashes || m.groups[1] != tc.text {
			t.Fatalf("%q: got %q", tc.src, m.groups)
		}
	}
	for _, src := range []string{"####### TITLE#FAIL  \n", "#nospace\n"} {
		if _, ok := matchHeading(src); ok {
			t.Fatalf("%q: unexpected match", src)
		}
	}
}

func TestMatchBlockquote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src string
		raw string
	}{
		{src: "> a\n> b\n\nafter\n", raw: "> a\n> b\n"},
		{src: "> a\nlazy\n\nafter\n", raw: "> a\nlazy\n"},
		{src: ">\n> b\n", raw: ">\n> b\n"},
		{src: "> a\n# heading\n", raw: "> a\n"},
	}
	for _, tc := range tests {
		m, ok := matchBlockquote(tc.src)
		if !ok {
			t.Fatalf("%q: expected match", tc.src)
		}
		if m.raw != tc.raw {
			t.Fatalf("%q: want %q got %q", tc.src, tc.raw, m.raw)
		}
	}
}

func TestMatchList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		raw     string
		bullet  string
		ordered bool
		items   []string
	}{
		{
			name:   "unordered",
			src:    "* a\n* b\n",
			raw:    "* a\n* b\n",
			bullet: "*",
			items:  []string{"a\n", "b\n"},
		},
		{
			name:    "ordered",
			src:     "3. a\n4) b\n",
			raw:     "3. a\n4) b\n",
			bullet:  "3",
			ordered: true,
			items:   []string{"a\n", "b\n"},
		},
		{
			name:   "bullet type change ends list",
			src:    "* a\n1. b\n",
			raw:    "* a\n",
			bullet: "*",
			items:  []string{"a\n"},
		},
		{
			name:   "different bullet ends list",
			src:    "* a\n- b\n",
			raw:    "* a\n",
			bullet: "*",
			items:  []string{"a\n"},
		},
		{
			name:   "continuation lines are de-indented",
			src:    "- a\n  more\n    - nested\n- b\n",
			raw:    "- a\n  more\n    - nested\n- b\n",
			bullet: "-",
			items:  []string{"a\nmore\n  - nested\n", "b\n"},
		},
		{
			name:   "blank line between items",
			src:    "- a\n\n- b\n\nafter\n",
			raw:    "- a\n\n- b\n",
			bullet: "-",
			items:  []string{"a\n", "b\n"},
		},
		{
			name:   "blank line inside item",
			src:    "- a\n\n  b\n",
			raw:    "- a\n\n  b\n",
			bullet: "-",
			items:  []string{"a\n\nb\n"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l, ok := matchList(tc.src)
			if !ok {
				t.Fatalf("expected match")
			}
			if l.raw != tc.raw {
				t.Fatalf("raw: want %q got %q", tc.raw, l.raw)
			}
			if l.bullet != tc.bullet || l.ordered != tc.ordered {
				t.Fatalf("bullet: got %q ordered=%v", l.bullet, l.ordered)
			}
			if !reflect.DeepEqual(l.items, tc.items) {
				t.Fatalf("items: want %q got %q", tc.items, l.items)
			}
		})
	}
}

func TestMatchHTMLBlock(t *testing.T) {
	t.Parallel()
	m, ok := matchHTMLBlock("<div>\n<b>x</b>\n\npara\n")
	if !ok {
		t.Fatalf("expected match")
	}
	if want := "<div>\n<b>x</b>\n"; m.raw != want {
		t.Fatalf("raw: want %q got %q", want, m.raw)
	}
	if _, ok := matchHTMLBlock("<3 hearts\n"); ok {
		t.Fatalf("unexpected match for text starting with <")
	}
}

func TestMatchLinkDefinition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src   string
		label string
		href  string
	}{
		{src: "[Hashcash]: https://en.wikipedia.org/wiki/Hashcash\n", label: "Hashcash", href: "https://en.wikipedia.org/wiki/Hashcash"},
		{src: "[a b]: <http://x.test> \"title\"\n", label: "a b", href: "http://x.test"},
		{src: "  [x]:\n  /path\n", label: "x", href: "/path"},
	}
	for _, tc := range tests {
		m, ok := matchLinkDefinition(tc.src)
		if !ok {
			t.Fatalf("%q: expected match", tc.src)
		}
		if m.raw != tc.src || m.groups[0] != tc.label || m.groups[1] != tc.href {
			t.Fatalf("%q: got raw %q groups %q", tc.src, m.raw, m.groups)
		}
	}
	if _, ok := matchLinkDefinition("[x] not a definition\n"); ok {
		t.Fatalf("unexpected match")
	}
}

func TestMatchTableNeverMatches(t *testing.T) {
	t.Parallel()
	if _, ok := matchTable("| a | b |\n|---|---|\n"); ok {
		t.Fatalf("tables are not parsed")
	}
}

func TestMatchSetextHeading(t *testing.T) {
	t.Parallel()
	m, ok := matchSetextHeading("Title\n=====\n\nbody\n")
	if !ok {
		t.Fatalf("expected match")
	}
	if m.raw != "Title\n=====\n\n" || m.groups[0] != "=====" || m.groups[1] != "Title" {
		t.Fatalf("got raw %q groups %q", m.raw, m.groups)
	}
}

func TestMatchParagraph(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src string
		raw string
	}{
		{src: "a\nb\n\nc\n", raw: "a\nb\n"},
		{src: "a\n# h\n", raw: "a\n"},
		{src: "a\n> q\n", raw: "a\n"},
		{src: "a\n- item\n", raw: "a\n"},
		{src: "a\n```\ncode\n```\n", raw: "a\n"},
		{src: "a\n    indented\n", raw: "a\n    indented\n"},
		{src: "last", raw: "last"},
	}
	for _, tc := range tests {
		m, ok := matchParagraph(tc.src)
		if !ok {
			t.Fatalf("%q: expected match", tc.src)
		}
		if m.raw != tc.raw {
			t.Fatalf("%q: want %q got %q", tc.src, tc.raw, m.raw)
		}
	}
	if _, ok := matchParagraph("\nx"); ok {
		t.Fatalf("paragraph must not start with a blank line")
	}
}
