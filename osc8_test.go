package mdhtml

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectOSC8(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "empty", env: nil, want: false},
		{name: "disabled wins", env: map[string]string{"OSC8": "0", "WT_SESSION": "x"}, want: false},
		{name: "forced", env: map[string]string{"OSC8": "1"}, want: true},
		{name: "windows terminal", env: map[string]string{"WT_SESSION": "abc"}, want: true},
		{name: "wezterm", env: map[string]string{"TERM_PROGRAM": "WezTerm"}, want: true},
		{name: "kitty", env: map[string]string{"TERM": "xterm-kitty"}, want: true},
		{name: "new vte", env: map[string]string{"VTE_VERSION": "6003"}, want: true},
		{name: "old vte", env: map[string]string{"VTE_VERSION": "4200"}, want: false},
		{name: "bad vte", env: map[string]string{"VTE_VERSION": "x"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := detectOSC8(func(key string) string { return tc.env[key] })
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestHyperlink(t *testing.T) {
	t.Parallel()
	got := hyperlink("https://a.test/\x1bx", "a.test")
	want := "\x1b]8;;https://a.test/x\x1b\\a.test\x1b]8;;\x1b\\"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDumpHyperlinks(t *testing.T) {
	t.Parallel()
	tokens := mustLex(t, "[c](https://example.com/c)\n")
	var b bytes.Buffer
	if err := Dump(&b, tokens, DumpOptions{Hyperlinks: true}); err != nil {
		t.Fatalf("dump: %v", err)
	}
	link := hyperlink("https://example.com/c", "https://example.com/c")
	if !strings.Contains(b.String(), "link "+link+": c") {
		t.Fatalf("expected hyperlinked label, got %q", b.String())
	}
}
