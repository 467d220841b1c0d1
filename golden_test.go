package mdhtml

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Goldens are regenerated with: go run ./cmd/gen-golden
func TestRenderGolden(t *testing.T) {
	t.Parallel()
	paths, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no markdown files found under testdata")
	}
	sort.Strings(paths)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			goldenPath := strings.TrimSuffix(path, ".md") + ".html"
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("read golden %s: %v", goldenPath, err)
			}
			got := mustHTML(t, string(src)) + "\n"
			if got != string(want) {
				t.Fatalf("golden mismatch %s\n%s", goldenPath, firstDiff(string(want), got, 3))
			}
		})
	}
}

// firstDiff describes the first differing line of want and got with
// context lines around it.
func firstDiff(want, got string, context int) string {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")
	i := 0
	for i < len(wantLines) && i < len(gotLines) && wantLines[i] == gotLines[i] {
		i++
	}
	start := max(i-context, 0)
	var b strings.Builder
	fmt.Fprintf(&b, "first difference at line %d\n--- want\n", i+1)
	for j := start; j < min(i+context+1, len(wantLines)); j++ {
		b.WriteString(wantLines[j] + "\n")
	}
	b.WriteString("+++ got\n")
	for j := start; j < min(i+context+1, len(gotLines)); j++ {
		b.WriteString(gotLines[j] + "\n")
	}
	return b.String()
}
