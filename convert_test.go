package mdhtml

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		req     ConvertRequest
		want    string
		// partial compares with strings.Contains.
		partial bool
		vars    map[string]string
	}{
		{
			name: "front matter removed",
			req:  ConvertRequest{Reader: strings.NewReader("---\ntitle: Post\n---\n# Hello\n")},
			want: "<h1>Hello</h1>\n",
			vars: map[string]string{"title": "Post"},
		},
		{
			name:    "front matter kept",
			req:     ConvertRequest{Reader: strings.NewReader("---\ntitle: Post\n---\n# Hello\n"), KeepFrontMatter: true},
			want:    "<h1>Hello</h1>",
			partial: true,
		},
		{
			name: "no front matter",
			req:  ConvertRequest{Reader: strings.NewReader("text")},
			want: "<p>text</p>\n",
		},
		{
			name: "empty document",
			req:  ConvertRequest{Reader: strings.NewReader("")},
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			tc.req.Writer = &out
			fm, err := Convert(tc.req)
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			if tc.partial && strings.Contains(out.String(), "title: Post") && strings.Contains(out.String(), tc.want) {
				return
			}
			if out.String() != tc.want {
				t.Fatalf("output mismatch\nwant: %q\n got: %q", tc.want, out.String())
			}
			if len(fm.Variables) != len(tc.vars) {
				t.Fatalf("variables: want %v got %v", tc.vars, fm.Variables)
			}
			for k, v := range tc.vars {
				if fm.Variables[k] != v {
					t.Fatalf("variable %s: want %q got %q", k, v, fm.Variables[k])
				}
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if _, err := Convert(ConvertRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if _, err := Convert(ConvertRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	_, err := Convert(ConvertRequest{Reader: bytes.NewReader([]byte{0xff}), Writer: &out})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	_, err = Convert(ConvertRequest{Reader: strings.NewReader(strings.Repeat("a", MaxInputBytes+1)), Writer: &out})
	if !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("failed conversions must not write, got %q", out.String())
	}
}

func TestReadDocument(t *testing.T) {
	t.Parallel()
	src, err := ReadDocument(strings.NewReader("# ok\n"))
	if err != nil || string(src) != "# ok\n" {
		t.Fatalf("unexpected result %q, %v", src, err)
	}
	// Truncating at the limit would split the final rune.
	big := "a" + strings.Repeat("é", MaxInputBytes/2)
	if _, err := ReadDocument(strings.NewReader(big)); !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if _, err := ReadDocument(strings.NewReader("ok\x00")); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestHTTPConvert(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc.md":
			_, _ = w.Write([]byte("---\ntitle: Remote\n---\n**hi**\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	fm, err := HTTPConvert(context.Background(), HTTPConvertRequest{
		URL:     srv.URL + "/doc.md",
		Client:  srv.Client(),
		Writer:  &out,
		Options: []RenderOption{WithHighlighter(PlainHighlighter)},
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if want := "<p>\n  <strong>hi</strong>\n</p>\n"; out.String() != want {
		t.Fatalf("output mismatch\nwant: %q\n got: %q", want, out.String())
	}
	if fm.Variables["title"] != "Remote" {
		t.Fatalf("unexpected front matter %v", fm.Variables)
	}

	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: srv.URL + "/missing", Writer: &out}); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{URL: "ftp://example.com/x", Writer: &out}); err == nil {
		t.Fatalf("expected scheme error")
	}
	if _, err := HTTPConvert(context.Background(), HTTPConvertRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
}

func TestHTTPConvertHonorsContext(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	_, err := HTTPConvert(ctx, HTTPConvertRequest{URL: srv.URL, Writer: &out})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
