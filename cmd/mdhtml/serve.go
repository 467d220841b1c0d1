package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"pkt.systems/mdhtml"
)

const (
	defaultAddr     = ":3000"
	shutdownTimeout = 5 * time.Second
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<link rel="stylesheet" href="/highlight.css">
</head>
<body>
%s</body>
</html>
`

func newServeCommand() *cobra.Command {
	var (
		addr  string
		style string
	)
	cmd := &cobra.Command{
		Use:   "serve SOURCE",
		Short: "Serve a Markdown file or URL as HTML, re-rendered on every request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := mdhtml.HighlightStyleByName(style); !ok {
				return fmt.Errorf("unknown style %q", style)
			}
			s := newServer(args[0], style)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.listenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")
	cmd.Flags().StringVarP(&style, "style", "s", mdhtml.DefaultHighlightStyle, "Highlight style for code blocks")
	return cmd
}

type server struct {
	source string
	style  string
	client *http.Client
}

func newServer(source, style string) *server {
	if !isURL(source) {
		source = filePath(source)
	}
	return &server{source: source, style: style, client: http.DefaultClient}
}

func (s *server) options() []mdhtml.RenderOption {
	return []mdhtml.RenderOption{mdhtml.WithHighlightStyle(s.style)}
}

// handler returns the routes wrapped in an access log written to
// accessLog.
func (s *server) handler(accessLog io.Writer) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	router.HandleFunc("/tokens", s.handleTokens).Methods(http.MethodGet)
	router.HandleFunc("/highlight.css", s.handleCSS).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Infof("Failed Request: (%d:%s) for %s:'%s'", http.StatusNotFound, http.StatusText(http.StatusNotFound), r.Method, r.URL.String())
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			path, err := route.GetPathTemplate()
			if err != nil {
				path = ""
			}
			logrus.Debugf("Path: %s", path)
			return nil
		})
	}
	return handlers.CombinedLoggingHandler(accessLog, router)
}

func (s *server) listenAndServe(ctx context.Context, addr string) error {
	accessLog := logrus.StandardLogger().Writer()
	defer accessLog.Close()
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler(accessLog),
		ReadHeaderTimeout: 20 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("serving %s on %s", s.source, addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// convert renders the source into w, fetching it again on every call.
func (s *server) convert(ctx context.Context, w io.Writer) (mdhtml.FrontMatter, error) {
	if isURL(s.source) {
		return mdhtml.HTTPConvert(ctx, mdhtml.HTTPConvertRequest{
			URL:     s.source,
			Client:  s.client,
			Writer:  w,
			Options: s.options(),
		})
	}
	f, err := os.Open(s.source)
	if err != nil {
		return mdhtml.FrontMatter{}, err
	}
	defer f.Close()
	return mdhtml.Convert(mdhtml.ConvertRequest{Reader: f, Writer: w, Options: s.options()})
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	fm, err := s.convert(r.Context(), &body)
	if err != nil {
		s.fail(w, "render", err)
		return
	}
	title := fm.Variables["title"]
	if title == "" {
		title = s.source
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, html.EscapeString(title), body.String())
}

func (s *server) handleTokens(w http.ResponseWriter, r *http.Request) {
	src, err := s.read(r.Context())
	if err != nil {
		s.fail(w, "read", err)
		return
	}
	tokens, err := mdhtml.Lex(src)
	if err != nil {
		s.fail(w, "lex", err)
		return
	}
	var out bytes.Buffer
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		err = mdhtml.DumpYAML(&out, tokens)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		err = mdhtml.Dump(&out, tokens, mdhtml.DumpOptions{})
	}
	if err != nil {
		s.fail(w, "dump", err)
		return
	}
	_, _ = w.Write(out.Bytes())
}

func (s *server) handleCSS(w http.ResponseWriter, _ *http.Request) {
	var out bytes.Buffer
	if err := mdhtml.HighlightCSS(&out, s.style); err != nil {
		s.fail(w, "css", err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write(out.Bytes())
}

// read returns the source document with its front matter removed.
func (s *server) read(ctx context.Context) (string, error) {
	var (
		reader io.Reader
		closer io.Closer
		err    error
	)
	if isURL(s.source) {
		reader, closer, err = openURL(ctx, s.client, s.source)
	} else {
		reader, closer, err = openFile(s.source)
	}
	if err != nil {
		return "", err
	}
	defer closer.Close()
	src, err := mdhtml.ReadDocument(reader)
	if err != nil {
		return "", err
	}
	if fm, ok := mdhtml.ParseFrontMatter(string(src)); ok {
		return fm.Body, nil
	}
	return string(src), nil
}

func (s *server) fail(w http.ResponseWriter, op string, err error) {
	logrus.WithError(err).WithField("source", s.source).Errorf("%s failed", op)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
