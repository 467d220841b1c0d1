package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdhtml"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdhtml")
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mdhtml: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	debug bool
}

type renderFlags struct {
	outPath         string
	style           string
	inlineStyles    bool
	keepFrontMatter bool
	printMeta       bool
}

func (f *renderFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&f.style, "style", "s", mdhtml.DefaultHighlightStyle, "Highlight style for code blocks")
	flags.BoolVar(&f.inlineStyles, "inline-styles", false, "Emit inline styles instead of CSS classes")
	flags.BoolVar(&f.keepFrontMatter, "keep-front-matter", false, "Render a leading front matter header as Markdown")
	flags.BoolVar(&f.printMeta, "front-matter", false, "Print stripped front matter as an HTML comment")
}

func (f *renderFlags) options() ([]mdhtml.RenderOption, error) {
	if _, ok := mdhtml.HighlightStyleByName(f.style); !ok {
		return nil, fmt.Errorf("unknown style %q", f.style)
	}
	return []mdhtml.RenderOption{
		mdhtml.WithHighlighter(mdhtml.ChromaHighlighter{Style: f.style, InlineStyles: f.inlineStyles}),
	}, nil
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var global globalFlags
	var rf renderFlags
	root := &cobra.Command{
		Use:           "mdhtml [flags] [inputs...]",
		Short:         "Render Markdown to HTML",
		Long:          "Render Markdown to HTML.\n\nInputs are files, file:// or http(s):// URLs. If no input is provided, Markdown is read from stdin.",
		Version:       version.Current(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(stderr, global.debug)
			logrus.Debugf("%s %s: %s", version.Module(), version.Current(), cmd.CommandPath())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(stdout, args, rf)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&global.debug, "debug", false, "Log debug output to stderr")
	rf.register(root.Flags())

	root.AddCommand(
		newRenderCommand(stdout),
		newTokensCommand(stdout),
		newServeCommand(),
		newStylesCommand(stdout),
	)
	return root
}

func configureLogging(w io.Writer, debug bool) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

func newRenderCommand(stdout io.Writer) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "render [inputs...]",
		Short: "Render Markdown to HTML (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(stdout, args, rf)
		},
	}
	rf.register(cmd.Flags())
	return cmd
}

func runRender(stdout io.Writer, args []string, rf renderFlags) error {
	opts, err := rf.options()
	if err != nil {
		return err
	}
	reader, closer, err := openInputs(args)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	writer, closeOut, err := resolveOutput(stdout, rf.outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	var body strings.Builder
	fm, err := mdhtml.Convert(mdhtml.ConvertRequest{
		Reader:          reader,
		Writer:          &body,
		KeepFrontMatter: rf.keepFrontMatter,
		Options:         opts,
	})
	if err != nil {
		return err
	}
	logrus.Debugf("rendered %d bytes, %d front matter variables", body.Len(), len(fm.Variables))
	if rf.printMeta && len(fm.Variables) > 0 {
		if _, err := io.WriteString(writer, frontMatterComment(fm)); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if _, err := io.WriteString(writer, body.String()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// frontMatterComment formats front matter variables as an HTML comment with
// one sorted key per line.
func frontMatterComment(fm mdhtml.FrontMatter) string {
	var b strings.Builder
	b.WriteString("<!--\n")
	for _, key := range sortedKeys(fm.Variables) {
		value := strings.ReplaceAll(fm.Variables[key], "--", "- -")
		fmt.Fprintf(&b, "%s: %s\n", key, value)
	}
	b.WriteString("-->\n")
	return b.String()
}

func newTokensCommand(stdout io.Writer) *cobra.Command {
	var (
		asYAML    bool
		widthFlag int
	)
	cmd := &cobra.Command{
		Use:   "tokens [inputs...]",
		Short: "Print the token tree of a Markdown document",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, closer, err := openInputs(args)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			if closer != nil {
				defer func() { _ = closer.Close() }()
			}
			src, err := mdhtml.ReadDocument(reader)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}
			tokens, err := mdhtml.Lex(string(src))
			if err != nil {
				return err
			}
			if asYAML {
				return mdhtml.DumpYAML(stdout, tokens)
			}
			return mdhtml.Dump(stdout, tokens, mdhtml.DumpOptions{
				Width:      resolveWidth(stdout, widthFlag),
				Hyperlinks: isTerminal(stdout) && mdhtml.DetectOSC8Support(),
			})
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the tree as YAML")
	cmd.Flags().IntVarP(&widthFlag, "width", "w", 0, "Truncate lines to this width (0 uses terminal width if available)")
	return cmd
}

func newStylesCommand(stdout io.Writer) *cobra.Command {
	var cssFor string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List highlight styles or print the stylesheet of one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cssFor != "" {
				return mdhtml.HighlightCSS(stdout, cssFor)
			}
			for _, name := range mdhtml.HighlightStyles() {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cssFor, "css", "", "Print the CSS of the named style")
	return cmd
}

// resolveWidth returns width when positive, else the terminal width when w
// is a terminal, else $COLUMNS, else defaultWidth.
func resolveWidth(w io.Writer, width int) int {
	if width > 0 {
		return width
	}
	if isTerminal(w) {
		fd := int(w.(*os.File).Fd())
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
