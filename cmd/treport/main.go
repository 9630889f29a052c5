// treport parses Tempest/stestr HTML result pages and reports pass/fail
// outcomes.
//
// Usage:
//
//	treport testr_results.html
//	treport https://logs.example.org/job/123/testr_results.html
//	treport --test
//
// Output modes (auto-detected):
//
//	terminal  styled Unicode output (default when TTY)
//	llm       terse plain text for pipelines (default when piped)
//	json      structured JSON for automation
//
// Exit codes: 0 parse OK with no failures, 1 report contains FAIL/ERROR
// entries, 2 fetch/parse/usage errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"treport/internal/config"
	"treport/internal/fetch"
	"treport/internal/ui"
	"treport/internal/version"
	"treport/pkg/render"
	"treport/pkg/tempest"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("treport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	formatFlag := fs.String("format", cfg.Format, "Output format: auto, terminal, llm, json")
	themeFlag := fs.String("theme", cfg.Theme, "Theme: default, orca, mono")
	timeoutFlag := fs.Duration("timeout", time.Duration(cfg.TimeoutSeconds)*time.Second, "Report download timeout")
	insecureFlag := fs.Bool("insecure", cfg.Insecure, "Skip TLS certificate verification")
	verboseFlag := fs.Bool("verbose", false, "Enable debug logging")
	selfTestFlag := fs.Bool("test", false, "Parse the bundled fixture pages and verify the results")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: treport [flags] <file-or-url>\n       treport --test\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logrus.SetOutput(stderr)
	logrus.SetLevel(logrus.WarnLevel)
	if *verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *versionFlag {
		fmt.Fprintln(stdout, "treport "+version.String())
		return 0
	}
	if *selfTestFlag {
		return runSelfTest(stdout, stderr)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	source := fs.Arg(0)

	mode := resolveFormat(*formatFlag, stdout)
	validFormats := map[string]bool{"terminal": true, "llm": true, "json": true}
	if !validFormats[mode] {
		fmt.Fprintf(stderr, "treport: unknown format %q (expected auto, terminal, llm, json)\n", *formatFlag)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := fetch.Options{Timeout: *timeoutFlag, Insecure: *insecureFlag}
	data, err := load(ctx, source, opts, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "treport: %v\n", err)
		return 2
	}

	report, err := tempest.Parse(data)
	if err != nil {
		fmt.Fprintf(stderr, "treport: %v\n", err)
		return 2
	}

	fmt.Fprint(stdout, selectRenderer(mode, *themeFlag, stdout).Render(source, report))
	if report.HasFailures() {
		return 1
	}
	return 0
}

// load fetches the source, with a progress spinner for URL downloads on a
// TTY. Local reads and piped runs go straight through.
func load(ctx context.Context, source string, opts fetch.Options, stdout io.Writer) ([]byte, error) {
	if fetch.IsURL(source) && isTTYWriter(stdout) {
		return ui.Fetch(ctx, source, func(ctx context.Context) ([]byte, error) {
			return fetch.Load(ctx, source, opts)
		})
	}
	return fetch.Load(ctx, source, opts)
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func selectRenderer(mode, themeName string, w io.Writer) render.Renderer {
	switch mode {
	case "json":
		return render.NewJSON()
	case "llm":
		return render.NewLLM()
	default:
		theme := render.ThemeByName(themeName)
		// Honor NO_COLOR
		if os.Getenv("NO_COLOR") != "" {
			theme = render.MonoTheme()
		}
		width := 80
		if f, ok := w.(*os.File); ok {
			if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
		return render.NewTerminal(theme, width)
	}
}

func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	// Auto-detect: TTY = terminal, piped = llm
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}
