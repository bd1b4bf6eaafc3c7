// jtol rewrites the output of tools such as GCC and Doxygen into a Visual
// Studio readable format. Pasting (or piping) the result into the Visual
// Studio output window turns each diagnostic into a jump-to-line link.
//
// Usage:
//
//	jtol -f gcc_output.txt -d ./src -p src/pro/ -m 4 -s
//	gcc ... 2>&1 | jtol
//
// A diagnostic line such as
//
//	src/app/main.c:124:43: warning: unused parameter 'state'
//
// becomes
//
//	src/app/main.c(124,43): warning: unused parameter 'state'
//
// Diagnostics are grouped into severity runs with banner separators and a
// final totals line is appended.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"golang.org/x/term"

	"github.com/kzachmann/jtol/internal/config"
	"github.com/kzachmann/jtol/internal/decode"
	"github.com/kzachmann/jtol/internal/progress"
	"github.com/kzachmann/jtol/internal/resolve"
	"github.com/kzachmann/jtol/internal/version"
	"github.com/kzachmann/jtol/pkg/engine"
	"github.com/kzachmann/jtol/pkg/render"
)

// Exit codes, stable for build-script consumption.
const (
	exitOK       = 0
	exitUsage    = 1
	exitNotExist = 2
	exitRead     = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line merged with .jtol.yaml defaults.
type options struct {
	file     string
	dir      string
	prefix   string
	multi    int
	suppress bool
	compact  bool
	quiet    bool
	theme    string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code := parseArgs(args, stderr)
	if code >= 0 {
		return code
	}

	in := stdin
	inputName := "<stdin>"
	var info os.FileInfo
	if opts.file != "" {
		fi, err := os.Stat(opts.file)
		if err != nil || fi.IsDir() {
			printError(stderr, fmt.Sprintf("--file: <%s>, file does not exist!", opts.file))
			return exitNotExist
		}
		f, err := os.Open(opts.file)
		if err != nil {
			printError(stderr, fmt.Sprintf("--file: <%s>: %v", opts.file, err))
			return exitNotExist
		}
		defer f.Close()
		in = f
		info = fi
		inputName = opts.file
	}

	if opts.dir != "" {
		fi, err := os.Stat(opts.dir)
		if err != nil || !fi.IsDir() {
			printError(stderr, fmt.Sprintf("--dir: <%s>, directory does not exist!", opts.dir))
			return exitNotExist
		}
	}

	printOptionsBanner(stdout, opts, inputName, info)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engOpts := engine.Options{
		Prefix:             opts.prefix,
		MaxContext:         opts.multi,
		SuppressDuplicates: opts.suppress,
		Compact:            opts.compact,
	}
	if opts.dir != "" {
		engOpts.ResolvePath = resolve.New(opts.dir).Resolve
	}

	var ind *progress.Indicator
	if isTTYWriter(stderr) {
		ind = progress.New(stderr)
		ind.Start()
	}

	_, err := engine.Run(ctx, decode.NewReader(in), stdout, engOpts, selectStyle(opts.theme, stdout))

	if ind != nil {
		ind.Stop()
	}

	if err != nil {
		if ctx.Err() != nil {
			return 130
		}
		printError(stderr, fmt.Sprintf("reading <%s>: %v", inputName, err))
		return exitRead
	}
	return exitOK
}

// parseArgs merges flag values over config-file defaults.
// Returns (opts, -1) on success; (zero, exitCode) on error.
func parseArgs(args []string, stderr io.Writer) (options, int) {
	cfg := config.Load()
	opts := options{
		prefix:   cfg.Prefix,
		multi:    cfg.Multi,
		suppress: cfg.SuppressDuplicates,
		compact:  cfg.Compact,
		quiet:    cfg.Quiet,
		theme:    cfg.Theme,
	}
	if opts.theme == "" {
		opts.theme = "auto"
	}

	fs := flag.NewFlagSet("jtol", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", opts.file, "file containing the tool output (default: stdin)")
	fs.StringVar(&opts.file, "f", opts.file, "shorthand for --file")
	fs.StringVar(&opts.dir, "dir", opts.dir, "working directory for bare-filename resolution (can be slow)")
	fs.StringVar(&opts.dir, "d", opts.dir, "shorthand for --dir")
	fs.StringVar(&opts.prefix, "prefix", opts.prefix, "prefix prepended to every rewritten path")
	fs.StringVar(&opts.prefix, "p", opts.prefix, "shorthand for --prefix")
	fs.IntVar(&opts.multi, "multi", opts.multi, "max context lines kept per diagnostic (0 = all)")
	fs.IntVar(&opts.multi, "m", opts.multi, "shorthand for --multi")
	fs.BoolVar(&opts.suppress, "suppress", opts.suppress, "suppress identical diagnostics")
	fs.BoolVar(&opts.suppress, "s", opts.suppress, "shorthand for --suppress")
	fs.BoolVar(&opts.compact, "compact", opts.compact, "no blank line between diagnostics")
	fs.BoolVar(&opts.compact, "c", opts.compact, "shorthand for --compact")
	fs.BoolVar(&opts.quiet, "quiet", opts.quiet, "don't show the options banner")
	fs.BoolVar(&opts.quiet, "q", opts.quiet, "shorthand for --quiet")
	fs.StringVar(&opts.theme, "theme", opts.theme, "color theme: auto, default, mono")

	if err := fs.Parse(args); err != nil {
		return options{}, exitUsage
	}
	if opts.multi < 0 {
		printError(stderr, "argument --multi must be >= 0")
		return options{}, exitUsage
	}
	switch opts.theme {
	case "auto", "default", "mono":
	default:
		printError(stderr, fmt.Sprintf("unknown theme %q (expected auto, default, mono)", opts.theme))
		return options{}, exitUsage
	}
	return opts, -1
}

// selectStyle picks the output styling. Plain text when piped or when
// NO_COLOR is set; the Visual Studio output pane gets no ANSI codes.
func selectStyle(theme string, stdout io.Writer) render.StyleFunc {
	switch theme {
	case "mono":
		return nil
	case "auto":
		if !isTTYWriter(stdout) || os.Getenv("NO_COLOR") != "" {
			return nil
		}
		return render.DefaultTheme().Styler()
	default:
		if os.Getenv("NO_COLOR") != "" {
			return render.MonoTheme().Styler()
		}
		return render.ThemeByName(theme).Styler()
	}
}

// printOptionsBanner writes the leading header. The quiet option drops the
// option details but keeps the name/version rule, like the original tool.
func printOptionsBanner(w io.Writer, opts options, inputName string, info os.FileInfo) {
	rule := "jtol: " + render.Rule('-', render.BannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "jtol: "+render.Center(" "+version.String()+" ", '-', render.BannerWidth))
	fmt.Fprintln(w, rule)
	if opts.quiet {
		return
	}

	fmt.Fprintln(w, "jtol: options:")
	fmt.Fprintf(w, "jtol: --file: <%s>\n", inputName)
	if info != nil {
		fmt.Fprintf(w, "jtol: --file: size: <%s>, modified: <%s>\n",
			humanSize(info.Size()), info.ModTime().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "jtol: --dir: <%s>\n", opts.dir)
	fmt.Fprintf(w, "jtol: --prefix: <%s>, --multi: <%d>, --suppress: <%t>, --compact: <%t>\n",
		opts.prefix, opts.multi, opts.suppress, opts.compact)
	fmt.Fprintln(w, rule)
}

// humanSize formats a byte count in base-10 units.
func humanSize(n int64) string {
	const (
		kilobyte = 1000
		megabyte = 1000 * kilobyte
		gigabyte = 1000 * megabyte
	)
	switch {
	case n >= gigabyte:
		return fmt.Sprintf("%.2fGB", float64(n)/gigabyte)
	case n >= megabyte:
		return fmt.Sprintf("%.2fMB", float64(n)/megabyte)
	case n >= kilobyte:
		return fmt.Sprintf("%.2fkB", float64(n)/kilobyte)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "\njtol: ERROR: %s\n\n", msg)
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
