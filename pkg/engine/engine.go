// Package engine turns an ordered stream of tool-output lines into grouped,
// Visual Studio-formatted diagnostics with severity banners and a final
// totals line.
//
// Diagnostics are buffered per severity run: a run's banner is written with
// the run's exact diagnostic count when the run closes, so a single pass
// over the input suffices and the final summary counts always match the
// emitted output. Runs appear in first-transition input order and are never
// resorted by severity.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kzachmann/jtol/pkg/classify"
	"github.com/kzachmann/jtol/pkg/diag"
	"github.com/kzachmann/jtol/pkg/render"
)

// appName prefixes every banner line, matching the tool's stderr voice.
const appName = "jtol"

// Options configure one processing pass.
type Options struct {
	// Prefix is prepended to every rewritten path before emission.
	Prefix string

	// MaxContext caps the trailing context lines retained per diagnostic.
	// 0 keeps all of them.
	MaxContext int

	// SuppressDuplicates drops diagnostics whose header fields were
	// already emitted. The first occurrence is always kept.
	SuppressDuplicates bool

	// Compact omits the blank separator line between diagnostics in a run.
	Compact bool

	// Keywords overrides the severity keyword set recognized by the
	// classifier. Nil selects classify.DefaultKeywords.
	Keywords map[string]diag.Severity

	// ResolvePath, when set, maps a diagnostic's path (typically a bare
	// filename) to an openable path before the prefix is applied.
	ResolvePath func(string) string
}

// Engine is the grouping state machine. It consumes lines strictly in
// order via ProcessLine and writes the rewritten stream to out; Finish
// closes the last run, writes the summary banner, and returns the final
// statistics. All state is scoped to one pass, so a long-running process
// can run many engines in sequence.
type Engine struct {
	out   io.Writer
	opts  Options
	style render.StyleFunc
	cls   *classify.Classifier
	dedup *diag.DedupSet

	open   *diag.Diagnostic // collecting context, not yet final
	run    []diag.Diagnostic
	runSev diag.Severity
	inRun  bool

	stats Stats
	start time.Time
}

// New creates an engine writing to out. A nil style emits plain text.
func New(out io.Writer, opts Options, style render.StyleFunc) *Engine {
	return &Engine{
		out:   out,
		opts:  opts,
		style: style,
		cls:   classify.New(opts.Keywords),
		dedup: diag.NewDedupSet(opts.SuppressDuplicates),
		stats: newStats(),
		start: time.Now(),
	}
}

// ProcessLine consumes one input line. A recognized header finalizes the
// previously open diagnostic and opens a new one; any other line becomes
// context of the open diagnostic, or is dropped when no diagnostic is open.
func (e *Engine) ProcessLine(line string) {
	e.stats.Lines++

	if h, ok := e.cls.Classify(line); ok {
		e.finalizeOpen()
		e.open = &diag.Diagnostic{
			Path:     h.Loc.Path,
			Line:     h.Loc.Line,
			Column:   h.Loc.Column,
			HasCol:   h.Loc.HasCol,
			Severity: h.Severity,
			Message:  h.Message,
		}
		return
	}

	if e.open != nil {
		if e.opts.MaxContext == 0 || len(e.open.Context) < e.opts.MaxContext {
			e.open.Context = append(e.open.Context, line)
		}
	}
}

// Finish finalizes the open diagnostic, flushes the open run, writes the
// summary banner, and returns the statistics. The engine accepts no
// further input afterwards.
func (e *Engine) Finish() Stats {
	e.finalizeOpen()
	e.flushRun()
	e.stats.Elapsed = time.Since(e.start)
	e.printSummary()
	return e.stats
}

// finalizeOpen moves the open diagnostic into the current run, opening a
// new run when the severity changes. Duplicates are counted and dropped
// before they influence run boundaries.
func (e *Engine) finalizeOpen() {
	if e.open == nil {
		return
	}
	d := *e.open
	e.open = nil

	if e.dedup.IsDuplicate(d) {
		e.stats.Suppressed[d.Severity]++
		return
	}

	if !e.inRun || e.runSev != d.Severity {
		e.flushRun()
		e.inRun = true
		e.runSev = d.Severity
	}
	e.run = append(e.run, d)
	e.stats.Emitted[d.Severity]++
}

// flushRun writes the banner and bodies of the buffered run, then resets
// the run buffer.
func (e *Engine) flushRun() {
	if len(e.run) == 0 {
		e.inRun = false
		return
	}

	kind := kindFor(e.runSev)
	label := fmt.Sprintf(" %ss: %d ", e.runSev, len(e.run))
	e.println(kind, appName+": "+render.Center(label, borderFor(e.runSev), render.BannerWidth))

	for i, d := range e.run {
		if i > 0 && !e.opts.Compact {
			e.println(kind, "")
		}
		e.printDiagnostic(d, kind)
	}

	e.run = e.run[:0]
	e.inRun = false
}

func (e *Engine) printDiagnostic(d diag.Diagnostic, kind render.LineKind) {
	path := d.Path
	if e.opts.ResolvePath != nil {
		path = e.opts.ResolvePath(path)
	}
	loc := classify.Location{
		Path:   e.opts.Prefix + path,
		Line:   d.Line,
		Column: d.Column,
		HasCol: d.HasCol,
	}
	e.println(kind, loc.String()+": "+string(d.Severity)+": "+d.Message)
	for _, c := range d.Context {
		e.println(render.KindContext, c)
	}
}

func (e *Engine) printSummary() {
	fill := '='
	if e.stats.HasFindings() {
		fill = '~'
	}
	rule := appName + ": " + render.Rule(fill, render.BannerWidth)

	summary := fmt.Sprintf(
		"finished (totals): time: %.2fs, errors: %d/%d, warnings: %d/%d, notes: %d/%d, lines: %d",
		e.stats.Elapsed.Seconds(),
		e.stats.Emitted[diag.SeverityError], e.stats.Suppressed[diag.SeverityError],
		e.stats.Emitted[diag.SeverityWarning], e.stats.Suppressed[diag.SeverityWarning],
		e.stats.Emitted[diag.SeverityNote], e.stats.Suppressed[diag.SeverityNote],
		e.stats.Lines,
	)

	e.println(render.KindSummary, rule)
	e.println(render.KindSummary, appName+": "+summary)
	e.println(render.KindSummary, rule)
}

func (e *Engine) println(kind render.LineKind, text string) {
	if e.style != nil && text != "" {
		text = e.style(kind, text)
	}
	fmt.Fprintln(e.out, text)
}

func kindFor(sev diag.Severity) render.LineKind {
	switch sev {
	case diag.SeverityError:
		return render.KindError
	case diag.SeverityWarning:
		return render.KindWarning
	default:
		return render.KindNote
	}
}

// borderFor picks the banner fill character per severity, so the three
// groups are visually distinct at a glance.
func borderFor(sev diag.Severity) rune {
	switch sev {
	case diag.SeverityError:
		return '#'
	case diag.SeverityWarning:
		return '*'
	default:
		return '+'
	}
}

// Run feeds r through a fresh engine line by line and writes the rewritten
// stream to w. Input is consumed incrementally, never materialized whole.
// Processing stops early only when ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options, style render.StyleFunc) (Stats, error) {
	e := New(w, opts, style)

	scanner := bufio.NewScanner(r)
	// Allow very long lines from verbose tools
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return e.stats, err
		}
		e.ProcessLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return e.stats, fmt.Errorf("reading input: %w", err)
	}
	return e.Finish(), nil
}
