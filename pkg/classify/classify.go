// Package classify recognizes compiler-diagnostic header lines embedded in
// arbitrary tool output and rewrites their locations into the Visual Studio
// output-pane form.
//
// Recognized location grammars:
//
//	GCC/Doxygen/cmocka  src/file.c:124:43: warning: msg
//	GCC/Doxygen         src/file.c:124: warning: msg
//	GCC linker          src/file.c:124: undefined reference to 'foo'
//	IAR                 c:\test\file.h(43) : Warning[Pe1105]: msg
//	BullseyeCoverage    "c:/file.c",276  Warning[Pe177]: msg
//
// The rewritten form path(line,col) is never itself recognized as a header,
// so reprocessing the tool's own output yields no new diagnostics.
package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kzachmann/jtol/pkg/diag"
)

// Location is a source position as written by the originating tool.
// The path is preserved byte-for-byte; IDE hyperlinking is path-sensitive.
type Location struct {
	Path   string
	Line   int
	Column int
	HasCol bool
}

// String renders the Visual Studio form: path(line,col), or path(line)
// when the tool reported no column.
func (l Location) String() string {
	if l.HasCol {
		return l.Path + "(" + strconv.Itoa(l.Line) + "," + strconv.Itoa(l.Column) + ")"
	}
	return l.Path + "(" + strconv.Itoa(l.Line) + ")"
}

// Header is a recognized diagnostic header line.
type Header struct {
	Loc      Location
	Severity diag.Severity
	Message  string
}

// cmocka decorates failure lines with this prefix; stripped before matching.
const cmockaPrefix = "[   LINE   ] --- "

// DefaultKeywords maps the severity tokens recognized out of the box to
// their severities. Unknown tokens (e.g. "info") never make a header.
func DefaultKeywords() map[string]diag.Severity {
	return map[string]diag.Severity{
		"error":   diag.SeverityError,
		"warning": diag.SeverityWarning,
		"note":    diag.SeverityNote,
	}
}

// Classifier recognizes header lines for a fixed keyword set. All patterns
// are precompiled at construction time.
type Classifier struct {
	keywords map[string]diag.Severity

	gcc      *regexp.Regexp
	iar      *regexp.Regexp
	bullseye *regexp.Regexp
	undefRef *regexp.Regexp
}

// New builds a classifier for the given keyword-to-severity mapping.
// Passing nil selects DefaultKeywords. Keywords match case-insensitively.
func New(keywords map[string]diag.Severity) *Classifier {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	lowered := make(map[string]diag.Severity, len(keywords))
	for kw, sev := range keywords {
		lowered[strings.ToLower(kw)] = sev
	}
	alt := keywordAlternation(lowered)

	return &Classifier{
		keywords: lowered,

		// The greedy path group anchors the match to the *last* location
		// fragment before the severity keyword, so paths containing colons
		// (drive letters) resolve correctly.
		gcc: regexp.MustCompile(`^(.+):(\d+)(?::(\d+))?:[ \t]*(?i:(` + alt + `)):[ \t]?(.*)$`),

		// IAR reports 'path(line) : Keyword[code]: msg'.
		iar: regexp.MustCompile(`^(.+)\((\d+)\)[ \t]*:[ \t]*(?i:(` + alt + `))\[([^\]]*)\]:[ \t]?(.*)$`),

		// BullseyeCoverage reports '"path",line  Keyword[code]: msg'.
		bullseye: regexp.MustCompile(`^"(.+)",(\d+)[ \t]+(?i:(` + alt + `))\[([^\]]*)\]:[ \t]?(.*)$`),

		// GCC linker errors carry a location but no severity keyword.
		undefRef: regexp.MustCompile(`^(.+):(\d+):[ \t]*(undefined reference\b.*)$`),
	}
}

// keywordAlternation builds a deterministic regex alternation, longest
// keyword first so no keyword shadows another it prefixes.
func keywordAlternation(keywords map[string]diag.Severity) string {
	kws := make([]string, 0, len(keywords))
	for kw := range keywords {
		kws = append(kws, regexp.QuoteMeta(kw))
	}
	sort.Slice(kws, func(i, j int) bool {
		if len(kws[i]) != len(kws[j]) {
			return len(kws[i]) > len(kws[j])
		}
		return kws[i] < kws[j]
	})
	return strings.Join(kws, "|")
}

// Classify inspects one line of text. It returns the structured header and
// true when the line is a diagnostic header, or false for ordinary text.
// Classification never fails: any content has a defined outcome.
func (c *Classifier) Classify(line string) (Header, bool) {
	trimmed := strings.TrimPrefix(line, cmockaPrefix)

	if h, ok := c.classifyColon(trimmed); ok {
		return h, true
	}
	if h, ok := c.classifyIAR(trimmed); ok {
		return h, true
	}
	if h, ok := c.classifyBullseye(trimmed); ok {
		return h, true
	}
	if h, ok := c.classifyUndefRef(trimmed); ok {
		return h, true
	}
	return Header{}, false
}

func (c *Classifier) classifyColon(line string) (Header, bool) {
	m := c.gcc.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	ln, err := strconv.Atoi(m[2])
	if err != nil {
		return Header{}, false
	}
	h := Header{
		Loc:      Location{Path: m[1], Line: ln},
		Severity: c.keywords[strings.ToLower(m[4])],
		Message:  m[5],
	}
	if m[3] != "" {
		col, err := strconv.Atoi(m[3])
		if err != nil {
			return Header{}, false
		}
		h.Loc.Column = col
		h.Loc.HasCol = true
	}
	return h, true
}

func (c *Classifier) classifyIAR(line string) (Header, bool) {
	m := c.iar.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	ln, err := strconv.Atoi(m[2])
	if err != nil {
		return Header{}, false
	}
	return Header{
		Loc:      Location{Path: m[1], Line: ln},
		Severity: c.keywords[strings.ToLower(m[3])],
		Message:  bracketMessage(m[4], m[5]),
	}, true
}

func (c *Classifier) classifyBullseye(line string) (Header, bool) {
	m := c.bullseye.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	ln, err := strconv.Atoi(m[2])
	if err != nil {
		return Header{}, false
	}
	return Header{
		Loc:      Location{Path: m[1], Line: ln},
		Severity: c.keywords[strings.ToLower(m[3])],
		Message:  bracketMessage(m[4], m[5]),
	}, true
}

func (c *Classifier) classifyUndefRef(line string) (Header, bool) {
	m := c.undefRef.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	ln, err := strconv.Atoi(m[2])
	if err != nil {
		return Header{}, false
	}
	return Header{
		Loc:      Location{Path: m[1], Line: ln},
		Severity: diag.SeverityError,
		Message:  m[3],
	}, true
}

// bracketMessage keeps the vendor diagnostic code in front of the message
// text, e.g. code "Pe1105" and message "msg" become "[Pe1105] msg".
func bracketMessage(code, msg string) string {
	if code == "" {
		return msg
	}
	if msg == "" {
		return "[" + code + "]"
	}
	return "[" + code + "] " + msg
}
