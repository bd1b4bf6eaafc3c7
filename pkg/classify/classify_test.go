package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kzachmann/jtol/pkg/diag"
)

func TestClassify_When_RecognizedHeaders(t *testing.T) {
	t.Parallel()

	c := New(nil)

	tests := []struct {
		name     string
		line     string
		path     string
		lineNo   int
		column   int
		hasCol   bool
		severity diag.Severity
		message  string
	}{
		{
			name:     "gcc with column",
			line:     "src/test/testfile.c:124:43: warning: unused parameter 'state' [-Wunused-parameter]",
			path:     "src/test/testfile.c",
			lineNo:   124,
			column:   43,
			hasCol:   true,
			severity: diag.SeverityWarning,
			message:  "unused parameter 'state' [-Wunused-parameter]",
		},
		{
			name:     "gcc without column",
			line:     "src/test/testfile.c:124: warning: unused parameter 'state'",
			path:     "src/test/testfile.c",
			lineNo:   124,
			severity: diag.SeverityWarning,
			message:  "unused parameter 'state'",
		},
		{
			name:     "error severity",
			line:     "main.c:3:1: error: expected ';' before 'return'",
			path:     "main.c",
			lineNo:   3,
			column:   1,
			hasCol:   true,
			severity: diag.SeverityError,
			message:  "expected ';' before 'return'",
		},
		{
			name:     "note severity",
			line:     "main.c:7:5: note: declared here",
			path:     "main.c",
			lineNo:   7,
			column:   5,
			hasCol:   true,
			severity: diag.SeverityNote,
			message:  "declared here",
		},
		{
			name:     "windows drive letter anchors to last location",
			line:     `C:\test\testfile.c:10:5: error: something broke`,
			path:     `C:\test\testfile.c`,
			lineNo:   10,
			column:   5,
			hasCol:   true,
			severity: diag.SeverityError,
			message:  "something broke",
		},
		{
			name:     "uppercase keyword",
			line:     "doc/api.md:12: WARNING: unable to resolve reference",
			path:     "doc/api.md",
			lineNo:   12,
			severity: diag.SeverityWarning,
			message:  "unable to resolve reference",
		},
		{
			name:     "empty message",
			line:     "a.c:1:2: error:",
			path:     "a.c",
			lineNo:   1,
			column:   2,
			hasCol:   true,
			severity: diag.SeverityError,
			message:  "",
		},
		{
			name:     "iar paren form",
			line:     `c:\test\testfile.h(43) : Warning[Pe1105]: unknown pragma`,
			path:     `c:\test\testfile.h`,
			lineNo:   43,
			severity: diag.SeverityWarning,
			message:  "[Pe1105] unknown pragma",
		},
		{
			name:     "bullseye quoted form",
			line:     `"c:/testfile.c",276  Warning[Pe177]: variable declared but never referenced`,
			path:     "c:/testfile.c",
			lineNo:   276,
			severity: diag.SeverityWarning,
			message:  "[Pe177] variable declared but never referenced",
		},
		{
			name:     "cmocka prefix stripped",
			line:     "[   LINE   ] --- testcases.c:9: error: Failure!",
			path:     "testcases.c",
			lineNo:   9,
			severity: diag.SeverityError,
			message:  "Failure!",
		},
		{
			name:     "linker undefined reference",
			line:     "main.c:9: undefined reference to 'foo'",
			path:     "main.c",
			lineNo:   9,
			severity: diag.SeverityError,
			message:  "undefined reference to 'foo'",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, ok := c.Classify(tc.line)
			require.True(t, ok, "line should classify as a header")
			assert.Equal(t, tc.path, h.Loc.Path)
			assert.Equal(t, tc.lineNo, h.Loc.Line)
			assert.Equal(t, tc.hasCol, h.Loc.HasCol)
			if tc.hasCol {
				assert.Equal(t, tc.column, h.Loc.Column)
			}
			assert.Equal(t, tc.severity, h.Severity)
			assert.Equal(t, tc.message, h.Message)
		})
	}
}

func TestClassify_When_OrdinaryText(t *testing.T) {
	t.Parallel()

	c := New(nil)

	tests := []struct {
		name string
		line string
	}{
		{"plain text", "make[1]: Entering directory '/home/user/pro'"},
		{"unknown keyword", "foo.c:10:5: info: just letting you know"},
		{"no location", "warning: something happened somewhere"},
		{"non-numeric line number", "foo.c:abc: warning: nope"},
		{"line number overflows", "foo.c:99999999999999999999: warning: nope"},
		{"source snippet", "   int unused;"},
		{"caret marker", "       ^~~~~~"},
		{"empty line", ""},
		{"rewritten form is not reparsed", "a.c(3,1): warning: unused x"},
		{"rewritten no-column form is not reparsed", "a.c(124): error: boom"},
		{"rewritten iar form is not reparsed", `c:\test\testfile.h(43): warning: [Pe1105] unknown pragma`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := c.Classify(tc.line)
			assert.False(t, ok, "line must classify as ordinary text")
		})
	}
}

func TestClassify_When_CustomKeywords(t *testing.T) {
	t.Parallel()

	c := New(map[string]diag.Severity{
		"error": diag.SeverityError,
		"info":  diag.SeverityNote,
	})

	h, ok := c.Classify("gen.c:4: info: generated from template")
	require.True(t, ok)
	assert.Equal(t, diag.SeverityNote, h.Severity)
	assert.Equal(t, "generated from template", h.Message)

	// The default keywords no longer apply once overridden.
	_, ok = c.Classify("gen.c:4: warning: not recognized here")
	assert.False(t, ok)
}

func TestLocationString_RewritesToVisualStudioForm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"with column", Location{Path: "foo.c", Line: 10, Column: 5, HasCol: true}, "foo.c(10,5)"},
		{"without column", Location{Path: "foo.c", Line: 124}, "foo.c(124)"},
		{"path preserved exactly", Location{Path: `C:\Some Dir\File.C`, Line: 1, Column: 2, HasCol: true}, `C:\Some Dir\File.C(1,2)`},
		{"column zero is kept when reported", Location{Path: "a.c", Line: 9, Column: 0, HasCol: true}, "a.c(9,0)"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.loc.String())
		})
	}
}
