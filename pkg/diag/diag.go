// Package diag defines the diagnostic model shared by the classifier and
// the grouping engine, plus duplicate suppression over diagnostic keys.
package diag

// Severity classifies a diagnostic by the keyword that introduced it.
// Severities are an open set keyed by keyword; the constants below cover
// the keywords recognized out of the box.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Diagnostic is one recognized tool message. Path, Line, Severity and
// Message are always set; Column (guarded by HasCol) and Context may be
// empty.
type Diagnostic struct {
	Path     string
	Line     int
	Column   int
	HasCol   bool
	Severity Severity
	Message  string
	Context  []string
}

// Key identifies a diagnostic for duplicate suppression. Context is
// deliberately excluded: two diagnostics with identical header fields are
// the same underlying compiler complaint even if their snippets differ.
type Key struct {
	Path     string
	Line     int
	Column   int
	HasCol   bool
	Severity Severity
	Message  string
}

// Key returns the dedup key for d.
func (d Diagnostic) Key() Key {
	return Key{
		Path:     d.Path,
		Line:     d.Line,
		Column:   d.Column,
		HasCol:   d.HasCol,
		Severity: d.Severity,
		Message:  d.Message,
	}
}

// DedupSet suppresses diagnostics whose key has already been seen. The set
// grows monotonically over one processing pass and is never pruned.
type DedupSet struct {
	enabled bool
	seen    map[Key]struct{}
}

// NewDedupSet returns a dedup set. A disabled set reports every diagnostic
// as unseen and records nothing.
func NewDedupSet(enabled bool) *DedupSet {
	s := &DedupSet{enabled: enabled}
	if enabled {
		s.seen = make(map[Key]struct{})
	}
	return s
}

// IsDuplicate reports whether d's key was seen before, recording it on
// first sight so the first occurrence is always kept.
func (s *DedupSet) IsDuplicate(d Diagnostic) bool {
	if !s.enabled {
		return false
	}
	key := d.Key()
	if _, ok := s.seen[key]; ok {
		return true
	}
	s.seen[key] = struct{}{}
	return false
}
