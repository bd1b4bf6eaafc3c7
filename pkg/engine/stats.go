package engine

import (
	"time"

	"github.com/kzachmann/jtol/pkg/diag"
)

// Stats accumulates over one processing pass: per-severity emitted and
// suppressed diagnostic counts, total input lines, and elapsed time.
type Stats struct {
	Emitted    map[diag.Severity]int
	Suppressed map[diag.Severity]int
	Lines      int
	Elapsed    time.Duration
}

func newStats() Stats {
	return Stats{
		Emitted:    make(map[diag.Severity]int),
		Suppressed: make(map[diag.Severity]int),
	}
}

// TotalEmitted returns the number of diagnostics present in the output.
func (s Stats) TotalEmitted() int {
	n := 0
	for _, v := range s.Emitted {
		n += v
	}
	return n
}

// HasFindings reports whether any error or warning was seen, including
// suppressed duplicates.
func (s Stats) HasFindings() bool {
	return s.Emitted[diag.SeverityError] > 0 ||
		s.Suppressed[diag.SeverityError] > 0 ||
		s.Emitted[diag.SeverityWarning] > 0 ||
		s.Suppressed[diag.SeverityWarning] > 0
}
