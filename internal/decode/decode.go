// Package decode wraps input readers with BOM-aware character decoding.
// Build logs captured on Windows are frequently UTF-16; decoding them here
// lets the engine treat every input as plain UTF-8 lines.
package decode

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader returns r decoded to UTF-8. A leading UTF-8, UTF-16LE or
// UTF-16BE byte order mark selects the source encoding and is consumed;
// input without a BOM is treated as UTF-8, with invalid byte sequences
// replaced rather than surfaced as errors.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
