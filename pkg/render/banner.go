package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// BannerWidth is the full width of banner and separator lines.
const BannerWidth = 100

// Center pads label on both sides with fill until it spans width display
// cells. Labels wider than width are returned unchanged. Width is measured
// with go-runewidth so East Asian Wide characters in labels line up.
func Center(label string, fill rune, width int) string {
	pad := width - runewidth.StringWidth(label)
	if pad <= 0 {
		return label
	}
	left := pad / 2
	return strings.Repeat(string(fill), left) + label + strings.Repeat(string(fill), pad-left)
}

// Rule returns a full-width line of the fill character.
func Rule(fill rune, width int) string {
	return strings.Repeat(string(fill), width)
}
