// Package render provides terminal styling and banner formatting for the
// rewritten diagnostic stream.
package render

import "github.com/charmbracelet/lipgloss"

// LineKind identifies the type of output line for styling.
type LineKind int

const (
	KindError LineKind = iota
	KindWarning
	KindNote
	KindContext
	KindBanner
	KindSummary
)

// StyleFunc formats a line with colors. If nil, no styling is applied.
// The Visual Studio output pane wants plain text, so the command front end
// only installs a style when writing to a terminal.
type StyleFunc func(kind LineKind, text string) string

// Theme defines colors for terminal rendering.
type Theme struct {
	Name    string
	Error   lipgloss.Style
	Warning lipgloss.Style
	Note    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Note:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// MonoTheme returns a monochrome theme (no colors).
func MonoTheme() Theme {
	return Theme{
		Name: "mono",
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}

// Styler returns a StyleFunc that applies the theme's style per line kind.
func (t Theme) Styler() StyleFunc {
	return func(kind LineKind, text string) string {
		switch kind {
		case KindError:
			return t.Error.Render(text)
		case KindWarning:
			return t.Warning.Render(text)
		case KindNote:
			return t.Note.Render(text)
		case KindContext:
			return t.Muted.Render(text)
		case KindBanner, KindSummary:
			return t.Bold.Render(text)
		}
		return text
	}
}
