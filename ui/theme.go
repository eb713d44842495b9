package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

// Theme is the closed set of color schemes. Free-form theme strings from
// the config file are parsed once at startup; everything past that point
// switches over this type.
type Theme int

const (
	// ThemeAuto picks dark or light from the terminal background.
	ThemeAuto Theme = iota
	// ThemeDark uses the dark palette.
	ThemeDark
	// ThemeLight uses the light palette.
	ThemeLight
	// ThemeNoColor disables styling entirely.
	ThemeNoColor
)

// String returns the string representation of the theme.
func (t Theme) String() string {
	switch t {
	case ThemeAuto:
		return "auto"
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeNoColor:
		return "none"
	default:
		return "unknown"
	}
}

// ParseTheme converts a config string to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch s {
	case "", "auto":
		return ThemeAuto, nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	case "none", "notty":
		return ThemeNoColor, nil
	default:
		return ThemeAuto, fmt.Errorf("unknown theme: %q", s)
	}
}

// resolve collapses ThemeAuto to a concrete theme using the terminal
// background.
func (t Theme) resolve() Theme {
	if t != ThemeAuto {
		return t
	}
	if te.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// styles holds the lipgloss styles for one resolved theme.
type styles struct {
	Title      lipgloss.Style
	Clock      lipgloss.Style
	ClockOver  lipgloss.Style
	Phase      lipgloss.Style
	Completed  lipgloss.Style
	Current    lipgloss.Style
	Upcoming   lipgloss.Style
	Overtime   lipgloss.Style
	Subtle     lipgloss.Style
	StatusNote lipgloss.Style
}

func newStyles(t Theme) styles {
	switch t.resolve() {
	case ThemeLight:
		return styles{
			Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5A56E0")),
			Clock:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
			ClockOver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D70000")),
			Phase:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#5A56E0")).Padding(0, 1),
			Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9B9B9B")),
			Current:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1A1A1A")),
			Upcoming:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A")),
			Overtime:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D70000")),
			Subtle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9B9B9B")),
			StatusNote: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		}
	case ThemeNoColor:
		plain := lipgloss.NewStyle()
		return styles{
			Title: plain, Clock: plain, ClockOver: plain, Phase: plain,
			Completed: plain, Current: plain.Bold(true), Upcoming: plain,
			Overtime: plain, Subtle: plain, StatusNote: plain,
		}
	default: // dark
		return styles{
			Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7571F9")),
			Clock:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
			ClockOver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ED567A")),
			Phase:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#7571F9")).Padding(0, 1),
			Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C")),
			Current:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5")),
			Upcoming:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")),
			Overtime:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ED567A")),
			Subtle:     lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C")),
			StatusNote: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		}
	}
}
