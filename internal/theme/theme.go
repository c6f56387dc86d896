// Package theme provides color palettes for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used across the application UI.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // Text on Accent background
	Border    lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	AddFg     lipgloss.Color // Added diff lines
	RemoveFg  lipgloss.Color // Removed diff lines
	HunkFg    lipgloss.Color // Hunk headers
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	SuccessFg lipgloss.Color
}

// Theme names.
const (
	DarkName  = "dark"
	LightName = "light"
)

// Dark returns the default dark palette.
func Dark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"),
		AccentFg:  lipgloss.Color("#282A36"),
		Border:    lipgloss.Color("#6272A4"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		AddFg:     lipgloss.Color("#50FA7B"),
		RemoveFg:  lipgloss.Color("#FF5555"),
		HunkFg:    lipgloss.Color("#8BE9FD"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		SuccessFg: lipgloss.Color("#50FA7B"),
	}
}

// Light returns a palette for light terminal backgrounds.
func Light() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#6C71C4"),
		AccentFg:  lipgloss.Color("#FDF6E3"),
		Border:    lipgloss.Color("#93A1A1"),
		MutedFg:   lipgloss.Color("#839496"),
		TextFg:    lipgloss.Color("#073642"),
		AddFg:     lipgloss.Color("#859900"),
		RemoveFg:  lipgloss.Color("#DC322F"),
		HunkFg:    lipgloss.Color("#268BD2"),
		WarnFg:    lipgloss.Color("#B58900"),
		ErrorFg:   lipgloss.Color("#DC322F"),
		SuccessFg: lipgloss.Color("#859900"),
	}
}

// ForName resolves a theme by name, defaulting to the dark palette.
func ForName(name string) *Theme {
	if name == LightName {
		return Light()
	}
	return Dark()
}
