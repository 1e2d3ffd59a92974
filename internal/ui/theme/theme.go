// Package theme holds the dawn palette: warm sunrise accents on a night
// background.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#F59E0B") // amber
	Secondary = lipgloss.Color("#38BDF8") // sky
	Accent    = lipgloss.Color("#FB7185") // coral
	Sun       = lipgloss.Color("#FACC15")
	Glow      = lipgloss.Color("#F97316")

	Success = lipgloss.Color("#22C55E")
	Error   = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgDark  = lipgloss.Color("#0F172A")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

var (
	// Code is the listing style of code challenges.
	Code = lipgloss.NewStyle().
		Foreground(Secondary).
		Background(BgDark).
		Padding(0, 1)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Disarmed alarms are struck through in the alarm list.
	Disarmed = lipgloss.NewStyle().
			Foreground(TextDim).
			Strikethrough(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Rhythm playfield.
var (
	Target = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true)

	PipLit = lipgloss.NewStyle().
		Foreground(Sun).
		Bold(true)

	PipDark = lipgloss.NewStyle().
		Foreground(Border)
)
