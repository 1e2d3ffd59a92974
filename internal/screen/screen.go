// Package screen defines the contract every riseup screen implements.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/riseup/internal/ui/layout"
)

// Screen is one page of the terminal UI. The router owns the stack; the
// app draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only. width and height exclude the header and
	// footer.
	View(width, height int) string

	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer
// hints instead of the default.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again, e.g. after a challenge preview pops off above the alarm list.
type Resumer interface {
	Resume() tea.Cmd
}
