// Package ringing shows the alarm splash that precedes a wake-up challenge.
package ringing

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/ui/theme"
)

const (
	tickInterval = 250 * time.Millisecond
	flashPeriod  = 2 // ticks per flash phase
)

const sunArt = `      \   |   /
    .  \  |  /  .
  ---- ( ☀ ☀ ) ----
    '  /  |  \  '
      /   |   \`

type tickMsg time.Time

// RingingScreen flashes the alarm until a key is pressed, then replaces
// itself with the challenge produced by next.
type RingingScreen struct {
	label        string
	at           time.Time
	next         func() screen.Screen
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*RingingScreen)(nil)

// New creates a RingingScreen for an alarm with the given label that
// fired at at.
func New(label string, at time.Time, next func() screen.Screen) *RingingScreen {
	return &RingingScreen{label: label, at: at, next: next}
}

func (r *RingingScreen) Title() string {
	return ""
}

func (r *RingingScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (r *RingingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if r.transitioned {
			return r, nil
		}
		r.ticks++
		return r, tick()

	case tea.KeyPressMsg:
		return r, r.transition()
	}
	return r, nil
}

func (r *RingingScreen) transition() tea.Cmd {
	if r.transitioned {
		return nil
	}
	r.transitioned = true
	challenge := r.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: challenge}
	}
}

// lit reports whether the flashing elements are in their bright phase.
func (r *RingingScreen) lit() bool {
	return (r.ticks/flashPeriod)%2 == 0
}

func (r *RingingScreen) View(width, height int) string {
	sunColor := theme.Sun
	if !r.lit() {
		sunColor = theme.Glow
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(sunColor).Render(sunArt),
		"",
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(r.at.Format("15:04")),
	}

	if r.label != "" {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(r.label))
	}

	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if r.lit() {
		hint = hint.Foreground(theme.Accent)
	}
	sections = append(sections, "", hint.Render("press any key to start your challenge"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
