// Package home is the landing screen: practice challenges or manage alarms.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/ui/components"
	"github.com/abhisek/riseup/internal/ui/layout"
	"github.com/abhisek/riseup/internal/ui/theme"
)

const titleFull = `╦═╗╦╔═╗╔═╗╦ ╦╔═╗
╠╦╝║╚═╗║╣ ║ ║╠═╝
╩╚═╩╚═╝╚═╝╚═╝╩  `

const titleCompact = "R I S E U P"

// Options wires the home menu to the rest of the app.
type Options struct {
	// Practice builds a practice challenge of the given kind.
	Practice func(kind challenge.Kind) screen.Screen

	// Alarms builds the alarm list. Nil disables the menu entry.
	Alarms func() screen.Screen

	// NextAlarm describes the soonest armed alarm, e.g. "Tue 07:00 Work",
	// or "" when nothing is armed. It is re-read whenever home is resumed.
	NextAlarm func() string
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu      components.Menu
	nextAlarm func() string
	next      string
}

type nextAlarmMsg string

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	practice := func(k challenge.Kind) func() tea.Cmd {
		return push(func() screen.Screen { return opts.Practice(k) })
	}

	items := []components.MenuItem{
		{Label: "PRACTICE MATH", Key: "m", Action: practice(challenge.KindMath), Disabled: opts.Practice == nil},
		{Label: "PRACTICE CODE", Key: "c", Action: practice(challenge.KindCode), Disabled: opts.Practice == nil},
		{Label: "PRACTICE RHYTHM", Key: "r", Action: practice(challenge.KindRhythm), Disabled: opts.Practice == nil},
		{Label: "ALARMS", Key: "a", Disabled: opts.Alarms == nil},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}
	if opts.Alarms != nil {
		items[3].Action = push(opts.Alarms)
	}

	return &HomeScreen{
		menu:      components.NewMenu(items),
		nextAlarm: opts.NextAlarm,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.refresh()
}

// Resume re-reads the next alarm, which the alarm list may have changed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.refresh()
}

func (h *HomeScreen) refresh() tea.Cmd {
	if h.nextAlarm == nil {
		return nil
	}
	read := h.nextAlarm
	return func() tea.Msg { return nextAlarmMsg(read()) }
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(nextAlarmMsg); ok {
		h.next = string(msg)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := layout.Compact(width, height)

	title := titleFull
	if compact {
		title = titleCompact
	}

	next := "No alarms armed"
	if h.next != "" {
		next = "Next alarm  " + h.next
	}

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.Sun).Bold(true).Render(title)),
		lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Secondary).
			Width(cw - 2).
			Align(lipgloss.Center).
			Foreground(theme.Primary).
			Bold(true).
			Render(next),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()),
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
