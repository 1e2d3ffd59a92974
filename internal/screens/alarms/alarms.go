// Package alarms lists configured alarms and lets the user arm, disarm
// or try them.
package alarms

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/scheduler"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/ui/layout"
	"github.com/abhisek/riseup/internal/ui/theme"
)

// Service is the slice of the alarm service this screen needs.
type Service interface {
	List(ctx context.Context) ([]alarm.Alarm, error)
	Toggle(ctx context.Context, id string) (alarm.Alarm, scheduler.Result, error)
}

type alarmsLoadedMsg struct {
	Alarms []alarm.Alarm
	Err    error
}

type toggledMsg struct {
	Alarm  alarm.Alarm
	Result scheduler.Result
	Err    error
}

// AlarmsScreen displays the configured alarms.
type AlarmsScreen struct {
	svc      Service
	preview  func(alarm.Alarm) screen.Screen
	now      func() time.Time
	alarms   []alarm.Alarm
	selected int
	loaded   bool
	status   string
	errMsg   string
}

var (
	_ screen.Screen          = (*AlarmsScreen)(nil)
	_ screen.KeyHintProvider = (*AlarmsScreen)(nil)
	_ screen.Resumer         = (*AlarmsScreen)(nil)
)

// New creates an AlarmsScreen. preview, when non-nil, builds a practice
// run of the selected alarm's challenge.
func New(svc Service, preview func(alarm.Alarm) screen.Screen, now func() time.Time) *AlarmsScreen {
	if now == nil {
		now = time.Now
	}
	return &AlarmsScreen{svc: svc, preview: preview, now: now}
}

func (s *AlarmsScreen) Init() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		list, err := svc.List(context.Background())
		return alarmsLoadedMsg{Alarms: list, Err: err}
	}
}

// Resume reloads the list when a preview pops off above it.
func (s *AlarmsScreen) Resume() tea.Cmd {
	return s.Init()
}

func (s *AlarmsScreen) Title() string {
	return "Alarms"
}

func (s *AlarmsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Arm/Disarm"},
	}
	if s.preview != nil {
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Try"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *AlarmsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case alarmsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.alarms = msg.Alarms
			if s.selected >= len(s.alarms) {
				s.selected = max(len(s.alarms)-1, 0)
			}
		}
		s.loaded = true
		return s, nil

	case toggledMsg:
		if msg.Err != nil {
			s.status = fmt.Sprintf("toggle failed: %v", msg.Err)
			return s, nil
		}
		for i := range s.alarms {
			if s.alarms[i].ID == msg.Alarm.ID {
				s.alarms[i] = msg.Alarm
			}
		}
		s.status = describeResult(msg.Alarm, msg.Result)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.alarms)-1 {
				s.selected++
			}
		case "space", " ":
			return s, s.toggleSelected()
		case "t", "T":
			if s.preview != nil && len(s.alarms) > 0 {
				next := s.preview(s.alarms[s.selected])
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *AlarmsScreen) toggleSelected() tea.Cmd {
	if len(s.alarms) == 0 {
		return nil
	}
	svc := s.svc
	id := s.alarms[s.selected].ID
	return func() tea.Msg {
		a, res, err := svc.Toggle(context.Background(), id)
		return toggledMsg{Alarm: a, Result: res, Err: err}
	}
}

func describeResult(a alarm.Alarm, res scheduler.Result) string {
	switch res.Status {
	case scheduler.Cancelled:
		return fmt.Sprintf("%s disarmed", a.ID)
	case scheduler.Scheduled, scheduler.ScheduledFallback:
		return fmt.Sprintf("%s armed, %d re-triggers", a.ID, len(res.Retriggers))
	}
	return fmt.Sprintf("%s: %s", a.ID, res.Status)
}

func (s *AlarmsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading alarms...")
	}
	if len(s.alarms) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No alarms yet. Add one with: riseup alarm add 07:00")
	}

	now := s.now()
	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.alarms {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		next := "never"
		if at, ok := a.Next(now); ok && a.Armed {
			next = at.Format("Mon 15:04")
		}

		line := fmt.Sprintf("%s%s  %s  %-14s %-8s %-6s L%d  next %s",
			prefix, a.ID, a.Time, a.Days, a.Sound, a.Challenge, a.Difficulty, next)
		if a.Label != "" {
			line += "  " + a.Label
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case !a.Armed:
			style = theme.Disarmed
		case i == s.selected:
			style = theme.Selected
		}
		if i == s.selected && !a.Armed {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Secondary).Render(s.status))
	}
	return b.String()
}
