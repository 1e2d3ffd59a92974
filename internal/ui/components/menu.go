package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/riseup/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key, when set, activates the item
// directly from the keyboard.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu. Navigation skips disabled items and wraps
// around at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(0, 1)
	return m
}

// step walks from start in direction dir and returns the first enabled
// index, or -1 when every item is disabled.
func (m Menu) step(start, dir int) int {
	n := len(m.Items)
	for i := 0; i < n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if !m.Items[idx].Disabled {
			return idx
		}
	}
	return -1
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update handles navigation, enter and hotkeys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Selected < 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = m.step(m.Selected-1, -1)
		return m, nil
	case "down", "j", "tab":
		m.Selected = m.step(m.Selected+1, 1)
		return m, nil
	case "enter":
		return m, m.activate(m.Selected)
	}

	for i, item := range m.Items {
		if item.Key != "" && strings.EqualFold(item.Key, key) && !item.Disabled {
			m.Selected = i
			return m, m.activate(i)
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu, one item per line.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		key := "   "
		if item.Key != "" {
			key = "[" + strings.ToLower(item.Key) + "]"
		}
		style := lipgloss.NewStyle().Foreground(theme.Text)
		cursor := "  "
		switch {
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
			cursor = "▸ "
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(cursor + key + " " + item.Label))
		b.WriteString("\n")
	}
	return b.String()
}
