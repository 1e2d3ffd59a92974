package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pickedMsg string

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickedMsg(label) }
	}
}

func testMenu() Menu {
	return NewMenu([]MenuItem{
		{Label: "MATH", Key: "m", Action: pick("MATH")},
		{Label: "ALARMS", Key: "a", Action: pick("ALARMS"), Disabled: true},
		{Label: "QUIT", Key: "q", Action: pick("QUIT")},
	})
}

func TestMenu_NavigationSkipsDisabledAndWraps(t *testing.T) {
	m := testMenu()
	require.Equal(t, 0, m.Selected)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, m.Selected, "disabled ALARMS is skipped")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, m.Selected, "wraps to top")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 2, m.Selected, "wraps to bottom")
}

func TestMenu_EnterAndHotkeys(t *testing.T) {
	m := testMenu()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("MATH"), cmd())

	m, cmd = m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg("QUIT"), cmd())
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Nil(t, cmd, "disabled hotkey does nothing")
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "X", Disabled: true}})
	assert.Equal(t, -1, m.Selected)
	_, ok := m.Current()
	assert.False(t, ok)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestMenu_View(t *testing.T) {
	v := testMenu().View()
	assert.Contains(t, v, "▸ [m] MATH")
	assert.Contains(t, v, "[q] QUIT")
}
