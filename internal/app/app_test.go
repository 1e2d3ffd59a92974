package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/ui/layout"
)

type stubScreen struct {
	title string
	hints []layout.KeyHint
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "body of " + s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) KeyHints() []layout.KeyHint              { return s.hints }

func TestPopLastScreenQuits(t *testing.T) {
	m := New(&stubScreen{title: "only"})
	_, cmd := m.Update(router.PopScreenMsg{})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestPopReturnsToPrevious(t *testing.T) {
	m := New(&stubScreen{title: "home"})
	m.Update(router.PushScreenMsg{Screen: &stubScreen{title: "alarms"}})
	_, cmd := m.Update(router.PopScreenMsg{})
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("pop above the root should not quit")
		}
	}
	if m.router.Active().Title() != "home" {
		t.Errorf("active = %q, want home", m.router.Active().Title())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&stubScreen{title: "home"})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestViewFramesActiveScreen(t *testing.T) {
	m := New(&stubScreen{
		title: "Math Challenge",
		hints: []layout.KeyHint{{Key: "Enter", Description: "Submit"}},
	})
	m.now = func() time.Time { return time.Date(2026, 10, 20, 6, 45, 0, 0, time.UTC) }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	content := updated.(AppModel).render()
	for _, want := range []string{"riseup", "Math Challenge", "06:45", "body of Math Challenge", "Submit", "Ctrl+C"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := New(&stubScreen{title: "home"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "too small") {
		t.Error("expected the minimum-size message")
	}
}

func TestClockTickRearms(t *testing.T) {
	m := New(&stubScreen{title: "home"})
	if m.Init() == nil {
		t.Fatal("Init should start the header clock")
	}
	_, cmd := m.Update(clockTickMsg(time.Now()))
	if cmd == nil {
		t.Error("clock tick should schedule the next tick")
	}
}
