package challenge

import (
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	kinds "github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/codebank"
	"github.com/abhisek/riseup/internal/problemgen"
	"github.com/abhisek/riseup/internal/rhythm"
	"github.com/abhisek/riseup/internal/rng"
	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	sess "github.com/abhisek/riseup/internal/session"
)

// fakeClock is a hand-advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testDeps(t *testing.T, clock *fakeClock) sess.Deps {
	t.Helper()
	src := rng.New(7)
	bank, err := codebank.NewDefault(src)
	if err != nil {
		t.Fatalf("load code bank: %v", err)
	}
	return sess.Deps{
		Math:           problemgen.New(src, problemgen.DefaultConfig()),
		Code:           bank,
		Rhythm:         rhythm.NewGenerator(src),
		Now:            clock.Now,
		RecentWindow:   3,
		RequiredStreak: 5,
	}
}

// startScreen runs the init command so the session exists.
func startScreen(t *testing.T, opts Options) *ChallengeScreen {
	t.Helper()
	s := New(opts)
	msg := s.initSession()()
	s.Update(msg)
	if s.state == nil {
		t.Fatalf("session did not start: %s", s.errMsg)
	}
	return s
}

func typeString(s *ChallengeScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func expectSummary(t *testing.T, cmd tea.Cmd, s screen.Screen) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a finish command")
	}
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected a replace command")
	}
	replace, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", next())
	}
	if replace.Screen.Title() != "Challenge Summary" {
		t.Errorf("replaced with %q, want summary", replace.Screen.Title())
	}
}

func TestMath_WrongThenCorrect(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindMath, Difficulty: 1})

	if !strings.Contains(s.View(80, 24), s.state.Math.Display) {
		t.Error("view should show the problem")
	}

	typeString(s, "0")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", s.state.Phase)
	}
	if !strings.Contains(s.View(80, 24), "Correct answer") {
		t.Error("feedback should reveal the answer")
	}

	// Any key moves on to a fresh problem with a cleared input.
	s.Update(tea.KeyPressMsg{Code: ' '})
	if s.state.Phase != sess.PhaseActive {
		t.Fatalf("phase = %v, want active", s.state.Phase)
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}

	typeString(s, strconv.FormatFloat(s.state.Math.Answer, 'f', -1, 64))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.state.Solved() {
		t.Fatal("correct answer should solve the challenge")
	}
	expectSummary(t, cmd, s)
}

func TestMath_EmptySubmitIgnored(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindMath, Difficulty: 1})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.state.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", s.state.Attempts)
	}
}

func TestCode_NumberKeyAnswers(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindCode, Difficulty: 1})

	correct := s.state.Code.CorrectIndex
	_, cmd := s.Update(tea.KeyPressMsg{Code: rune('1' + correct), Text: strconv.Itoa(correct + 1)})
	if !s.state.Solved() {
		t.Fatal("choosing the correct option should solve the challenge")
	}
	expectSummary(t, cmd, s)
}

func TestCode_WrongAnswerServesNewProblem(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindCode, Difficulty: 1})

	first := s.state.Code.ID
	wrong := (s.state.Code.CorrectIndex + 1) % 4
	s.Update(tea.KeyPressMsg{Code: rune('1' + wrong), Text: strconv.Itoa(wrong + 1)})
	if s.state.Phase != sess.PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", s.state.Phase)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.state.Code.ID == first {
		t.Error("a wrong answer should be followed by a different problem")
	}
	if _, picked := s.choice.Chosen(); picked {
		t.Error("choice should be reset for the new problem")
	}
}

func TestRhythm_TapsOnBeatComplete(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindRhythm, Difficulty: 2})

	var cmd tea.Cmd
	for i := 0; i < 5; i++ {
		clock.Advance(s.state.Rhythm.Beatmap().BeatInterval())
		_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	}
	if !s.state.Solved() {
		t.Fatalf("five on-beat taps should solve; streak = %d", s.state.Rhythm.Streak())
	}
	expectSummary(t, cmd, s)
}

func TestRhythm_TickExpiresTarget(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)}
	s := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindRhythm, Difficulty: 1})

	clock.Advance(s.state.Rhythm.ExpireAfter())
	_, cmd := s.Update(rhythmTickMsg(clock.Now()))
	if cmd == nil {
		t.Error("ticks should continue after a miss")
	}
	if s.state.Rhythm.Misses != 1 {
		t.Errorf("misses = %d, want 1", s.state.Rhythm.Misses)
	}
	if !strings.Contains(s.View(80, 30), "MISS") {
		t.Error("view should show the miss")
	}
}

func TestQuit_OnlyWhenAllowed(t *testing.T) {
	clock := &fakeClock{t: time.Now()}

	ringing := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindMath, Difficulty: 1, AlarmID: "a1"})
	ringing.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if ringing.confirmQuit {
		t.Error("a ringing alarm must not offer quitting")
	}

	practice := startScreen(t, Options{Deps: testDeps(t, clock), Kind: kinds.KindMath, Difficulty: 1, AllowQuit: true})
	practice.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !practice.confirmQuit {
		t.Fatal("practice should ask to confirm quitting")
	}
	_, cmd := practice.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if practice.state.Phase != sess.PhaseAbandoned {
		t.Errorf("phase = %v, want abandoned", practice.state.Phase)
	}
	expectSummary(t, cmd, practice)
}

func TestInitError(t *testing.T) {
	s := New(Options{Kind: kinds.Kind("chess")})
	s.Update(s.initSession()())
	if s.errMsg == "" {
		t.Fatal("expected an init error")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key should leave the error screen")
	}
}

func TestApproachGlyph(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "○"},
		{0.45, "◎"},
		{0.75, "◉"},
		{1.0, "●"},
	}
	for _, tt := range tests {
		if got := approachGlyph(tt.progress); got != tt.want {
			t.Errorf("approachGlyph(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}
