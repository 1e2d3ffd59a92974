// Package challenge is the screen that runs a wake-up challenge: typed
// math answers, code-output multiple choice, or rhythm tapping.
package challenge

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	kinds "github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/router"
	"github.com/abhisek/riseup/internal/screen"
	"github.com/abhisek/riseup/internal/screens/summary"
	sess "github.com/abhisek/riseup/internal/session"
	"github.com/abhisek/riseup/internal/ui/components"
	"github.com/abhisek/riseup/internal/ui/layout"
)

const frameInterval = 40 * time.Millisecond

// Options configures a challenge screen.
type Options struct {
	Deps       sess.Deps
	Kind       kinds.Kind
	Difficulty int

	// AlarmID is the alarm being dismissed; empty for practice.
	AlarmID string

	// AllowQuit lets Esc abandon the challenge. Ringing alarms leave it off.
	AllowQuit bool
}

// ChallengeScreen implements screen.Screen for an active challenge.
type ChallengeScreen struct {
	opts        Options
	state       *sess.State
	input       components.AnswerField
	choice      components.Choices
	confirmQuit bool
	errMsg      string
	finished    bool
	frame       time.Time
}

var _ screen.Screen = (*ChallengeScreen)(nil)
var _ screen.KeyHintProvider = (*ChallengeScreen)(nil)

// New creates a ChallengeScreen. The session starts on Init.
func New(opts Options) *ChallengeScreen {
	if opts.Deps.Now == nil {
		opts.Deps.Now = time.Now
	}
	return &ChallengeScreen{
		opts:  opts,
		input: components.NewAnswerField("Type your answer...", 12, components.NumericRune),
	}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return tea.Batch(s.initSession(), s.input.Focus())
}

func (s *ChallengeScreen) Title() string {
	switch s.opts.Kind {
	case kinds.KindMath:
		return "Math Challenge"
	case kinds.KindCode:
		return "Code Challenge"
	case kinds.KindRhythm:
		return "Rhythm Challenge"
	}
	return "Challenge"
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	if s.state == nil {
		return nil
	}
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Give up"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.state.Phase == sess.PhaseFeedback {
		return []layout.KeyHint{{Key: "any key", Description: "Next problem"}}
	}

	var hints []layout.KeyHint
	switch s.opts.Kind {
	case kinds.KindMath:
		hints = []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	case kinds.KindCode:
		hints = []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Select"},
			{Key: "Enter", Description: "Submit"},
		}
	case kinds.KindRhythm:
		hints = []layout.KeyHint{{Key: "Space", Description: "Tap"}}
	}
	if s.opts.AllowQuit {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	return hints
}

func (s *ChallengeScreen) initSession() tea.Cmd {
	opts := s.opts
	return func() tea.Msg {
		state, err := sess.New(context.Background(), opts.Deps, opts.Kind, opts.Difficulty, opts.AlarmID)
		return sessionInitMsg{State: state, Err: err}
	}
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case rhythmTickMsg:
		return s.handleRhythmTick(time.Time(msg))

	case finishedMsg:
		return s.handleFinished(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.state != nil && s.opts.Kind == kinds.KindMath && s.state.Phase == sess.PhaseActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChallengeScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.state = msg.State
	s.syncPrompt()
	if s.opts.Kind == kinds.KindRhythm {
		s.frame = s.opts.Deps.Now()
		return s, frameTick()
	}
	return s, nil
}

// syncPrompt resets the input widgets for the session's current problem.
func (s *ChallengeScreen) syncPrompt() {
	switch s.opts.Kind {
	case kinds.KindMath:
		s.input.Clear()
	case kinds.KindCode:
		p := s.state.Code
		s.choice.Reset(p.Question, p.Options, p.CorrectIndex)
	}
}

func (s *ChallengeScreen) handleRhythmTick(t time.Time) (screen.Screen, tea.Cmd) {
	if s.state == nil || s.finished {
		return s, nil
	}
	s.frame = t
	if s.state.Phase != sess.PhaseActive || s.confirmQuit {
		return s, frameTick()
	}

	if s.opts.Deps.Now().Sub(s.state.PromptTime) >= s.state.Rhythm.ExpireAfter() {
		out, err := sess.HandleExpire(context.Background(), s.state)
		if out.Completed || err != nil {
			return s, s.finish(err)
		}
	}
	return s, frameTick()
}

func (s *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.state == nil || s.finished {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			sess.Abandon(context.Background(), s.state)
			return s, s.finish(nil)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.state.Phase == sess.PhaseFeedback {
		sess.NextPrompt(s.state)
		s.syncPrompt()
		return s, nil
	}

	if key == "esc" {
		if s.opts.AllowQuit {
			s.confirmQuit = true
		}
		return s, nil
	}

	switch s.opts.Kind {
	case kinds.KindMath:
		return s.handleMathKey(msg)
	case kinds.KindCode:
		return s.handleCodeKey(msg)
	case kinds.KindRhythm:
		return s.handleRhythmKey(key)
	}
	return s, nil
}

func (s *ChallengeScreen) handleMathKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	if s.input.Value() == "" {
		return s, nil
	}
	ok, err := sess.HandleMathAnswer(context.Background(), s.state, s.input.Value())
	s.input.Mark(ok)
	if s.state.Solved() {
		return s, s.finish(err)
	}
	return s, nil
}

func (s *ChallengeScreen) handleCodeKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var picked bool
	s.choice, picked = s.choice.Update(msg)
	if !picked {
		return s, nil
	}
	idx, _ := s.choice.Chosen()
	_, err := sess.HandleCodeAnswer(context.Background(), s.state, idx)
	if s.state.Solved() {
		return s, s.finish(err)
	}
	return s, nil
}

func (s *ChallengeScreen) handleRhythmKey(key string) (screen.Screen, tea.Cmd) {
	if key != "space" && key != " " {
		return s, nil
	}
	elapsed := s.opts.Deps.Now().Sub(s.state.PromptTime)
	out, err := sess.HandleTap(context.Background(), s.state, elapsed)
	if out.Completed || err != nil {
		return s, s.finish(err)
	}
	return s, nil
}

// finish ends the screen; the completion hook has already run inside the
// session, so err is whatever it returned.
func (s *ChallengeScreen) finish(err error) tea.Cmd {
	s.finished = true
	return func() tea.Msg { return finishedMsg{Err: err} }
}

func (s *ChallengeScreen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	note := ""
	if msg.Err != nil {
		note = fmt.Sprintf("Alarm could not be rescheduled: %v", msg.Err)
	}
	next := summary.New(sess.BuildSummary(s.state), note)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return rhythmTickMsg(t)
	})
}
