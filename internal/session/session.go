// Package session runs a single wake-up challenge from first prompt to
// completion, recording each step as a challenge event.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/codebank"
	"github.com/abhisek/riseup/internal/problemgen"
	"github.com/abhisek/riseup/internal/rhythm"
	"github.com/abhisek/riseup/internal/store"
)

// CompletionFunc is invoked once when a challenge is solved. For alarm
// sessions it reschedules the alarm's next occurrence.
type CompletionFunc func(ctx context.Context, s *State) error

// ErrWrongKind is returned when an input does not match the session's
// challenge kind.
var ErrWrongKind = errors.New("input does not match challenge kind")

// New creates a session and serves its first prompt.
func New(ctx context.Context, deps Deps, kind challenge.Kind, difficulty int, alarmID string) (*State, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &State{
		SessionID:  uuid.NewString(),
		AlarmID:    alarmID,
		Kind:       kind,
		Difficulty: challenge.ClampDifficulty(float64(difficulty)),
		Phase:      PhaseActive,
		StartTime:  deps.Now(),
		deps:       deps,
	}
	s.PromptTime = s.StartTime

	switch kind {
	case challenge.KindMath:
		if deps.Math == nil {
			return nil, fmt.Errorf("math challenge: no generator")
		}
	case challenge.KindCode:
		if deps.Code == nil {
			return nil, fmt.Errorf("code challenge: no problem bank")
		}
		s.recent = codebank.NewRecent(deps.RecentWindow)
	case challenge.KindRhythm:
		if deps.Rhythm == nil {
			return nil, fmt.Errorf("rhythm challenge: no beatmap generator")
		}
		s.Rhythm = rhythm.NewTracker(deps.Rhythm, float64(s.Difficulty), deps.RequiredStreak)
	default:
		return nil, fmt.Errorf("unknown challenge kind %q", kind)
	}

	s.record(ctx, store.ActionStart, "", "", false)
	NextPrompt(s)
	return s, nil
}

// NextPrompt replaces the current problem with a fresh one and returns
// to the active phase. Rhythm sessions only reset the prompt clock; the
// tracker owns its beatmap.
func NextPrompt(s *State) {
	switch s.Kind {
	case challenge.KindMath:
		s.Math = s.deps.Math.Generate(float64(s.Difficulty))
	case challenge.KindCode:
		p := s.recent.Next(s.deps.Code)
		s.Code = &p
	}
	if s.Phase == PhaseFeedback {
		s.Phase = PhaseActive
	}
	s.PromptTime = s.deps.Now()
}

// HandleMathAnswer checks typed input against the current math problem.
// A wrong answer moves to feedback; the caller serves a new problem with
// NextPrompt.
func HandleMathAnswer(ctx context.Context, s *State, input string) (bool, error) {
	if s.Kind != challenge.KindMath || s.Math == nil {
		return false, ErrWrongKind
	}
	if s.Phase != PhaseActive {
		return false, nil
	}

	correct := problemgen.CheckInput(s.Math, input)
	s.LastReveal = formatAnswer(s.Math.Answer)
	s.record(ctx, store.ActionAnswer, s.Math.Display, input, correct)
	return correct, settle(ctx, s, correct)
}

// HandleCodeAnswer checks the chosen option index.
func HandleCodeAnswer(ctx context.Context, s *State, index int) (bool, error) {
	if s.Kind != challenge.KindCode || s.Code == nil {
		return false, ErrWrongKind
	}
	if s.Phase != PhaseActive {
		return false, nil
	}

	correct := codebank.CheckAnswer(*s.Code, index)
	s.LastReveal = s.Code.Options[s.Code.CorrectIndex]
	response := ""
	if index >= 0 && index < len(s.Code.Options) {
		response = s.Code.Options[index]
	}
	s.record(ctx, store.ActionAnswer, s.Code.ID, response, correct)
	return correct, settle(ctx, s, correct)
}

// HandleTap judges a tap made elapsed after the current target's
// approach began.
func HandleTap(ctx context.Context, s *State, elapsed time.Duration) (rhythm.Outcome, error) {
	if s.Kind != challenge.KindRhythm {
		return rhythm.Outcome{}, ErrWrongKind
	}
	return applyOutcome(ctx, s, s.Rhythm.Hit(elapsed), elapsed.String())
}

// HandleExpire records the current target as missed.
func HandleExpire(ctx context.Context, s *State) (rhythm.Outcome, error) {
	if s.Kind != challenge.KindRhythm {
		return rhythm.Outcome{}, ErrWrongKind
	}
	return applyOutcome(ctx, s, s.Rhythm.Expire(), "expired")
}

func applyOutcome(ctx context.Context, s *State, out rhythm.Outcome, response string) (rhythm.Outcome, error) {
	if s.Phase != PhaseActive {
		return out, nil
	}
	s.LastOutcome = out
	s.Attempts++
	hit := out.Judgement != rhythm.Miss
	if hit {
		s.Correct++
	}
	s.record(ctx, store.ActionHit, out.Judgement.String(), response, hit)
	s.PromptTime = s.deps.Now()

	if out.Completed {
		return out, complete(ctx, s)
	}
	return out, nil
}

// Abandon ends the session without solving it.
func Abandon(ctx context.Context, s *State) {
	if s.Phase == PhaseComplete || s.Phase == PhaseAbandoned {
		return
	}
	s.Phase = PhaseAbandoned
	s.record(ctx, store.ActionAbandon, "", "", false)
}

// settle updates counters after a math or code answer.
func settle(ctx context.Context, s *State, correct bool) error {
	s.Attempts++
	s.LastAnswerCorrect = correct
	if !correct {
		s.Phase = PhaseFeedback
		return nil
	}
	s.Correct++
	return complete(ctx, s)
}

func complete(ctx context.Context, s *State) error {
	s.Phase = PhaseComplete
	s.record(ctx, store.ActionComplete, "", "", true)
	if s.deps.OnComplete == nil {
		return nil
	}
	if err := s.deps.OnComplete(ctx, s); err != nil {
		return fmt.Errorf("completion hook: %w", err)
	}
	return nil
}

// record appends an event. Failures are logged; a broken event log must
// never keep anyone from dismissing an alarm.
func (s *State) record(ctx context.Context, action, prompt, response string, correct bool) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendChallengeEvent(ctx, store.ChallengeEventData{
		SessionID:  s.SessionID,
		AlarmID:    s.AlarmID,
		Kind:       string(s.Kind),
		Difficulty: s.Difficulty,
		Action:     action,
		Prompt:     prompt,
		Response:   response,
		Correct:    correct,
		ElapsedMs:  s.deps.Now().Sub(s.PromptTime).Milliseconds(),
	})
	if err != nil {
		s.deps.Logger.Warn("record challenge event", "action", action, "error", err)
	}
}

func formatAnswer(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
