package session

import (
	"log/slog"
	"time"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/codebank"
	"github.com/abhisek/riseup/internal/problemgen"
	"github.com/abhisek/riseup/internal/rhythm"
	"github.com/abhisek/riseup/internal/store"
)

// Phase represents the current phase of a challenge session.
type Phase int

const (
	PhaseActive    Phase = iota // Waiting for input
	PhaseFeedback               // Showing the result of the last answer
	PhaseComplete               // Challenge solved
	PhaseAbandoned              // User quit without solving
)

// Deps are the generators and sinks a session draws on.
type Deps struct {
	Math   *problemgen.Generator
	Code   *codebank.Bank
	Rhythm *rhythm.Generator

	// Events receives one record per session step. Optional.
	Events store.EventRepo

	// OnComplete runs once when the challenge is solved. Optional.
	OnComplete CompletionFunc

	Logger *slog.Logger
	Now    func() time.Time

	// RecentWindow is how many code problems to avoid repeating.
	RecentWindow int

	// RequiredStreak is the rhythm streak needed to win.
	RequiredStreak int
}

// State tracks the runtime state of an active challenge.
type State struct {
	// SessionID identifies this run in the event log.
	SessionID string

	// AlarmID is the alarm being dismissed; empty for practice.
	AlarmID string

	Kind       challenge.Kind
	Difficulty int
	Phase      Phase

	// StartTime is when the session began.
	StartTime time.Time

	// PromptTime is when the current problem or target was shown.
	PromptTime time.Time

	// Attempts counts answers (math, code) or taps (rhythm).
	Attempts int

	// Correct counts right answers or non-miss taps.
	Correct int

	// LastAnswerCorrect is the verdict on the latest answer.
	LastAnswerCorrect bool

	// LastReveal is the correct answer shown after a wrong one.
	LastReveal string

	// Math holds the current arithmetic problem.
	Math *problemgen.Problem

	// Code holds the current code-output problem.
	Code *codebank.CodeProblem

	// Rhythm runs the rhythm challenge.
	Rhythm *rhythm.Tracker

	// LastOutcome is the result of the latest tap.
	LastOutcome rhythm.Outcome

	deps   Deps
	recent *codebank.Recent
}

// Solved reports whether the challenge has been completed.
func (s *State) Solved() bool {
	return s.Phase == PhaseComplete
}

// Elapsed returns how long the session has been running.
func (s *State) Elapsed() time.Duration {
	return s.deps.Now().Sub(s.StartTime)
}

// RecentCodeIDs returns the code problems shown most recently.
func (s *State) RecentCodeIDs() []string {
	if s.recent == nil {
		return nil
	}
	return s.recent.IDs()
}
