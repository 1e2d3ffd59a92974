package session

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/codebank"
	"github.com/abhisek/riseup/internal/problemgen"
	"github.com/abhisek/riseup/internal/rhythm"
	"github.com/abhisek/riseup/internal/rng"
	"github.com/abhisek/riseup/internal/store"
)

type eventLog struct {
	events []store.ChallengeEventData
	err    error
}

func (l *eventLog) AppendChallengeEvent(_ context.Context, data store.ChallengeEventData) error {
	if l.err != nil {
		return l.err
	}
	l.events = append(l.events, data)
	return nil
}

func (l *eventLog) QueryChallengeEvents(context.Context, store.QueryOpts) ([]store.ChallengeEvent, error) {
	return nil, nil
}

func (l *eventLog) actions() []string {
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.Action
	}
	return out
}

func testDeps(t *testing.T, log *eventLog) Deps {
	t.Helper()
	src := rng.New(42)
	bank, err := codebank.NewDefault(src)
	require.NoError(t, err)
	return Deps{
		Math:           problemgen.New(src, problemgen.DefaultConfig()),
		Code:           bank,
		Rhythm:         rhythm.NewGenerator(src),
		Events:         log,
		RecentWindow:   3,
		RequiredStreak: 5,
	}
}

func answerOf(p *problemgen.Problem) string {
	return strconv.FormatFloat(p.Answer, 'f', -1, 64)
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	_, err := New(context.Background(), testDeps(t, &eventLog{}), challenge.Kind("chess"), 2, "")
	assert.Error(t, err)
}

func TestNew_ClampsDifficulty(t *testing.T) {
	s, err := New(context.Background(), testDeps(t, &eventLog{}), challenge.KindMath, 9, "")
	require.NoError(t, err)
	assert.Equal(t, challenge.MaxDifficulty, s.Difficulty)
	assert.Equal(t, challenge.MaxDifficulty, s.Math.Difficulty)
}

func TestMath_WrongThenRight(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	completions := 0
	deps := testDeps(t, log)
	deps.OnComplete = func(_ context.Context, s *State) error {
		completions++
		assert.Equal(t, "a1", s.AlarmID)
		return nil
	}

	s, err := New(ctx, deps, challenge.KindMath, 2, "a1")
	require.NoError(t, err)
	first := s.Math

	ok, err := HandleMathAnswer(ctx, s, "-1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, PhaseFeedback, s.Phase)
	assert.Equal(t, answerOf(first), s.LastReveal)

	// Answers during feedback are ignored.
	ok, err = HandleMathAnswer(ctx, s, answerOf(first))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Attempts)

	NextPrompt(s)
	assert.Equal(t, PhaseActive, s.Phase)

	ok, err = HandleMathAnswer(ctx, s, answerOf(s.Math))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Solved())
	assert.Equal(t, 1, completions)
	assert.Equal(t, 2, s.Attempts)
	assert.Equal(t, 1, s.Correct)

	assert.Equal(t, []string{
		store.ActionStart, store.ActionAnswer, store.ActionAnswer, store.ActionComplete,
	}, log.actions())
	for _, e := range log.events {
		assert.Equal(t, s.SessionID, e.SessionID)
		assert.Equal(t, "math", e.Kind)
	}
}

func TestMath_WrongKindInput(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, testDeps(t, &eventLog{}), challenge.KindMath, 1, "")
	require.NoError(t, err)

	_, err = HandleCodeAnswer(ctx, s, 0)
	assert.ErrorIs(t, err, ErrWrongKind)
	_, err = HandleTap(ctx, s, time.Second)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestCode_WrongAnswerDrawsDifferentProblem(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, testDeps(t, &eventLog{}), challenge.KindCode, 1, "")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		require.False(t, seen[s.Code.ID], "problem %s repeated within the recent window", s.Code.ID)
		seen[s.Code.ID] = true

		wrong := (s.Code.CorrectIndex + 1) % len(s.Code.Options)
		ok, err := HandleCodeAnswer(ctx, s, wrong)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, s.Code.Options[s.Code.CorrectIndex], s.LastReveal)
		NextPrompt(s)
	}
	assert.Len(t, s.RecentCodeIDs(), 3)

	ok, err := HandleCodeAnswer(ctx, s, s.Code.CorrectIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.Solved())
}

func TestRhythm_StreakCompletes(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	s, err := New(ctx, testDeps(t, log), challenge.KindRhythm, 3, "")
	require.NoError(t, err)

	beat := s.Rhythm.Beatmap().BeatInterval()
	var out rhythm.Outcome
	for i := 0; i < 5; i++ {
		out, err = HandleTap(ctx, s, beat)
		require.NoError(t, err)
		assert.Equal(t, rhythm.Perfect, out.Judgement)
	}
	assert.True(t, out.Completed)
	assert.True(t, s.Solved())

	sum := BuildSummary(s)
	assert.Equal(t, 5, sum.Perfects)
	assert.Equal(t, 5, sum.Attempts)
	assert.InDelta(t, 1.0, sum.Accuracy(), 1e-9)
	assert.Equal(t, store.ActionComplete, log.events[len(log.events)-1].Action)
}

func TestRhythm_ExpireCountsAsMiss(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, testDeps(t, &eventLog{}), challenge.KindRhythm, 1, "")
	require.NoError(t, err)

	out, err := HandleExpire(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, rhythm.Miss, out.Judgement)
	assert.True(t, out.Regenerated)
	assert.Equal(t, 1, s.Attempts)
	assert.Equal(t, 0, s.Correct)
	assert.False(t, s.Solved())
}

func TestAbandon(t *testing.T) {
	ctx := context.Background()
	log := &eventLog{}
	s, err := New(ctx, testDeps(t, log), challenge.KindMath, 1, "")
	require.NoError(t, err)

	Abandon(ctx, s)
	Abandon(ctx, s)
	assert.Equal(t, PhaseAbandoned, s.Phase)
	assert.Equal(t, []string{store.ActionStart, store.ActionAbandon}, log.actions())
}

func TestCompletionHookError(t *testing.T) {
	ctx := context.Background()
	deps := testDeps(t, &eventLog{})
	boom := errors.New("boom")
	deps.OnComplete = func(context.Context, *State) error { return boom }

	s, err := New(ctx, deps, challenge.KindMath, 1, "a1")
	require.NoError(t, err)
	_, err = HandleMathAnswer(ctx, s, answerOf(s.Math))
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.Solved(), "a failing hook must not undo the win")
}

func TestEventFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, testDeps(t, &eventLog{err: errors.New("disk full")}), challenge.KindMath, 1, "")
	require.NoError(t, err)
	ok, err := HandleMathAnswer(ctx, s, answerOf(s.Math))
	require.NoError(t, err)
	assert.True(t, ok)
}
