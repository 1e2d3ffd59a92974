package session

import (
	"time"

	"github.com/abhisek/riseup/internal/challenge"
)

// Summary holds the end-of-session numbers shown once a challenge ends.
type Summary struct {
	Kind       challenge.Kind
	Difficulty int
	Solved     bool
	Attempts   int
	Correct    int
	Elapsed    time.Duration

	// Rhythm only.
	Perfects    int
	Goods       int
	Misses      int
	Generations int
}

// Accuracy returns the fraction of attempts that were correct.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// BuildSummary computes the session summary from its final state.
func BuildSummary(s *State) Summary {
	sum := Summary{
		Kind:       s.Kind,
		Difficulty: s.Difficulty,
		Solved:     s.Solved(),
		Attempts:   s.Attempts,
		Correct:    s.Correct,
		Elapsed:    s.Elapsed(),
	}
	if s.Rhythm != nil {
		sum.Perfects = s.Rhythm.Perfects
		sum.Goods = s.Rhythm.Goods
		sum.Misses = s.Rhythm.Misses
		sum.Generations = s.Rhythm.Generations()
	}
	return sum
}
