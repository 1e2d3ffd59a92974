package rhythm

import "time"

// DefaultRequiredStreak is the number of consecutive non-miss taps
// needed to complete the challenge.
const DefaultRequiredStreak = 5

// Outcome reports what a single tap did to the session.
type Outcome struct {
	Judgement   Judgement
	Streak      int
	Completed   bool
	Regenerated bool
}

// Tracker runs a rhythm session: it owns the current beatmap, the index of
// the next target and the consecutive-hit streak.
type Tracker struct {
	gen        *Generator
	difficulty float64
	required   int

	beatmap     Beatmap
	index       int
	streak      int
	completed   bool
	generations int

	Perfects int
	Goods    int
	Misses   int
}

// NewTracker starts a session with a freshly generated beatmap.
func NewTracker(gen *Generator, difficulty float64, required int) *Tracker {
	if required <= 0 {
		required = DefaultRequiredStreak
	}
	t := &Tracker{gen: gen, difficulty: difficulty, required: required}
	t.regenerate()
	return t
}

func (t *Tracker) regenerate() {
	t.beatmap = t.gen.Generate(t.difficulty)
	t.index = 0
	t.generations++
}

// Beatmap returns the beatmap currently being played.
func (t *Tracker) Beatmap() Beatmap { return t.beatmap }

// Index returns the index of the next target.
func (t *Tracker) Index() int { return t.index }

// Streak returns the current run of consecutive non-miss taps.
func (t *Tracker) Streak() int { return t.streak }

// Required returns the streak needed to complete.
func (t *Tracker) Required() int { return t.required }

// Completed reports whether the session has been won.
func (t *Tracker) Completed() bool { return t.completed }

// Generations returns how many beatmaps this session has generated.
func (t *Tracker) Generations() int { return t.generations }

// Current returns the next target to hit.
func (t *Tracker) Current() Target { return t.beatmap.Targets[t.index] }

// ExpireAfter is how long a target stays tappable after its approach starts.
func (t *Tracker) ExpireAfter() time.Duration {
	return t.beatmap.BeatInterval() + GoodWindow
}

// Hit judges a tap made elapsed after the current target's approach began.
func (t *Tracker) Hit(elapsed time.Duration) Outcome {
	return t.record(Classify(elapsed, t.beatmap.BeatInterval()))
}

// Expire records the current target as missed because it was never tapped.
func (t *Tracker) Expire() Outcome {
	return t.record(Miss)
}

// record applies a judgement. A miss resets the streak and replaces the
// beatmap; running out of targets without completing also replaces it.
func (t *Tracker) record(j Judgement) Outcome {
	if t.completed {
		return Outcome{Judgement: j, Streak: t.streak, Completed: true}
	}

	out := Outcome{Judgement: j}
	switch j {
	case Perfect:
		t.Perfects++
	case Good:
		t.Goods++
	default:
		t.Misses++
	}

	if j == Miss {
		t.streak = 0
		t.regenerate()
		out.Regenerated = true
		return out
	}

	t.streak++
	out.Streak = t.streak
	if t.streak >= t.required {
		t.completed = true
		out.Completed = true
		return out
	}

	t.index++
	if t.index >= len(t.beatmap.Targets) {
		t.regenerate()
		out.Regenerated = true
	}
	return out
}
