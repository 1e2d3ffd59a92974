package rhythm

import "time"

// Judgement classifies a single tap.
type Judgement int

const (
	Miss Judgement = iota
	Good
	Perfect
)

func (j Judgement) String() string {
	switch j {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	default:
		return "miss"
	}
}

// Hit windows, measured as distance from the perfect instant.
const (
	PerfectWindow = 50 * time.Millisecond
	GoodWindow    = 120 * time.Millisecond
)

// Classify judges a tap made elapsed after the target's approach started.
// The perfect instant is one beat interval into the approach.
func Classify(elapsed, beatInterval time.Duration) Judgement {
	delta := elapsed - beatInterval
	if delta < 0 {
		delta = -delta
	}
	return ClassifyDelta(delta)
}

// ClassifyDelta judges an absolute timing error.
func ClassifyDelta(delta time.Duration) Judgement {
	switch {
	case delta < PerfectWindow:
		return Perfect
	case delta < GoodWindow:
		return Good
	default:
		return Miss
	}
}
