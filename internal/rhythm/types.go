// Package rhythm generates beatmaps for the rhythm-tapping challenge and
// judges the user's taps against them.
package rhythm

import "time"

// Target is a single tap target. X and Y are normalized to [0, 1];
// Time is measured from the start of the beatmap.
type Target struct {
	X    float64
	Y    float64
	Time time.Duration
}

// Beatmap is an ordered sequence of targets. Beatmaps are ephemeral:
// a fresh one is generated on every miss and whenever the targets run out.
type Beatmap struct {
	Targets    []Target
	BPM        int
	Duration   time.Duration
	Difficulty int
}

// BeatInterval returns the spacing between nominal beats.
func (b Beatmap) BeatInterval() time.Duration {
	return BeatInterval(b.BPM)
}

// BeatInterval returns 60000/bpm milliseconds as a Duration.
func BeatInterval(bpm int) time.Duration {
	if bpm <= 0 {
		return 0
	}
	return time.Minute / time.Duration(bpm)
}

// Level is the fixed per-difficulty configuration.
type Level struct {
	BPM         int
	TargetCount int
	Jitter      time.Duration
}

// Levels is indexed by difficulty 1-5.
var Levels = map[int]Level{
	1: {BPM: 60, TargetCount: 5, Jitter: 0},
	2: {BPM: 75, TargetCount: 6, Jitter: 0},
	3: {BPM: 90, TargetCount: 7, Jitter: 25 * time.Millisecond},
	4: {BPM: 105, TargetCount: 8, Jitter: 40 * time.Millisecond},
	5: {BPM: 120, TargetCount: 8, Jitter: 50 * time.Millisecond},
}

// Spatial constraints in normalized units.
const (
	EdgePadding       = 0.15
	MinDistance       = 0.2
	MaxDistance       = 0.6
	FallbackDistance  = (MinDistance + MaxDistance) / 2
	MaxPlacementTries = 100
)
