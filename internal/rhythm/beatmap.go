package rhythm

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/rng"
)

// Generator builds beatmaps from a random source.
type Generator struct {
	src rng.Source
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src rng.Source) *Generator {
	return &Generator{src: src}
}

// Generate returns a beatmap for difficulty d, rounded and clamped to 1-5.
func (g *Generator) Generate(d float64) Beatmap {
	level := challenge.ClampDifficulty(d)
	cfg := Levels[level]
	beat := BeatInterval(cfg.BPM)

	targets := make([]Target, cfg.TargetCount)
	for i := range targets {
		if i == 0 {
			targets[i] = g.randomPoint()
		} else {
			targets[i] = g.place(targets[i-1])
		}
		targets[i].Time = g.timeFor(i, beat, cfg.Jitter)
	}

	// Jitter can swap neighbours; keep the sequence ordered by time.
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Time < targets[j].Time
	})

	return Beatmap{
		Targets:    targets,
		BPM:        cfg.BPM,
		Duration:   targets[len(targets)-1].Time + beat,
		Difficulty: level,
	}
}

// place draws up to MaxPlacementTries points looking for one whose
// distance from prev lies in [MinDistance, MaxDistance]. If none is
// found it projects from prev at FallbackDistance along a random angle
// and clamps the result back into the padded square.
func (g *Generator) place(prev Target) Target {
	for attempt := 0; attempt < MaxPlacementTries; attempt++ {
		p := g.randomPoint()
		d := Distance(prev, p)
		if d >= MinDistance && d <= MaxDistance {
			return p
		}
	}

	angle := g.src.Float64() * 2 * math.Pi
	return Target{
		X: clampCoord(prev.X + math.Cos(angle)*FallbackDistance),
		Y: clampCoord(prev.Y + math.Sin(angle)*FallbackDistance),
	}
}

func (g *Generator) randomPoint() Target {
	span := 1 - 2*EdgePadding
	return Target{
		X: EdgePadding + g.src.Float64()*span,
		Y: EdgePadding + g.src.Float64()*span,
	}
}

// timeFor returns the nominal beat time for target i, jittered for i > 0.
// The first target never moves so every beatmap starts cleanly at zero.
func (g *Generator) timeFor(i int, beat, jitter time.Duration) time.Duration {
	t := time.Duration(i) * beat
	if i == 0 || jitter <= 0 {
		return t
	}
	offset := time.Duration((g.src.Float64()*2 - 1) * float64(jitter))
	t += offset
	if t < 0 {
		t = 0
	}
	return t
}

// Distance returns the Euclidean distance between two targets.
func Distance(a, b Target) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clampCoord(v float64) float64 {
	return math.Max(EdgePadding, math.Min(1-EdgePadding, v))
}
