// Package challenge holds the vocabulary shared by the wake-up challenges.
package challenge

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies which mini-game gates an alarm's dismissal.
type Kind string

const (
	KindMath   Kind = "math"
	KindCode   Kind = "code"
	KindRhythm Kind = "rhythm"
)

// Kinds lists every challenge kind in display order.
var Kinds = []Kind{KindMath, KindCode, KindRhythm}

// ParseKind parses a challenge kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown challenge kind %q (want one of math, code, rhythm)", s)
}

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 5

	DefaultDifficulty = 2
)

// ClampDifficulty rounds d to the nearest integer and clamps it into
// [MinDifficulty, MaxDifficulty]. NaN maps to MinDifficulty.
func ClampDifficulty(d float64) int {
	if math.IsNaN(d) {
		return MinDifficulty
	}
	r := math.Round(d)
	if r < MinDifficulty {
		return MinDifficulty
	}
	if r > MaxDifficulty {
		return MaxDifficulty
	}
	return int(r)
}
