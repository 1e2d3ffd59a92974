package alarm

import (
	"fmt"
	"strings"
)

// Sound is a key from the fixed set of alarm sounds. The value is passed
// to the alarm facility as-is.
type Sound string

const (
	SoundClassic  Sound = "classic"
	SoundRadar    Sound = "radar"
	SoundBeacon   Sound = "beacon"
	SoundChimes   Sound = "chimes"
	SoundBirdsong Sound = "birdsong"
	SoundDigital  Sound = "digital"
)

// Sounds lists every valid sound.
var Sounds = []Sound{SoundClassic, SoundRadar, SoundBeacon, SoundChimes, SoundBirdsong, SoundDigital}

// DefaultSound is used when none is chosen.
const DefaultSound = SoundClassic

// Valid reports whether s is in the closed set.
func (s Sound) Valid() bool {
	for _, known := range Sounds {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSound parses a sound key (case-insensitive).
func ParseSound(s string) (Sound, error) {
	snd := Sound(strings.ToLower(strings.TrimSpace(s)))
	if !snd.Valid() {
		return "", fmt.Errorf("unknown sound %q", s)
	}
	return snd, nil
}
