// Package alarm defines the persisted alarm model and the pure calendar
// logic the scheduler builds on.
package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/riseup/internal/challenge"
)

var (
	// ErrNotFound is returned when no alarm has the requested id.
	ErrNotFound = errors.New("alarm not found")

	// ErrInvalidTime is returned for an hour or minute out of range.
	ErrInvalidTime = errors.New("invalid alarm time")
)

// Alarm is a user-configured recurring alarm.
type Alarm struct {
	// ID is the short identifier assigned at creation. Stable for the
	// alarm's lifetime and never reused after deletion.
	ID string

	// Time is local wall-clock time; there is no timezone field.
	Time Clock

	// Days holds the enabled weekdays, index 0 = Monday ... 6 = Sunday.
	Days Days

	Sound Sound

	// Armed drives whether the scheduler keeps an external schedule.
	Armed bool

	// Challenge selects the mini-game that gates dismissal.
	Challenge challenge.Kind

	// Difficulty is the challenge level, 1-5.
	Difficulty int

	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clock is an hour:minute wall-clock time.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour).
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: hour %q", ErrInvalidTime, hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: minute %q", ErrInvalidTime, mm)
	}
	c := Clock{Hour: h, Minute: m}
	return c, c.Validate()
}

// Validate checks the hour and minute ranges.
func (c Clock) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("%w: hour %d not in 0-23", ErrInvalidTime, c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return fmt.Errorf("%w: minute %d not in 0-59", ErrInvalidTime, c.Minute)
	}
	return nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Validate checks the alarm's fields. A zero-day alarm is valid; the
// scheduler treats it as a no-op.
func (a Alarm) Validate() error {
	if err := a.Time.Validate(); err != nil {
		return err
	}
	if !a.Sound.Valid() {
		return fmt.Errorf("unknown sound %q", a.Sound)
	}
	if _, err := challenge.ParseKind(string(a.Challenge)); err != nil {
		return err
	}
	if a.Difficulty < challenge.MinDifficulty || a.Difficulty > challenge.MaxDifficulty {
		return fmt.Errorf("difficulty %d not in %d-%d", a.Difficulty, challenge.MinDifficulty, challenge.MaxDifficulty)
	}
	return nil
}
