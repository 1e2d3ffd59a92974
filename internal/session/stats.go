package session

import (
	"time"

	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/store"
)

// KindStats aggregates answers for one challenge kind.
type KindStats struct {
	Sessions  int
	Completed int
	Attempts  int
	Correct   int
}

// Stats summarises the challenge event log.
type Stats struct {
	PerKind map[challenge.Kind]KindStats

	// WakeStreak counts consecutive days, ending today or yesterday, with
	// at least one completed alarm challenge. Practice runs do not count.
	WakeStreak int

	LastCompleted time.Time
}

// ComputeStats folds events (in sequence order) into Stats. Days are
// measured in now's location.
func ComputeStats(events []store.ChallengeEvent, now time.Time) Stats {
	st := Stats{PerKind: make(map[challenge.Kind]KindStats)}
	wakeDays := make(map[string]bool)

	for _, e := range events {
		kind := challenge.Kind(e.Kind)
		ks := st.PerKind[kind]
		switch e.Action {
		case store.ActionStart:
			ks.Sessions++
		case store.ActionAnswer, store.ActionHit:
			ks.Attempts++
			if e.Correct {
				ks.Correct++
			}
		case store.ActionComplete:
			ks.Completed++
			if e.AlarmID != "" {
				wakeDays[dayKey(e.Timestamp.In(now.Location()))] = true
			}
			if e.Timestamp.After(st.LastCompleted) {
				st.LastCompleted = e.Timestamp
			}
		}
		st.PerKind[kind] = ks
	}

	st.WakeStreak = streak(wakeDays, now)
	return st
}

func streak(days map[string]bool, now time.Time) int {
	day := now
	if !days[dayKey(day)] {
		// Today not done yet; a streak through yesterday still stands.
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for days[dayKey(day)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
