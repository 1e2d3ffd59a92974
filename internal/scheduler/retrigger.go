package scheduler

import "time"

const (
	// RetriggerCount is the maximum number of re-trigger alarms per occurrence.
	RetriggerCount = 10

	// RetriggerStep is the spacing between re-triggers.
	RetriggerStep = 2 * time.Minute
)

// RetriggerTimes returns base+2m, base+4m ... base+20m, dropping every
// time that is not after now.
func RetriggerTimes(base, now time.Time) []time.Time {
	var out []time.Time
	for i := 1; i <= RetriggerCount; i++ {
		t := base.Add(time.Duration(i) * RetriggerStep)
		if !t.After(now) {
			continue
		}
		out = append(out, t)
	}
	return out
}
