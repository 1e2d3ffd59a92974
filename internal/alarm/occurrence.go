package alarm

import "time"

// lookahead is how many days past today NextOccurrence scans. Seven
// extra days lets a single-day alarm whose time already passed today
// land on the same weekday next week.
const lookahead = 7

// NextOccurrence returns the first moment strictly after now at which an
// alarm with the given time and days should fire, in now's location.
// It reports false when no day is enabled.
func NextOccurrence(c Clock, days Days, now time.Time) (time.Time, bool) {
	for offset := 0; offset <= lookahead; offset++ {
		candidate := time.Date(now.Year(), now.Month(), now.Day()+offset, c.Hour, c.Minute, 0, 0, now.Location())
		if !days.Has(candidate.Weekday()) {
			continue
		}
		if offset == 0 && !candidate.After(now) {
			continue
		}
		return candidate, true
	}
	return time.Time{}, false
}

// Next returns the alarm's next occurrence after now.
func (a Alarm) Next(now time.Time) (time.Time, bool) {
	return NextOccurrence(a.Time, a.Days, now)
}
