package alarm

import (
	"fmt"
	"strings"
	"time"
)

// Days is the set of enabled weekdays, index 0 = Monday ... 6 = Sunday.
type Days [7]bool

var dayNames = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var fullDayNames = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseDays parses a comma-separated list such as "mon,wed,fri" or
// "monday,friday". Each entry must be a 3-letter or full day name.
// The shorthands "daily", "weekdays" and "weekends" are accepted, and an
// empty string yields no days.
func ParseDays(s string) (Days, error) {
	var d Days
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return d, nil
	case "daily", "everyday":
		return Days{true, true, true, true, true, true, true}, nil
	case "weekdays":
		return Days{true, true, true, true, true, false, false}, nil
	case "weekends":
		return Days{false, false, false, false, false, true, true}, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		found := false
		for i, name := range dayNames {
			if part == name || part == fullDayNames[i] {
				d[i] = true
				found = true
				break
			}
		}
		if !found {
			return Days{}, fmt.Errorf("unknown day %q", part)
		}
	}
	return d, nil
}

// Any reports whether at least one day is enabled.
func (d Days) Any() bool {
	for _, on := range d {
		if on {
			return true
		}
	}
	return false
}

// Has reports whether the given Go weekday is enabled.
func (d Days) Has(wd time.Weekday) bool {
	return d[Index(wd)]
}

func (d Days) String() string {
	var names []string
	for i, on := range d {
		if on {
			names = append(names, dayNames[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	if len(names) == 7 {
		return "daily"
	}
	return strings.Join(names, ",")
}
