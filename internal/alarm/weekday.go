package alarm

import (
	"fmt"
	"time"
)

// Two weekday numberings meet at the facility boundary and must never be
// mixed:
//
//	internal index: 0 = Monday ... 6 = Sunday (Days)
//	external day:   1 = Sunday, 2 = Monday ... 7 = Saturday (facility)
var internalToExternal = [7]int{2, 3, 4, 5, 6, 7, 1}

// ToExternal maps an internal day index to the facility's numbering.
func ToExternal(index int) (int, error) {
	if index < 0 || index > 6 {
		return 0, fmt.Errorf("internal day index %d not in 0-6", index)
	}
	return internalToExternal[index], nil
}

// FromExternal maps a facility weekday back to the internal index.
func FromExternal(day int) (int, error) {
	if day < 1 || day > 7 {
		return 0, fmt.Errorf("external weekday %d not in 1-7", day)
	}
	return (day + 5) % 7, nil
}

// ExternalWeekdays returns the enabled days in the facility's numbering,
// in internal (Monday-first) order.
func ExternalWeekdays(d Days) []int {
	var out []int
	for i, on := range d {
		if on {
			out = append(out, internalToExternal[i])
		}
	}
	return out
}

// Index maps a Go weekday to the internal index.
func Index(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ExternalFromWeekday maps a Go weekday directly to the facility numbering.
func ExternalFromWeekday(wd time.Weekday) int {
	return int(wd) + 1
}
