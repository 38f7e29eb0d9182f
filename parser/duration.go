package parser

import (
	"fmt"
	"time"
)

// durationField holds a parsed `N unit` duration literal (e.g.
// `30 seconds`, `1 day`) before conversion to time.Duration.
type durationField time.Duration

func (d durationField) asDuration() time.Duration { return time.Duration(d) }

func durationFromUnits(n int, unit string) (durationField, error) {
	var per time.Duration
	switch unit {
	case "ms", "millisecond", "milliseconds":
		per = time.Millisecond
	case "s", "second", "seconds":
		per = time.Second
	case "m", "minute", "minutes":
		per = time.Minute
	case "h", "hour", "hours":
		per = time.Hour
	case "d", "day", "days":
		per = 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown duration unit %q", unit)
	}
	return durationField(time.Duration(n) * per), nil
}
