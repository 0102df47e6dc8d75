package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a calendar date in the schedule's wire format.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return parsed, nil
}

// ClockMinutes converts an "HH:MM" clock value to minutes since midnight.
func ClockMinutes(value string) (int, error) {
	parsed, err := time.Parse(ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected %s", value, ClockLayout)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// MinutesToClock renders minutes since midnight back to "HH:MM".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsSlotAligned reports whether a start offset lands on the scheduling
// grid of the given slot size.
func IsSlotAligned(minutes, slotMinutes int) bool {
	return slotMinutes > 0 && minutes%slotMinutes == 0
}
