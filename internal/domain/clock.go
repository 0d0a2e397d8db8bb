package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay bounds a MinuteOfDay. Timetables model a single service day:
// nothing wraps past midnight.
const MinutesPerDay = 24 * 60

// MinuteOfDay is a clock time expressed as minutes since midnight, [0, 1439].
type MinuteOfDay int

// ParseClock converts a zero padded or unpadded "HH:MM" string.
func ParseClock(s string) (MinuteOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("parse clock %q: invalid hour", s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 || len(m) != 2 {
		return 0, fmt.Errorf("parse clock %q: invalid minute", s)
	}
	return MinuteOfDay(hours*60 + minutes), nil
}

// ClockOf returns the minute of day of t in t's own location.
func ClockOf(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// Valid reports whether m lies inside a single service day.
func (m MinuteOfDay) Valid() bool { return m >= 0 && m < MinutesPerDay }

// Format as zero padded "HH:MM". Values past midnight wrap for display only.
func (m MinuteOfDay) String() string {
	v := int(m) % MinutesPerDay
	if v < 0 {
		v += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", v/60, v%60)
}
