package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultLineColor is used when a line has no catalog entry.
const DefaultLineColor = "#3b82f6"

// LineSchedule holds the ascending departures of one line at one stop.
type LineSchedule struct {
	Line       string
	Departures []MinuteOfDay
}

// Represents a fixed-line transit stop and its timetable.
// Schedules keep catalog order; that order is the "first encountered"
// order used when two lines offer the same wait.
type TransitStop struct {
	ID        string
	Name      string
	Coord     GeoPoint
	Schedules []LineSchedule
}

// Display metadata for a line identifier.
type Line struct {
	ShortName string
	Color     string
}

// Validate enforces the timetable invariants: every listed line has at least
// one departure, departures are ascending and inside a single day, and a
// line is listed once.
func (s TransitStop) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("stop id must be non-empty")
	}
	if err := s.Coord.Validate(); err != nil {
		return fmt.Errorf("stop %q: %w", s.ID, err)
	}

	seen := make(map[string]struct{}, len(s.Schedules))
	for _, ls := range s.Schedules {
		if _, dup := seen[ls.Line]; dup {
			return fmt.Errorf("stop %q: line %q listed twice", s.ID, ls.Line)
		}
		seen[ls.Line] = struct{}{}

		if len(ls.Departures) == 0 {
			return fmt.Errorf("stop %q: line %q has no departures", s.ID, ls.Line)
		}
		for i, d := range ls.Departures {
			if !d.Valid() {
				return fmt.Errorf("stop %q: line %q: departure %d outside the service day", s.ID, ls.Line, d)
			}
			if i > 0 && d < ls.Departures[i-1] {
				return fmt.Errorf("stop %q: line %q: departures not ascending at index %d", s.ID, ls.Line, i)
			}
		}
	}
	return nil
}

// Lines returns the line identifiers served at the stop, in catalog order.
func (s TransitStop) Lines() []string {
	out := make([]string, 0, len(s.Schedules))
	for _, ls := range s.Schedules {
		out = append(out, ls.Line)
	}
	return out
}

// Departures returns the departure sequence of line at the stop.
func (s TransitStop) Departures(line string) ([]MinuteOfDay, bool) {
	for _, ls := range s.Schedules {
		if ls.Line == line {
			return ls.Departures, true
		}
	}
	return nil, false
}

// NextDeparture returns the first departure of line at or after the given
// minute. It reports false when the stop does not serve the line or no
// departure qualifies; an after value past the end of the day never matches.
func (s TransitStop) NextDeparture(line string, after MinuteOfDay) (MinuteOfDay, bool) {
	deps, ok := s.Departures(line)
	if !ok || after >= MinutesPerDay {
		return 0, false
	}

	i := sort.Search(len(deps), func(i int) bool { return deps[i] >= after })
	if i == len(deps) {
		return 0, false
	}
	return deps[i], true
}

// SortDepartures returns a sorted copy of deps without duplicates.
// Used when ingesting timetables.
func SortDepartures(deps []MinuteOfDay) []MinuteOfDay {
	out := make([]MinuteOfDay, len(deps))
	copy(out, deps)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	uniq := out[:0]
	for i, d := range out {
		if i > 0 && d == out[i-1] {
			continue
		}
		uniq = append(uniq, d)
	}
	return uniq
}
