package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the exclusive upper bound of a Clock value; 24:00 is
// accepted as an interval end.
const MinutesPerDay = 1440

// Clock is a wall-clock time of day in minutes from midnight. It carries no
// date; callers attach one with On.
type Clock int

// NewClock builds a Clock from hours and minutes.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" (or "H:MM"). "24:00" is accepted.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || len(m) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return NewClock(hour, minute), nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns c shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On attaches c to the calendar day of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location())
}

// ClockOf returns the time-of-day part of t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

// Interval is a half-open time range [Start, End) within a single day.
type Interval struct {
	Start Clock
	End   Clock
}

// NewInterval builds an interval without validating it.
func NewInterval(start, end Clock) Interval {
	return Interval{Start: start, End: end}
}

// ParseInterval parses "HH:MM-HH:MM". The en dash used by some planners is
// accepted as separator.
func ParseInterval(s string) (Interval, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "–", "-")
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return Interval{}, fmt.Errorf("invalid range %q: expected HH:MM-HH:MM", s)
	}
	start, err := ParseClock(a)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseClock(b)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Valid reports whether Start < End and both lie within one day.
func (iv Interval) Valid() bool {
	return iv.Start >= 0 && iv.Start < iv.End && iv.End <= MinutesPerDay
}

// Minutes returns End - Start.
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

// Contains reports whether c lies inside [Start, End).
func (iv Interval) Contains(c Clock) bool {
	return iv.Start <= c && c < iv.End
}

// Covers reports whether other lies entirely inside iv.
func (iv Interval) Covers(other Interval) bool {
	return iv.Start <= other.Start && other.End <= iv.End
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}
