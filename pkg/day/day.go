// Package day holds the wall-clock date and time-of-day string types shared
// by every layer of lumina.
//
// A Date is always "YYYY-MM-DD" and a Clock is always "HH:mm". Both are zero
// padded so that plain string comparison orders them chronologically; range
// checks in the task package rely on that, so all dates must be built here.
package day

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// LayoutISO is the wire layout of a Date.
	LayoutISO = "2006-01-02"
	// LayoutClock is the wire layout of a Clock.
	LayoutClock = "15:04"
)

var (
	// ErrInvalidDate is returned for strings that are not zero padded
	// YYYY-MM-DD calendar dates.
	ErrInvalidDate = errors.New("day: invalid date, want YYYY-MM-DD")
	// ErrInvalidClock is returned for strings that are not HH:mm times.
	ErrInvalidClock = errors.New("day: invalid time, want HH:mm")
)

// Date is a local calendar date in YYYY-MM-DD form.
type Date string

// Of returns the local wall-clock date of t.
func Of(t time.Time) Date {
	return Date(t.Format(LayoutISO))
}

// Today returns the current local date.
func Today() Date {
	return Of(time.Now())
}

// Parse validates s and returns it as a Date.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(LayoutISO) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(LayoutISO, s, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Of(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Valid reports whether d is a canonical date.
func (d Date) Valid() bool {
	p, err := Parse(string(d))
	return err == nil && p == d
}

// Time returns local midnight of d. The zero time is returned for an invalid d.
func (d Date) Time() time.Time {
	t, err := time.ParseInLocation(LayoutISO, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date n calendar days away from d.
func (d Date) AddDays(n int) Date {
	t := d.Time()
	if t.IsZero() {
		return d
	}
	return Of(t.AddDate(0, 0, n))
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d < o }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d > o }

// String implements fmt.Stringer.
func (d Date) String() string { return string(d) }

// Clock is a 24-hour time of day in HH:mm form.
type Clock string

// ParseClock validates s as HH:mm.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(LayoutClock) {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if _, err := time.Parse(LayoutClock, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(s), nil
}

// NormalizeClock accepts H:mm or HH:mm and returns the padded Clock.
func NormalizeClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return ParseClock(fmt.Sprintf("%02d:%s", hour, m))
}

// On returns the time of day c on date d in local time.
func (c Clock) On(d Date) time.Time {
	base := d.Time()
	t, err := time.Parse(LayoutClock, string(c))
	if base.IsZero() || err != nil {
		return base
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
}

// String implements fmt.Stringer.
func (c Clock) String() string { return string(c) }
