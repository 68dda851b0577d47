// Package grid computes the cells of the month and week calendar pages.
package grid

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/lumina/pkg/day"
)

// Mode selects which page shape the calendar shows.
type Mode string

const (
	// Month shows a whole calendar month.
	Month Mode = "month"
	// Week shows the Sunday to Saturday week.
	Week Mode = "week"
)

// ParseMode reads "month" or "week". The empty string means Month.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Month:
		return Month, nil
	case Week:
		return Week, nil
	default:
		return "", fmt.Errorf("grid: unknown view mode %q, want month or week", s)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }

// MonthCells returns the flattened month page containing ref. Leading cells
// before the 1st are 0, one per weekday before it (Sunday first), followed by
// 1..DaysIn(ref). The page is not padded at the end.
func MonthCells(ref time.Time) []int {
	offset := StartDay(ref)
	days := DaysIn(ref)
	cells := make([]int, offset, offset+days)
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}
	return cells
}

// MonthDates is MonthCells with every day resolved to its Date; leading
// cells are "".
func MonthDates(ref time.Time) []day.Date {
	first := FirstOfMonth(ref)
	cells := MonthCells(ref)
	out := make([]day.Date, len(cells))
	for i, d := range cells {
		if d == 0 {
			continue
		}
		out[i] = day.Of(first.AddDate(0, 0, d-1))
	}
	return out
}

// WeekCells returns the seven dates, Sunday through Saturday, of the week
// containing ref.
func WeekCells(ref time.Time) []day.Date {
	start := StartOfWeek(ref)
	out := make([]day.Date, 7)
	for i := range out {
		out[i] = day.Of(start.AddDate(0, 0, i))
	}
	return out
}

// Navigate moves ref one page in the sign of dir. Month pages land on the 1st
// of the target month so that the 31st never rolls into the month after.
// Week pages move by exactly 7*dir days.
func Navigate(ref time.Time, dir int, mode Mode) time.Time {
	if mode == Week {
		return ref.AddDate(0, 0, 7*dir)
	}
	return time.Date(ref.Year(), ref.Month()+time.Month(dir), 1, 0, 0, 0, 0, ref.Location())
}

// Rows chunks month cells into week rows of seven. The final row may be short.
func Rows(cells []int) [][]int {
	rows := make([][]int, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[i:end])
	}
	return rows
}

// FirstOfMonth returns local midnight of the 1st of ref's month.
func FirstOfMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// StartOfWeek returns midnight of the Sunday on or before ref.
func StartOfWeek(ref time.Time) time.Time {
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// DaysIn returns the number of days in ref's month.
func DaysIn(ref time.Time) int {
	return FirstOfMonth(ref).AddDate(0, 1, -1).Day()
}

// StartDay returns the weekday index (Sunday == 0) of the 1st of ref's month.
func StartDay(ref time.Time) int {
	return int(FirstOfMonth(ref).Weekday())
}
