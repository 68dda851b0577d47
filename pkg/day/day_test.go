package day

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Date
		wantErr bool
	}{
		"canonical":      {in: "2024-06-10", want: "2024-06-10"},
		"trimmed":        {in: " 2024-06-10 ", want: "2024-06-10"},
		"leap day":       {in: "2024-02-29", want: "2024-02-29"},
		"not leap":       {in: "2023-02-29", wantErr: true},
		"unpadded month": {in: "2024-6-10", wantErr: true},
		"unpadded day":   {in: "2024-06-1", wantErr: true},
		"slashes":        {in: "2024/06/10", wantErr: true},
		"empty":          {in: "", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOfIsZeroPadded(t *testing.T) {
	got := Of(time.Date(987, time.March, 4, 23, 59, 0, 0, time.Local))
	if got != "0987-03-04" {
		t.Fatalf("expected 0987-03-04, got %q", got)
	}
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	if got := MustParse("2024-12-31").AddDays(1); got != "2025-01-01" {
		t.Fatalf("expected 2025-01-01, got %q", got)
	}
	if got := MustParse("2024-03-01").AddDays(-1); got != "2024-02-29" {
		t.Fatalf("expected 2024-02-29, got %q", got)
	}
}

func TestLexicalOrderMatchesChronological(t *testing.T) {
	a := Of(time.Date(2024, time.September, 30, 0, 0, 0, 0, time.Local))
	b := Of(time.Date(2024, time.October, 1, 0, 0, 0, 0, time.Local))
	if !a.Before(b) || !b.After(a) {
		t.Fatalf("expected %s < %s", a, b)
	}
}

func TestValid(t *testing.T) {
	if !Date("2024-06-10").Valid() {
		t.Fatalf("expected canonical date to be valid")
	}
	if Date(" 2024-06-10").Valid() {
		t.Fatalf("expected untrimmed date to be invalid")
	}
	if Date("").Valid() {
		t.Fatalf("expected empty date to be invalid")
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    Clock
		wantErr bool
	}{
		"padded":   {in: "09:30", want: "09:30"},
		"unpadded": {in: "9:30", want: "09:30"},
		"evening":  {in: "18:05", want: "18:05"},
		"bad hour": {in: "25:00", wantErr: true},
		"bad min":  {in: "10:7", wantErr: true},
		"no colon": {in: "1030", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := NormalizeClock(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Fatalf("expected ErrInvalidClock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeClock(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClockOn(t *testing.T) {
	got := Clock("07:45").On("2024-06-10")
	want := time.Date(2024, time.June, 10, 7, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
