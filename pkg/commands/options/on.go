package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/day"
)

const (
	layoutISOLoose = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-02-28", --on="2020-2-28" or --on="2/28". Defaults to today.`)
}

// GetOn returns the requested date, today when none was given.
func (o *OnOptions) GetOn() (day.Date, error) {
	return ParseDate(o.OnString, time.Now())
}

// ParseDate reads YYYY-MM-DD, YYYY-M-D or M/D. A M/D date that has already
// passed this year is taken to mean next year. An empty string is today.
func ParseDate(s string, now time.Time) (day.Date, error) {
	if s == "" {
		return day.Of(now), nil
	}
	if d, err := day.Parse(s); err == nil {
		return d, nil
	}
	t, err := time.ParseInLocation(layoutISOLoose, s, time.Local)
	if err != nil {
		// Let the year be the same.
		t, err = time.ParseInLocation(layoutISOShort, s, time.Local)
		if err != nil {
			return "", day.ErrInvalidDate
		}
		t = t.AddDate(now.Year(), 0, 0)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if day.Of(t).Before(day.Of(now)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return day.Of(t), nil
}
