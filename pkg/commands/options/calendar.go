package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/grid"
)

// CalendarOptions
type CalendarOptions struct {
	ModeString string
	Long       bool
}

func AddCalendarArgs(cmd *cobra.Command, o *CalendarOptions) {
	cmd.Flags().StringVarP(&o.ModeString, "mode", "m", string(grid.Month),
		"Page to show: month or week.")
	cmd.Flags().BoolVarP(&o.Long, "long", "l", false,
		"List every day with its tasks instead of the compact grid.")
}

func (o *CalendarOptions) Mode() (grid.Mode, error) {
	return grid.ParseMode(o.ModeString)
}
