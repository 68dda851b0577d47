package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/commands/options"
	"tableflip.dev/lumina/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print the month or week around a day, colored by how busy each day is",
		Example: `
lumina calendar
lumina calendar --on 2024-02-01
lumina calendar --mode week --long
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := output.Validate(); err != nil {
				return err
			}
			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			mode, err := co.Mode()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()

			s := calendar.Calendar{
				On:     on,
				Mode:   mode,
				Long:   co.Long,
				Format: output.Format,
				Tasks:  e.tasks,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddCalendarArgs(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
