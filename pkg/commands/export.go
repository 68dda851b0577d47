package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task as an iCalendar (.ics) file",
		Example: `
lumina export > lumina.ics
lumina export --file ~/lumina.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			s := export.Export{
				File:  file,
				Tasks: e.tasks,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File to write. Defaults to stdout.")

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add the events of an iCalendar (.ics) file as tasks",
		Example: `
lumina import --file holidays.ics
cat holidays.ics | lumina import
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			s := export.Import{
				File:  file,
				Tasks: e.tasks,
				Log:   e.log,
			}
			return s.Do(context.Background())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File to read. Defaults to stdin.")

	topLevel.AddCommand(cmd)
}
