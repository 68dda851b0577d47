package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/runner/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the color theme",
		ValidArgs: []string{"light", "dark", "system"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
lumina theme
lumina theme dark
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			s := theme.Theme{Tasks: e.tasks}
			if len(args) > 0 {
				s.Set = args[0]
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
