package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where tasks are stored.",
		Example: `
lumina info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			s := info.Info{
				Config: e.cfg,
				Tasks:  e.tasks,
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
