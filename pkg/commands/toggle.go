package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/runner/toggle"
)

func addToggle(topLevel *cobra.Command) {
	var id string

	cmd := &cobra.Command{
		Use:     "toggle <task id>",
		Aliases: []string{"complete", "done"},
		Short:   "Mark a task done, or open again",
		Example: `
lumina toggle <task id>
lumina get --show-id
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task id")
			}
			id = strings.Join(args, " ")

			return nil
		},

		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()

			s := toggle.Toggle{
				ID:    id,
				Tasks: e.tasks,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
