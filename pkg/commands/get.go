package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/commands/options"
	"tableflip.dev/lumina/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "List the tasks of a day",
		Example: `
lumina get
lumina get --on 2/28 --show-id
lumina get --on 2024-02-28 -o json
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
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()

			s := get.Get{
				ShowID: io.ShowID,
				On:     on,
				Format: output.Format,
				Tasks:  e.tasks,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
