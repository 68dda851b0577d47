package commands

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/gate"
	teaui "tableflip.dev/lumina/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar",
		Example: `
lumina ui
lumina ui --ephemeral
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs a terminal; try lumina calendar")
			}
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			i := teaui.UI{
				Tasks:   e.tasks,
				Adapter: e.adapter(ctx),
				Gate:    gate.New(e.cfg.Gate.Secret),
				Watcher: e.watcher(),
				Log:     e.log,
			}
			return i.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
