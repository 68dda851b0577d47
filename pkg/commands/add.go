package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/commands/options"
	"tableflip.dev/lumina/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Example: `
lumina add task dentist --on 2/28 --from 9:30 --to 10:15
lumina add text lunch with Sam tomorrow at noon
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTask(cmd)
	addText(cmd)

	topLevel.AddCommand(cmd)
}

func addTask(topLevel *cobra.Command) {
	ao := &options.AddOptions{}

	cmd := &cobra.Command{
		Use:   "task <title>",
		Short: base.Wrap80("Add a task from flags. Without --on the task is for today."),
		Example: `
lumina add task do this task
lumina add task trip to Paris --on 2024-05-01 --until 2024-05-04 --category travel
lumina add task standup --from 9:30 --to 9:45 --priority low
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			ao.Title = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			form, err := ao.Form(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()

			s := add.Add{
				Form:  form,
				Tasks: e.tasks,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, ao)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addText(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "text <description>",
		Short: base.Wrap80("Add a task described in plain words. Needs gemini.api_key in the config or LUMINA_GEMINI_API_KEY."),
		Example: `
lumina add text lunch with Sam tomorrow at noon
lumina add text "conference from friday to sunday, high priority" --on 2024-05-01
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a description")
			}
			text = strings.Join(args, " ")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ref, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			s := add.Text{
				Text:      text,
				Reference: ref,
				Adapter:   e.adapter(ctx),
				Tasks:     e.tasks,
			}
			err = s.Do(ctx)
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().Lookup("on").Usage = `Date that words like "tomorrow" are read against. Defaults to today.`
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
