package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/task"
)

// AddOptions
type AddOptions struct {
	Title       string
	OnString    string
	UntilString string
	From        string
	To          string
	Priority    string
	Category    string
	Description string
}

func AddTaskArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Start date of the task, example: --on="2020-02-28" or --on="2/28". Defaults to today.`)
	cmd.Flags().StringVar(&o.UntilString, "until", "",
		`Last date of a multi-day task, example: --until="2020-03-02".`)
	cmd.Flags().StringVar(&o.From, "from", "",
		`Start time, 24h HH:mm, example: --from=9:30.`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`End time, 24h HH:mm, example: --to=10:15.`)
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", string(task.PriorityMedium),
		`Priority: none, low, medium or high.`)
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category of the task.")
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"Longer description of the task.")
}

// Form fills a task form from the flags.
func (o *AddOptions) Form(now time.Time) (*task.Form, error) {
	on, err := ParseDate(o.OnString, now)
	if err != nil {
		return nil, fmt.Errorf("--on: %w", err)
	}
	f := task.NewForm(on)
	f.Title = o.Title
	if o.UntilString != "" {
		until, err := ParseDate(o.UntilString, on.Time())
		if err != nil {
			return nil, fmt.Errorf("--until: %w", err)
		}
		f.EndDate = string(until)
	}
	f.StartTime = strings.TrimSpace(o.From)
	f.EndTime = strings.TrimSpace(o.To)
	f.Priority = o.Priority
	f.Category = o.Category
	f.Description = o.Description
	return f, nil
}
