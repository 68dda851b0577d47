// Package info provides the runner logic describing where lumina keeps its
// state and how it is configured.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/lumina/pkg/config"
	"tableflip.dev/lumina/pkg/store"
)

type Info struct {
	Config *config.Config
	Tasks  *store.Tasks
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "

	if override := os.Getenv("LUMINA_CONFIG_PATH"); override != "" {
		tbl.AddRow(bold.Sprint("LUMINA_CONFIG_PATH"), override)
	} else {
		tbl.AddRow(bold.Sprint("LUMINA_CONFIG_PATH"), "not set")
	}
	tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("gemini.model"), n.Config.Gemini.Model)
	if n.Config.Gemini.APIKey != "" {
		tbl.AddRow(bold.Sprint("gemini.api_key"), "set")
	} else {
		tbl.AddRow(bold.Sprint("gemini.api_key"), "not set, `add text` is disabled")
	}
	if n.Config.Gate.Secret != "" {
		tbl.AddRow(bold.Sprint("gate"), "on")
	} else {
		tbl.AddRow(bold.Sprint("gate"), "off")
	}
	if n.Tasks != nil {
		tbl.AddRow(bold.Sprint("theme"), n.Tasks.Theme())
		all := n.Tasks.All()
		done := 0
		for _, t := range all {
			if t.Completed {
				done++
			}
		}
		tbl.AddRow(bold.Sprint("tasks"), fmt.Sprintf("%d (%d completed)", len(all), done))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
