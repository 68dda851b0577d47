// Package calendar provides the runner logic for printing month and week
// pages.
package calendar

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/printers"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/view"
)

// Calendar prints the page containing On.
type Calendar struct {
	On     day.Date
	Mode   grid.Mode
	Long   bool
	Format string
	Tasks  *store.Tasks
	Out    io.Writer
	Clock  func() time.Time
}

// Page is the structured form of a calendar page.
type Page struct {
	Title string      `json:"title"`
	Mode  grid.Mode   `json:"mode"`
	Cells []view.Cell `json:"cells"`
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not show calendar, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	v := view.New(n.Clock)
	if n.Mode != "" {
		v.SetMode(n.Mode)
	}
	if n.On != "" {
		v.Reference = n.On.Time()
		v.Select(n.On)
	}
	cells := v.Cells(n.Tasks)

	switch strings.ToLower(n.Format) {
	case "json":
		return printers.JSON(out, Page{Title: v.Title(), Mode: v.Mode, Cells: cells})
	case "yaml":
		return printers.YAML(out, Page{Title: v.Title(), Mode: v.Mode, Cells: cells})
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	if n.Long || v.Mode == grid.Week {
		pp.Long(v.Title(), cells)
		return nil
	}
	pp.Month(v.Title(), cells)
	pp.Legend()
	return nil
}
