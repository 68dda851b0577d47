// Package key provides CLI helpers to display the task legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/lumina/pkg/glyph"
	"tableflip.dev/lumina/pkg/printers"
)

// Key prints a glyph legend describing bullets and signifiers.
type Key struct {
	Out io.Writer
}

// Do renders the bullet and signifier keys.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	bl := make([]glyph.Glyph, 0, 4)
	for _, v := range glyph.DefaultBullets() {
		if v.Printed {
			bl = append(bl, v)
		}
	}
	k.Key(ctx, out, bl, false)
	_, _ = fmt.Fprintln(out, "")

	sl := make([]glyph.Glyph, 0, 4)
	for _, v := range glyph.DefaultSignifiers() {
		if v.Printed {
			sl = append(sl, v)
		}
	}
	k.Key(ctx, out, sl, true)
	_, _ = fmt.Fprintln(out, "")

	pp := printers.PrettyPrint{Out: out}
	pp.Legend()
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders a glyph table; when sig is true, signifiers are shown.
func (k *Key) Key(_ context.Context, out io.Writer, glyfs []glyph.Glyph, sig bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if sig {
		tbl.AddRow(bold.Sprint("Priority"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("   Bullets"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if sig == v.Signifier {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
