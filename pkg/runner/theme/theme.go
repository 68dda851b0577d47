// Package theme provides the runner logic for the theme preference.
package theme

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/theme"
)

// Theme prints the stored preference, or stores Set when given.
type Theme struct {
	Set   string
	Tasks *store.Tasks
	Out   io.Writer
}

func (n *Theme) Do(ctx context.Context) error {
	if n.Tasks == nil {
		return errors.New("can not set theme, no store")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Set != "" {
		m, err := theme.ParseMode(n.Set)
		if err != nil {
			return err
		}
		if err := n.Tasks.SetTheme(m); err != nil {
			return err
		}
	}

	m := n.Tasks.Theme()
	resolved := "light"
	if m.IsDark() {
		resolved = "dark"
	}
	_, _ = fmt.Fprintf(out, "%s (%s)\n", m, resolved)
	return nil
}
