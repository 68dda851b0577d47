package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputOptions
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Format, "output", "o", OutputTable,
		"Output format. One of 'table', 'json' or 'yaml'.")
}

// Validate rejects unknown formats.
func (o *OutputOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "", OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
}

// JSON reports whether errors should be rendered as JSON.
func (o *OutputOptions) JSON() bool {
	return strings.EqualFold(o.Format, OutputJSON)
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON() && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
