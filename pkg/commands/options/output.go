package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().BoolVar(&o.YAML, "yaml", false,
		"Output as YAML.")
}

func (o *OutputOptions) Validate() error {
	if o.JSON && o.YAML {
		return errors.New("choose one of --json or --yaml")
	}
	return nil
}

func (o *OutputOptions) Format() printers.Format {
	switch {
	case o.JSON:
		return printers.FormatJSON
	case o.YAML:
		return printers.FormatYAML
	default:
		return printers.FormatText
	}
}

func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
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
