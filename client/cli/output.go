package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// printOutput writes v in the format selected by --output.
func printOutput(cmd *cobra.Command, v any) error {
	format, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		format = OutputFormatText
	}

	var out []byte
	switch format {
	case OutputFormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case OutputFormatText:
		out, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
