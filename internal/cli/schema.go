package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metawizard/pkg/schema"
)

func newSchemaCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document describing the exported records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schema.Validate(cmd.Context()); err != nil {
				return err
			}
			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = schema.JSON()
			case "yaml", "yml":
				data, err = schema.YAML()
			default:
				return fmt.Errorf("unknown schema format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (json or yaml)")
	return cmd
}
