package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metawizard/pkg/dataset"
	"github.com/goliatone/go-metawizard/pkg/session"
)

func newInspectCmd(app *App) *cobra.Command {
	var (
		data     string
		jsonFlag bool
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the columns of a dataset with their inferred type and bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dataset.NewCSVLoader().ReadFile(cmd.Context(), data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if jsonFlag {
				columns := make([]session.Metadata, 0, len(table.Columns))
				for _, name := range table.Columns {
					columns = append(columns, table.Metadata[name])
				}
				return outputJSON(out, map[string]any{
					"columns": columns,
					"rows":    table.Rows,
					"skipped": table.Skipped,
				})
			}

			printSection(out, fmt.Sprintf("%s: %d columns, %d rows", data, len(table.Columns), table.Rows))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COLUMN\tTYPE\tMIN\tMAX")
			for _, name := range table.Columns {
				meta := table.Metadata[name]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", meta.Name, meta.Type, display(meta.Min), display(meta.Max))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if table.Skipped > 0 {
				printWarning(out, fmt.Sprintf("%d malformed rows skipped", table.Skipped))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "CSV dataset to inspect")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "output JSON")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
