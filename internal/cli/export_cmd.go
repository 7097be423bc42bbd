package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the deck to a file",
	}

	cmd.AddCommand(newExportSubCmd("csv", app.Export.ExportCSV))
	cmd.AddCommand(newExportSubCmd("smqa", app.Export.ExportSuperMemoQA))

	return cmd
}

func newExportSubCmd(format string, run func(ctx context.Context, path string) error) *cobra.Command {
	return &cobra.Command{
		Use:   format + " <path>",
		Short: "Export the deck as " + format,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := run(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported deck to %s\n", path)
			return nil
		},
	}
}
