package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mlapinski/openmemo/internal/domain"
	"github.com/mlapinski/openmemo/internal/service"
)

func newImportCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import cards into the deck",
	}
	cmd.PersistentFlags().StringVar(&priority, "priority", "mid", "priority for newly imported cards (low, mid, high)")

	cmd.AddCommand(newImportSubCmd(app, "csv", &priority, app.Import.ImportCSV))
	cmd.AddCommand(newImportSubCmd(app, "smqa", &priority, app.Import.ImportSuperMemoQA))

	return cmd
}

func newImportSubCmd(
	app *App,
	format string,
	priorityFlag *string,
	run func(ctx context.Context, path string, priority domain.Priority) (*service.ImportResult, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   format + " <path>",
		Short: "Import cards from a " + format + " file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := parsePriority(*priorityFlag)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := confirmNonEmptyImport(ctx, app); err != nil {
				return err
			}

			result, err := run(ctx, path, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards from %s\n", result.CardCount, path)
			return nil
		},
	}
}

// confirmNonEmptyImport asks for confirmation before importing into a deck
// that already has cards, when running interactively.
func confirmNonEmptyImport(ctx context.Context, app *App) error {
	if app.IsInteractive == nil || !app.IsInteractive() || app.CardCount == nil {
		return nil
	}
	count, err := app.CardCount(ctx)
	if err != nil {
		return fmt.Errorf("checking deck size: %w", err)
	}
	if count == 0 {
		return nil
	}

	var proceed bool
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("The deck already has %d cards. Continue importing?", count)).
				Value(&proceed),
		),
	).Run()
	if err != nil {
		return fmt.Errorf("confirming import: %w", err)
	}
	if !proceed {
		return fmt.Errorf("import cancelled")
	}
	return nil
}

func parsePriority(s string) (domain.Priority, error) {
	switch s {
	case "low":
		return domain.PriorityLow, nil
	case "mid":
		return domain.PriorityMid, nil
	case "high":
		return domain.PriorityHigh, nil
	default:
		return 0, fmt.Errorf("invalid priority %q: expected low, mid or high", s)
	}
}
