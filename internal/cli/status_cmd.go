package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's workload and the 7-day forward curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			due, err := app.Review.DueCards(ctx, nil)
			if err != nil {
				return fmt.Errorf("listing due cards: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "due today: %d\n", len(due))

			if app.Oracle == nil {
				return nil
			}
			today := dateOnly(time.Now().UTC())
			curve, err := app.Oracle.GetWorkloads(ctx, today, today.AddDate(0, 0, 6))
			if err != nil {
				return fmt.Errorf("computing forward workload curve: %w", err)
			}
			fmt.Fprintln(out, "next 7 days:")
			for i, n := range curve {
				day := today.AddDate(0, 0, i)
				fmt.Fprintf(out, "  %s: %d\n", day.Format("2006-01-02"), n)
			}
			return nil
		},
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
