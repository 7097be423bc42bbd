// Package cli wires openmemo's cobra commands against the service layer.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mlapinski/openmemo/internal/service"
	"github.com/mlapinski/openmemo/internal/ssrf"
)

// App holds the service interfaces every command is built against.
type App struct {
	Review service.ReviewService
	Import service.ImportService
	Export service.ExportService

	// Oracle backs the status command's forward workload curve.
	Oracle ssrf.WorkloadOracle

	// CardCount reports how many cards are already in the deck, used by
	// import to decide whether to ask for confirmation.
	CardCount func(ctx context.Context) (int, error)

	// IsInteractive reports whether stdin is an interactive terminal.
	// The review command refuses to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "openmemo" command and registers every
// subcommand against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "openmemo",
		Short: "Spaced-repetition flash card scheduler",
	}

	root.AddCommand(newImportCmd(app))
	root.AddCommand(newExportCmd(app))
	root.AddCommand(newReviewCmd(app))
	root.AddCommand(newStatusCmd(app))

	return root
}
