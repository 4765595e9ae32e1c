package cli

import (
	"context"

	"github.com/navdurga/steeldesk/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands
// and TUI views.
type App struct {
	Auth      service.AuthService
	Receipts  service.ReceiptService
	Summaries service.SummaryService
	Rates     service.RateService
	Export    service.ExportService

	// Available reports whether the backend answers its health check.
	Available func(ctx context.Context) bool

	// IsInteractive reports whether stdin is a terminal; the bare command
	// only launches the TUI when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "steeldesk" command and registers all
// subcommands against the provided App. Run without arguments on a
// terminal, it starts the full-screen TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "steeldesk",
		Short: "Terminal client for the Nav Durga Steel receipts backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newPasswdCmd(app),
		newPingCmd(app),
		newSummaryCmd(app),
		newMonthlyCmd(app),
		newReceiptsCmd(app),
		newRateCmd(app),
		newExportCmd(app),
	)

	return root
}
