package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/service"
)

// exportDoneMsg reports a completed CSV export.
type exportDoneMsg struct {
	outcome *service.ExportOutcome
	err     error
}

// exportAllCmd downloads the full CSV export in the background.
func exportAllCmd(state *SharedState) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		outcome, err := app.Export.ExportAll(context.Background())
		return exportDoneMsg{outcome: outcome, err: err}
	}
}

// exportFilteredCmd downloads a CSV export restricted by the same filters
// as a receipt search.
func exportFilteredCmd(state *SharedState, q api.ReceiptQuery) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		outcome, err := app.Export.ExportFiltered(context.Background(), q)
		return exportDoneMsg{outcome: outcome, err: err}
	}
}
