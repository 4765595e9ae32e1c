package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/navdurga/steeldesk/internal/service"
)

// dashboardLoadedMsg signals that today's summary and receipts arrived.
// reqID ties the response to the load that issued it; a response from a
// superseded load is dropped instead of overwriting fresher data.
type dashboardLoadedMsg struct {
	reqID uuid.UUID
	data  *service.DashboardData
	rate  float64
	err   error
}

// dashboardView is the home screen: today's totals plus the day's
// receipts, newest first.
type dashboardView struct {
	state   *SharedState
	data    *service.DashboardData
	loading bool
	err     error
	cursor  int

	// ID of the most recent load; older responses carry stale IDs.
	loadID uuid.UUID
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Today" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new receipt")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monthly")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	needRate := !v.state.RateLoaded
	return func() tea.Msg {
		ctx := context.Background()

		data, err := app.Summaries.Today(ctx)
		if err != nil {
			return dashboardLoadedMsg{reqID: reqID, err: err}
		}

		msg := dashboardLoadedMsg{reqID: reqID, data: data}
		if needRate {
			if rate, err := app.Rates.Get(ctx); err == nil {
				msg.rate = rate
			}
		}
		return msg
	}
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.data = msg.data
		if !v.state.RateLoaded && msg.rate > 0 {
			v.state.RatePerKg = msg.rate
			v.state.RateLoaded = true
		}
		if v.cursor >= len(v.data.Receipts) {
			v.cursor = max(0, len(v.data.Receipts)-1)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case exportDoneMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		return v, notify(noticeSuccess, fmt.Sprintf("Exported %d receipts to %s", msg.outcome.TotalRecords, msg.outcome.Path))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var receipts []api.Receipt
	if v.data != nil {
		receipts = v.data.Receipts
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(receipts)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(receipts) {
			return v, pushView(newReceiptView(v.state, receipts[v.cursor].ID))
		}
	case "d":
		if v.cursor < len(receipts) {
			r := receipts[v.cursor]
			return v, pushView(newConfirmDeleteView(v.state, r))
		}
	case "n":
		return v, pushView(newComposeView(v.state))
	case "h":
		return v, pushView(newHistoryView(v.state))
	case "m":
		return v, pushView(newMonthlyView(v.state))
	case "s":
		return v, pushView(newSettingsView(v.state))
	case "e":
		return v, exportAllCmd(v.state)
	case "r":
		v.loading = true
		return v, v.loadData()
	}

	return v, nil
}

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error()) +
			"\n\n  " + formatter.Dim("Press 'r' to retry.")
	}
	if v.data == nil {
		return ""
	}

	var b strings.Builder

	s := v.data.Summary
	b.WriteString("\n  " + formatter.StyleHeader.Render("TODAY "+s.Date) + "\n\n")
	b.WriteString(fmt.Sprintf("  %s %s    %s %s    %s %s\n\n",
		formatter.Dim("Receipts"), formatter.Bold(fmt.Sprintf("%d", s.TotalReceipts)),
		formatter.Dim("Weight"), formatter.Bold(formatter.Weight(s.TotalWeight)),
		formatter.Dim("Labor"), formatter.StyleGreen.Render(formatter.Money(s.TotalLaborCost)),
	))

	if len(v.data.Receipts) == 0 {
		b.WriteString("  " + formatter.Dim("No receipts yet today. Press 'n' to add one.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(v.data.Receipts))
	for i, r := range v.data.Receipts {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		rows = append(rows, []string{
			cursor + r.Time,
			formatter.CustomerOrDash(r.CustomerName),
			formatter.ItemsSummary(r.Items),
			formatter.Weight(r.TotalWeight),
			formatter.Money(r.TotalLaborCost),
		})
	}
	table := formatter.RenderTable([]string{"  Time", "Customer", "Items", "Weight", "Labor"}, rows)
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}
