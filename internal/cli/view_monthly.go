package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/navdurga/steeldesk/internal/service"
)

// monthlyLoadedMsg delivers one month's aggregate report.
type monthlyLoadedMsg struct {
	reqID  uuid.UUID
	report *service.MonthlyReport
	err    error
}

// monthlyView shows a month's totals with a per-day breakdown, navigable
// month by month.
type monthlyView struct {
	state   *SharedState
	year    int
	month   time.Month
	report  *service.MonthlyReport
	loading bool
	err     error

	loadID uuid.UUID
}

func newMonthlyView(state *SharedState) *monthlyView {
	now := time.Now()
	return &monthlyView{
		state:   state,
		year:    now.Year(),
		month:   now.Month(),
		loading: true,
	}
}

func (v *monthlyView) ID() ViewID    { return ViewMonthly }
func (v *monthlyView) Title() string { return "Monthly" }

func (v *monthlyView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←/h", "prev month")),
		key.NewBinding(key.WithKeys("right"), key.WithHelp("→/l", "next month")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this month")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *monthlyView) Init() tea.Cmd {
	return v.loadData()
}

func (v *monthlyView) loadData() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	year, month := v.year, int(v.month)
	return func() tea.Msg {
		report, err := app.Summaries.Monthly(context.Background(), year, month)
		return monthlyLoadedMsg{reqID: reqID, report: report, err: err}
	}
}

func (v *monthlyView) shift(months int) tea.Cmd {
	t := time.Date(v.year, v.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	v.year, v.month = t.Year(), t.Month()
	v.loading = true
	return v.loadData()
}

func (v *monthlyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthlyLoadedMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		v.loading = false
		v.report = msg.report
		v.err = msg.err
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return v, popView()
		case "left", "h":
			return v, v.shift(-1)
		case "right", "l":
			return v, v.shift(1)
		case "t":
			now := time.Now()
			v.year, v.month = now.Year(), now.Month()
			v.loading = true
			return v, v.loadData()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *monthlyView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(strings.ToUpper(fmt.Sprintf("%s %d", v.month, v.year))))
	b.WriteString("  " + formatter.Dim("← prev · next →") + "\n\n")

	if v.loading {
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
		return b.String()
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
		b.WriteString("\n  " + formatter.Dim("Press 'r' to retry.") + "\n")
		return b.String()
	}
	if v.report == nil {
		return b.String()
	}

	r := v.report
	b.WriteString(fmt.Sprintf("  %s %s    %s %s    %s %s\n\n",
		formatter.Dim("Receipts"), formatter.Bold(fmt.Sprintf("%d", r.TotalReceipts)),
		formatter.Dim("Weight"), formatter.Bold(formatter.Weight(r.TotalWeight)),
		formatter.Dim("Labor"), formatter.StyleGreen.Render(formatter.Money(r.TotalLaborCost)),
	))

	if len(r.Days) == 0 {
		b.WriteString("  " + formatter.Dim("No receipts this month.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Days))
	for _, day := range r.Days {
		rows = append(rows, []string{
			day.Date,
			fmt.Sprintf("%d", day.Receipts),
			formatter.Weight(day.Weight),
			formatter.Money(day.LaborCost),
		})
	}
	table := formatter.RenderTable([]string{"Date", "Receipts", "Weight", "Labor"}, rows)
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}
