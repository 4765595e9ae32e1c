package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
)

// historyLoadedMsg delivers a filtered receipt search.
type historyLoadedMsg struct {
	reqID    uuid.UUID
	receipts []api.Receipt
	err      error
}

// historyView searches past receipts: a filter form first, then the
// result table. 'f' reopens the filters without losing them.
type historyView struct {
	state *SharedState

	// Filter fields bound to the huh form.
	startDate string
	endDate   string
	customer  string
	sortBy    string
	sortOrder string

	form      *huh.Form
	filtering bool

	receipts []api.Receipt
	loading  bool
	err      error
	cursor   int

	loadID uuid.UUID
}

func newHistoryView(state *SharedState) *historyView {
	v := &historyView{
		state:     state,
		sortBy:    api.SortByDate,
		sortOrder: api.SortDesc,
		filtering: true,
	}
	v.form = v.buildForm()
	return v
}

func (v *historyView) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, leave both dates empty for all time").
				Validate(validateOptionalDate).
				Value(&v.startDate),
			huh.NewInput().
				Title("End date").
				Description("YYYY-MM-DD").
				Validate(validateOptionalDate).
				Value(&v.endDate),
			huh.NewInput().
				Title("Customer").
				Description("substring match, empty for all").
				Value(&v.customer),
			huh.NewSelect[string]().
				Title("Sort by").
				Options(
					huh.NewOption("Date", api.SortByDate),
					huh.NewOption("Labor cost", api.SortByLaborCost),
				).
				Value(&v.sortBy),
			huh.NewSelect[string]().
				Title("Order").
				Options(
					huh.NewOption("Newest / highest first", api.SortDesc),
					huh.NewOption("Oldest / lowest first", api.SortAsc),
				).
				Value(&v.sortOrder),
		),
	).WithTheme(steeldeskHuhTheme()).WithShowHelp(false)
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }

func (v *historyView) ShortHelp() []key.Binding {
	if v.filtering {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *historyView) Init() tea.Cmd {
	return v.form.Init()
}

// query builds the search from the current filter fields. A half-open
// date range is treated as no range at all, matching the backend, so the
// user is never surprised by a filter that silently applied one bound.
func (v *historyView) query() api.ReceiptQuery {
	q := api.ReceiptQuery{
		Customer:  strings.TrimSpace(v.customer),
		SortBy:    v.sortBy,
		SortOrder: v.sortOrder,
	}
	start := strings.TrimSpace(v.startDate)
	end := strings.TrimSpace(v.endDate)
	if start != "" && end != "" {
		q.StartDate = start
		q.EndDate = end
	}
	return q
}

func (v *historyView) loadData() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	q := v.query()
	return func() tea.Msg {
		receipts, err := app.Receipts.Search(context.Background(), q)
		return historyLoadedMsg{reqID: reqID, receipts: receipts, err: err}
	}
}

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.receipts = msg.receipts
			if v.cursor >= len(v.receipts) {
				v.cursor = max(0, len(v.receipts)-1)
			}
		}
		return v, nil

	case refreshViewMsg:
		if !v.filtering {
			v.loading = true
			return v, v.loadData()
		}
		return v, nil

	case exportDoneMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		return v, notify(noticeSuccess, fmt.Sprintf("Exported %d receipts to %s", msg.outcome.TotalRecords, msg.outcome.Path))

	case tea.KeyMsg:
		if v.filtering {
			return v.updateForm(msg)
		}
		return v.handleResultsKey(msg)
	}

	if v.filtering {
		return v.updateForm(msg)
	}
	return v, nil
}

func (v *historyView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, popView()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.filtering = false
		v.loading = true
		return v, tea.Batch(cmd, v.loadData())
	}

	return v, cmd
}

func (v *historyView) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return v, popView()
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.receipts)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.receipts) {
			return v, pushView(newReceiptView(v.state, v.receipts[v.cursor].ID))
		}
	case "d":
		if v.cursor < len(v.receipts) {
			return v, pushView(newConfirmDeleteView(v.state, v.receipts[v.cursor]))
		}
	case "f":
		v.filtering = true
		v.form = v.buildForm()
		return v, v.form.Init()
	case "e":
		return v, exportFilteredCmd(v.state, v.query())
	case "r":
		v.loading = true
		return v, v.loadData()
	}
	return v, nil
}

func (v *historyView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("HISTORY") + "\n\n")

	if v.filtering {
		b.WriteString(v.form.View())
		return b.String()
	}
	if v.loading {
		b.WriteString("  " + formatter.Dim("Searching...") + "\n")
		return b.String()
	}
	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
		b.WriteString("\n  " + formatter.Dim("Press 'r' to retry or 'f' to change filters.") + "\n")
		return b.String()
	}

	b.WriteString("  " + formatter.Dim(v.describeFilters()) + "\n\n")

	if len(v.receipts) == 0 {
		b.WriteString("  " + formatter.Dim("No receipts match. Press 'f' to change filters.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(v.receipts))
	for i, r := range v.receipts {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		rows = append(rows, []string{
			cursor + r.Date,
			r.Time,
			formatter.CustomerOrDash(r.CustomerName),
			formatter.ItemsSummary(r.Items),
			formatter.Weight(r.TotalWeight),
			formatter.Money(r.TotalLaborCost),
		})
	}
	table := formatter.RenderTable([]string{"  Date", "Time", "Customer", "Items", "Weight", "Labor"}, rows)
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d receipts", len(v.receipts))) + "\n")

	return b.String()
}

func (v *historyView) describeFilters() string {
	var parts []string
	q := v.query()
	if q.StartDate != "" {
		parts = append(parts, q.StartDate+" to "+q.EndDate)
	} else {
		parts = append(parts, "all dates")
	}
	if q.Customer != "" {
		parts = append(parts, "customer ~ "+q.Customer)
	}
	parts = append(parts, "sort "+q.SortBy+" "+q.SortOrder)
	return strings.Join(parts, " · ")
}
