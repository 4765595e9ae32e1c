package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/navdurga/steeldesk/internal/domain"
)

// composeRateMsg delivers the labor rate fetched when the composer opens
// without a cached rate.
type composeRateMsg struct {
	reqID uuid.UUID
	rate  float64
	err   error
}

// composeDoneMsg carries the outcome of a submission.
type composeDoneMsg struct {
	receipt *api.Receipt
	err     error
}

// Field indices within one item row.
const (
	colName = iota
	colWeight
	colDimension
	colsPerRow
)

// Focus positions before the item grid.
const (
	focusCustomer = 0
	focusNotes    = 1
	focusFirstRow = 2
)

// composeRow is the editable inputs for one draft item.
type composeRow struct {
	name      textinput.Model
	weight    textinput.Model
	dimension textinput.Model
}

// composeView is the receipt composer: customer and notes fields above a
// growable grid of item rows, with a live totals footer. All text is
// mirrored into the shared draft on every keystroke, so the in-progress
// receipt survives navigating away and failed submissions.
type composeView struct {
	state *SharedState
	rows  []composeRow

	customer textinput.Model
	notes    textinput.Model

	focus int
	busy  bool

	loadID uuid.UUID
}

func newComposeView(state *SharedState) *composeView {
	v := &composeView{state: state}

	v.customer = newComposeInput("Customer name (optional)", 30)
	v.customer.SetValue(state.Draft.CustomerName)
	v.notes = newComposeInput("Notes (optional)", 40)
	v.notes.SetValue(state.Draft.Notes)

	for _, item := range state.Draft.Items {
		v.rows = append(v.rows, newComposeRow(item))
	}

	v.setFocus(focusFirstRow)
	return v
}

func newComposeInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = width
	in.Prompt = ""
	in.PlaceholderStyle = formatter.StyleDim
	in.TextStyle = formatter.StyleFg
	return in
}

func newComposeRow(item domain.ItemDraft) composeRow {
	row := composeRow{
		name:      newComposeInput("Item name", 18),
		weight:    newComposeInput("Weight kg", 10),
		dimension: newComposeInput("Dimension/qty", 14),
	}
	row.name.SetValue(item.Name)
	row.weight.SetValue(item.Weight)
	row.dimension.SetValue(item.Dimension)
	return row
}

func (v *composeView) ID() ViewID    { return ViewCompose }
func (v *composeView) Title() string { return "New Receipt" }

func (v *composeView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add row")),
		key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove row")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *composeView) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if !v.state.RateLoaded {
		cmds = append(cmds, v.loadRate())
	}
	return tea.Batch(cmds...)
}

func (v *composeView) loadRate() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	return func() tea.Msg {
		rate, err := app.Rates.Get(context.Background())
		return composeRateMsg{reqID: reqID, rate: rate, err: err}
	}
}

// fieldCount is the number of focusable inputs.
func (v *composeView) fieldCount() int {
	return focusFirstRow + len(v.rows)*colsPerRow
}

// focusedRow returns the item row index under focus, or -1 when the
// customer or notes field is focused.
func (v *composeView) focusedRow() int {
	if v.focus < focusFirstRow {
		return -1
	}
	return (v.focus - focusFirstRow) / colsPerRow
}

func (v *composeView) inputAt(i int) *textinput.Model {
	switch i {
	case focusCustomer:
		return &v.customer
	case focusNotes:
		return &v.notes
	}
	row := (i - focusFirstRow) / colsPerRow
	switch (i - focusFirstRow) % colsPerRow {
	case colName:
		return &v.rows[row].name
	case colWeight:
		return &v.rows[row].weight
	default:
		return &v.rows[row].dimension
	}
}

func (v *composeView) setFocus(i int) tea.Cmd {
	n := v.fieldCount()
	v.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := 0; j < n; j++ {
		in := v.inputAt(j)
		if j == v.focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

// syncDraft mirrors every input's current text into the shared draft.
func (v *composeView) syncDraft() {
	d := v.state.Draft
	d.CustomerName = strings.TrimSpace(v.customer.Value())
	d.Notes = strings.TrimSpace(v.notes.Value())
	d.Items = d.Items[:0]
	for _, row := range v.rows {
		d.Items = append(d.Items, domain.ItemDraft{
			Name:      row.name.Value(),
			Weight:    row.weight.Value(),
			Dimension: row.dimension.Value(),
		})
	}
}

func (v *composeView) submit() tea.Cmd {
	app := v.state.App
	draft := v.state.Draft
	return func() tea.Msg {
		receipt, err := app.Receipts.Create(context.Background(), draft)
		return composeDoneMsg{receipt: receipt, err: err}
	}
}

func (v *composeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case composeRateMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		if msg.err == nil {
			v.state.RatePerKg = msg.rate
			v.state.RateLoaded = true
		}
		return v, nil

	case composeDoneMsg:
		v.busy = false
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		// The service reset the shared draft; rebuild this view's inputs
		// in case the user returns before the pop lands.
		fresh := newComposeView(v.state)
		return fresh, tea.Batch(
			popView(),
			refreshViews(),
			notify(noticeSuccess, fmt.Sprintf("Receipt #%d saved — %s", msg.receipt.ID, formatter.Money(msg.receipt.TotalLaborCost))),
		)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		return v.handleKey(msg)
	}

	// Cursor blinks and other component messages go to the focused input.
	in := v.inputAt(v.focus)
	updated, cmd := in.Update(msg)
	*in = updated
	return v, cmd
}

func (v *composeView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// The draft stays in shared state; returning to the composer
		// resumes where the user left off.
		v.syncDraft()
		return v, popView()

	case "tab", "enter":
		return v, v.setFocus(v.focus + 1)

	case "shift+tab":
		return v, v.setFocus(v.focus - 1)

	case "down":
		if row := v.focusedRow(); row >= 0 && row < len(v.rows)-1 {
			return v, v.setFocus(v.focus + colsPerRow)
		}
		return v, v.setFocus(v.focus + 1)

	case "up":
		if row := v.focusedRow(); row > 0 {
			return v, v.setFocus(v.focus - colsPerRow)
		}
		if v.focusedRow() == 0 {
			return v, v.setFocus(focusNotes)
		}
		return v, v.setFocus(v.focus - 1)

	case "ctrl+a":
		v.syncDraft()
		v.state.Draft.AddRow()
		v.rows = append(v.rows, newComposeRow(domain.ItemDraft{}))
		return v, v.setFocus(focusFirstRow + (len(v.rows)-1)*colsPerRow)

	case "ctrl+d":
		row := v.focusedRow()
		if row < 0 {
			return v, nil
		}
		v.syncDraft()
		v.state.Draft.RemoveRow(row)
		if len(v.rows) == 1 {
			v.rows[0] = newComposeRow(domain.ItemDraft{})
		} else {
			v.rows = append(v.rows[:row], v.rows[row+1:]...)
		}
		if row >= len(v.rows) {
			row = len(v.rows) - 1
		}
		return v, v.setFocus(focusFirstRow + row*colsPerRow)

	case "ctrl+s":
		v.syncDraft()
		if err := v.state.Draft.Validate(); err != nil {
			return v, notify(noticeWarning, "Add at least one item with a name and a positive weight")
		}
		v.busy = true
		return v, v.submit()
	}

	// Plain typing goes to the focused input, then the draft is re-synced
	// so the totals footer updates live.
	in := v.inputAt(v.focus)
	updated, cmd := in.Update(msg)
	*in = updated
	v.syncDraft()
	return v, cmd
}

func (v *composeView) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleHeader.Render("NEW RECEIPT") + "\n\n")

	if v.busy {
		b.WriteString("  " + formatter.Dim("Submitting...") + "\n")
		return b.String()
	}

	b.WriteString("  " + composeLabel("Customer", v.focus == focusCustomer) + " " + v.customer.View() + "\n")
	b.WriteString("  " + composeLabel("Notes   ", v.focus == focusNotes) + " " + v.notes.View() + "\n\n")

	b.WriteString("  " + formatter.StyleHeader.Render("ITEMS") + "\n")
	for i, row := range v.rows {
		marker := "  "
		if v.focusedRow() == i {
			marker = formatter.StyleGreen.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s  %s\n",
			marker, row.name.View(), row.weight.View(), row.dimension.View()))
	}
	b.WriteString("\n")

	// Live totals. The labor figure is a preview from the cached rate;
	// the backend recomputes the stored totals on submission.
	weight := v.state.Draft.TotalWeight()
	b.WriteString("  " + formatter.Dim("Total weight ") + formatter.Bold(formatter.WeightDecimal(weight)))
	if v.state.RateLoaded {
		cost := v.state.Draft.PreviewLaborCost(v.state.RateDecimal())
		b.WriteString("   " + formatter.Dim(fmt.Sprintf("Labor @ %s/kg ", formatter.Money(v.state.RatePerKg))))
		b.WriteString(formatter.StyleGreen.Render(formatter.MoneyDecimal(cost)))
	} else {
		b.WriteString("   " + formatter.Dim("Labor rate loading..."))
	}
	b.WriteString("\n")

	return b.String()
}

func composeLabel(text string, focused bool) string {
	if focused {
		return formatter.StyleGreen.Render(text)
	}
	return formatter.Dim(text)
}
