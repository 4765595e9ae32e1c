package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
)

// deleteDoneMsg carries the outcome of a receipt deletion.
type deleteDoneMsg struct {
	err error
}

// confirmDeleteView asks for explicit confirmation before deleting a
// receipt. popAfter is how many views to pop once the delete lands: 1
// when launched from a list, 2 when launched from the receipt ticket
// (which would otherwise reload a receipt that no longer exists).
type confirmDeleteView struct {
	state    *SharedState
	receipt  api.Receipt
	popAfter int
	busy     bool
}

func newConfirmDeleteView(state *SharedState, receipt api.Receipt) *confirmDeleteView {
	return &confirmDeleteView{state: state, receipt: receipt, popAfter: 1}
}

func newConfirmDeleteFromTicket(state *SharedState, receipt api.Receipt) *confirmDeleteView {
	return &confirmDeleteView{state: state, receipt: receipt, popAfter: 2}
}

func (v *confirmDeleteView) ID() ViewID    { return ViewConfirmDelete }
func (v *confirmDeleteView) Title() string { return "Delete" }

func (v *confirmDeleteView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "cancel")),
	}
}

func (v *confirmDeleteView) Init() tea.Cmd { return nil }

func (v *confirmDeleteView) deleteCmd() tea.Cmd {
	app := v.state.App
	id := v.receipt.ID
	return func() tea.Msg {
		return deleteDoneMsg{err: app.Receipts.Delete(context.Background(), id)}
	}
}

func (v *confirmDeleteView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deleteDoneMsg:
		v.busy = false
		if msg.err != nil {
			return v, tea.Batch(popView(), notifyErr(msg.err))
		}
		cmds := make([]tea.Cmd, 0, v.popAfter+2)
		for i := 0; i < v.popAfter; i++ {
			cmds = append(cmds, popView())
		}
		cmds = append(cmds,
			refreshViews(),
			notify(noticeSuccess, fmt.Sprintf("Receipt #%d deleted", v.receipt.ID)),
		)
		return v, tea.Sequence(cmds...)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "y", "Y":
			v.busy = true
			return v, v.deleteCmd()
		case "n", "N", "esc":
			return v, popView()
		}
	}

	return v, nil
}

func (v *confirmDeleteView) View() string {
	var b strings.Builder
	r := v.receipt

	b.WriteString("\n  " + formatter.StyleRed.Render("DELETE RECEIPT?") + "\n\n")
	b.WriteString(fmt.Sprintf("  Receipt #%d — %s %s\n", r.ID, r.Date, r.Time))
	b.WriteString("  Customer: " + formatter.CustomerOrDash(r.CustomerName) + "\n")
	b.WriteString("  Items:    " + formatter.ItemsSummary(r.Items) + "\n")
	b.WriteString(fmt.Sprintf("  Totals:   %s, %s\n\n",
		formatter.Weight(r.TotalWeight), formatter.Money(r.TotalLaborCost)))

	if v.busy {
		b.WriteString("  " + formatter.Dim("Deleting...") + "\n")
	} else {
		b.WriteString("  " + formatter.Bold("This cannot be undone.") + " " +
			formatter.Dim("Press 'y' to delete, 'n' to cancel.") + "\n")
	}

	return b.String()
}
