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
)

// receiptLoadedMsg delivers a single receipt fetched by ID.
type receiptLoadedMsg struct {
	reqID   uuid.UUID
	receipt *api.Receipt
	err     error
}

// receiptView shows one receipt as a printable ticket.
type receiptView struct {
	state     *SharedState
	receiptID int
	receipt   *api.Receipt
	loading   bool
	err       error

	loadID uuid.UUID
}

func newReceiptView(state *SharedState, receiptID int) *receiptView {
	return &receiptView{
		state:     state,
		receiptID: receiptID,
		loading:   true,
	}
}

func (v *receiptView) ID() ViewID    { return ViewReceipt }
func (v *receiptView) Title() string { return fmt.Sprintf("Receipt #%d", v.receiptID) }

func (v *receiptView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *receiptView) Init() tea.Cmd {
	return v.loadData()
}

func (v *receiptView) loadData() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	id := v.receiptID
	return func() tea.Msg {
		receipt, err := app.Receipts.Get(context.Background(), id)
		return receiptLoadedMsg{reqID: reqID, receipt: receipt, err: err}
	}
}

func (v *receiptView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case receiptLoadedMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		v.loading = false
		v.receipt = msg.receipt
		v.err = msg.err
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			if v.receipt != nil {
				return v, pushView(newConfirmDeleteFromTicket(v.state, *v.receipt))
			}
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *receiptView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.receipt == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(formatter.FormatReceiptTicket(v.receipt), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
