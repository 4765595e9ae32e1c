package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
)

// rateLoadedMsg delivers the current labor rate for display.
type rateLoadedMsg struct {
	reqID uuid.UUID
	rate  float64
	err   error
}

// rateSavedMsg reports a labor rate update.
type rateSavedMsg struct {
	rate float64
	err  error
}

// passwordChangedMsg reports a password change attempt.
type passwordChangedMsg struct {
	err error
}

// logoutDoneMsg reports session teardown.
type logoutDoneMsg struct {
	err error
}

// settingsView manages the labor rate, password changes, and logout.
type settingsView struct {
	state   *SharedState
	rate    float64
	loading bool
	err     error

	loadID uuid.UUID
}

func newSettingsView(state *SharedState) *settingsView {
	return &settingsView{state: state, loading: true}
}

func (v *settingsView) ID() ViewID    { return ViewSettings }
func (v *settingsView) Title() string { return "Settings" }

func (v *settingsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "update rate")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "change password")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "sign out")),
	}
}

func (v *settingsView) Init() tea.Cmd {
	return v.loadData()
}

func (v *settingsView) loadData() tea.Cmd {
	v.loadID = uuid.New()
	reqID := v.loadID
	app := v.state.App
	return func() tea.Msg {
		rate, err := app.Rates.Get(context.Background())
		return rateLoadedMsg{reqID: reqID, rate: rate, err: err}
	}
}

// rateWizard builds the labor rate form. The new rate applies to future
// receipts only; stored receipts keep the costs they were created with.
func (v *settingsView) rateWizard() View {
	value := strconv.FormatFloat(v.rate, 'f', -1, 64)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Labor rate (₹ per kg)").
				Description("Applies to receipts created after the change.").
				Validate(func(s string) error {
					rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return errors.New("enter a number")
					}
					if rate < 0 {
						return errors.New("rate cannot be negative")
					}
					return nil
				}).
				Value(&value),
		),
	).WithTheme(steeldeskHuhTheme()).WithShowHelp(false)

	app := v.state.App
	return newWizardView(v.state, "Labor Rate", form, func() tea.Cmd {
		return func() tea.Msg {
			rate, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
			return rateSavedMsg{rate: rate, err: app.Rates.Update(context.Background(), rate)}
		}
	})
}

// passwordWizard builds the change-password form. Current-password and
// confirmation checks belong to the backend; the form only requires
// non-empty fields.
func (v *settingsView) passwordWizard() View {
	var current, newPass, confirm string
	required := func(s string) error {
		if s == "" {
			return errors.New("required")
		}
		return nil
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Validate(required).
				Value(&current),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Validate(required).
				Value(&newPass),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Validate(required).
				Value(&confirm),
		),
	).WithTheme(steeldeskHuhTheme()).WithShowHelp(false)

	app := v.state.App
	return newWizardView(v.state, "Change Password", form, func() tea.Cmd {
		return func() tea.Msg {
			err := app.Auth.ChangePassword(context.Background(), current, newPass, confirm)
			return passwordChangedMsg{err: err}
		}
	})
}

func (v *settingsView) logout() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		return logoutDoneMsg{err: app.Auth.Logout(context.Background())}
	}
}

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rateLoadedMsg:
		if msg.reqID != v.loadID {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.rate = msg.rate
			v.state.RatePerKg = msg.rate
			v.state.RateLoaded = true
		}
		return v, nil

	case rateSavedMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		v.rate = msg.rate
		v.state.RatePerKg = msg.rate
		v.state.RateLoaded = true
		return v, notify(noticeSuccess, fmt.Sprintf("Labor rate set to %s/kg", formatter.Money(msg.rate)))

	case passwordChangedMsg:
		if msg.err != nil {
			return v, notifyErr(msg.err)
		}
		return v, notify(noticeSuccess, "Password updated")

	case logoutDoneMsg:
		// Local teardown always succeeds even if storage cleanup failed;
		// the session is gone either way.
		v.state.RateLoaded = false
		v.state.RatePerKg = 0
		v.state.ResetDraft()
		return v, tea.Batch(
			resetTo(newLoginView(v.state)),
			notify(noticeInfo, "Signed out"),
		)

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "u":
			if !v.loading && v.err == nil {
				return v, pushView(v.rateWizard())
			}
		case "p":
			return v, pushView(v.passwordWizard())
		case "x":
			return v, v.logout()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *settingsView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("SETTINGS") + "\n\n")

	if user := v.state.Username(); user != "" {
		b.WriteString("  " + formatter.Dim("Signed in as") + " " + formatter.Bold(user) + "\n\n")
	}

	switch {
	case v.loading:
		b.WriteString("  " + formatter.Dim("Loading labor rate...") + "\n")
	case v.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Labor rate unavailable: "+v.err.Error()) + "\n")
	default:
		b.WriteString("  " + formatter.Dim("Labor rate") + "  " +
			formatter.StyleGreen.Render(formatter.Money(v.rate)+"/kg") + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + formatter.Bold("u") + "  " + formatter.Dim("Update labor rate") + "\n")
	b.WriteString("  " + formatter.Bold("p") + "  " + formatter.Dim("Change password") + "\n")
	b.WriteString("  " + formatter.Bold("x") + "  " + formatter.Dim("Sign out") + "\n")

	return b.String()
}
