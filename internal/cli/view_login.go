package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
	"github.com/navdurga/steeldesk/internal/domain"
)

// loginDoneMsg carries the outcome of a login attempt.
type loginDoneMsg struct {
	session *domain.Session
	rate    float64
	rateOK  bool
	err     error
}

// loginView is the credential form shown when no session is stored.
type loginView struct {
	state     *SharedState
	form      *huh.Form
	username  string
	password  string
	busy      bool
	lastError string
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&v.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password),
		),
	).WithTheme(steeldeskHuhTheme()).WithShowHelp(false)
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) attempt() tea.Cmd {
	app := v.state.App
	username, password := v.username, v.password
	return func() tea.Msg {
		ctx := context.Background()

		session, err := app.Auth.Login(ctx, username, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}

		// Prime the labor rate so the composer previews totals without a
		// second visible load. A failure here is not fatal; the composer
		// retries on entry.
		msg := loginDoneMsg{session: session}
		if rate, err := app.Rates.Get(ctx); err == nil {
			msg.rate = rate
			msg.rateOK = true
		}
		return msg
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrInvalidCredentials) {
				v.lastError = "Invalid username or password"
			} else {
				v.lastError = api.UserMessage(msg.err)
			}
			v.password = ""
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		if msg.rateOK {
			v.state.RatePerKg = msg.rate
			v.state.RateLoaded = true
		}
		return v, tea.Batch(
			resetTo(newDashboardView(v.state)),
			notify(noticeSuccess, "Signed in as "+msg.session.Username),
		)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return v, func() tea.Msg { return quitMsg{} }
		}
		if v.busy {
			return v, nil
		}
	}

	if v.busy {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.busy = true
		v.lastError = ""
		return v, tea.Batch(cmd, v.attempt())
	}

	return v, cmd
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("Nav Durga Steel") + "\n")
	b.WriteString("  " + formatter.Dim("Sign in to continue") + "\n\n")

	if v.busy {
		b.WriteString("  " + formatter.Dim("Signing in...") + "\n")
		return b.String()
	}

	b.WriteString(v.form.View())

	if v.lastError != "" {
		b.WriteString("\n  " + formatter.StyleRed.Render("✘ "+v.lastError) + "\n")
	}

	return b.String()
}
