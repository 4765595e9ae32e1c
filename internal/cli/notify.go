package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/cli/formatter"
)

// noticeKind selects the notification color.
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

// noticeDuration is how long a notification stays visible before it
// expires on its own. Any key dismisses it earlier.
const noticeDuration = 5 * time.Second

// noticeMsg surfaces a transient notification in the app frame.
type noticeMsg struct {
	text string
	kind noticeKind
}

// noticeExpiredMsg clears the notification identified by seq; stale
// expirations for superseded notifications are ignored.
type noticeExpiredMsg struct {
	seq int
}

// notify returns a tea.Cmd that shows a notification.
func notify(kind noticeKind, text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, kind: kind} }
}

// notifyErr shows the user-facing message for err.
func notifyErr(err error) tea.Cmd {
	return notify(noticeError, api.UserMessage(err))
}

func renderNotice(kind noticeKind, text string) string {
	switch kind {
	case noticeSuccess:
		return formatter.StyleGreen.Render("✔ " + text)
	case noticeWarning:
		return formatter.StyleYellow.Render("▲ " + text)
	case noticeError:
		return formatter.StyleRed.Render("✘ " + text)
	default:
		return formatter.StyleBlue.Render("ℹ " + text)
	}
}
