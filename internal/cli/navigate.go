package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data. It is
// broadcast after mutations (submit, delete, rate change) so underlying
// views don't render stale tables.
type refreshViewMsg struct{}

// resetToMsg collapses the stack to a single view (login after logout,
// dashboard after login).
type resetToMsg struct {
	view View
}

// quitMsg terminates the program.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// resetTo returns a tea.Cmd that collapses the stack to a single view.
func resetTo(v View) tea.Cmd {
	return func() tea.Msg { return resetToMsg{view: v} }
}

// refreshViews returns a tea.Cmd that broadcasts a refresh to the stack.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}
