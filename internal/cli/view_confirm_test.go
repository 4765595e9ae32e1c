package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmDeleteView_RequiresExplicitYes(t *testing.T) {
	app, fakes := testApp(t)
	state := newSharedState(app)
	v := newConfirmDeleteView(state, testReceipt(4))

	// Any key other than 'y' must not delete.
	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = model.(*confirmDeleteView)
	assert.Nil(t, cmd)
	assert.Empty(t, fakes.receipts.deleted)

	model, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	v = model.(*confirmDeleteView)
	require.NotNil(t, cmd)
	assert.IsType(t, popViewMsg{}, cmd())
	assert.Empty(t, fakes.receipts.deleted)
}

func TestConfirmDeleteView_YesDeletesAndPops(t *testing.T) {
	app, fakes := testApp(t)
	state := newSharedState(app)
	v := newConfirmDeleteView(state, testReceipt(4))

	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	v = model.(*confirmDeleteView)
	require.NotNil(t, cmd)
	assert.True(t, v.busy)

	done, ok := cmd().(deleteDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, []int{4}, fakes.receipts.deleted)

	model, cmd = v.Update(done)
	_ = model
	require.NotNil(t, cmd)
}

func TestConfirmDeleteView_SecondKeyWhileBusyIsIgnored(t *testing.T) {
	app, fakes := testApp(t)
	state := newSharedState(app)
	v := newConfirmDeleteView(state, testReceipt(4))

	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	v = model.(*confirmDeleteView)
	_ = cmd().(deleteDoneMsg)

	model, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	v = model.(*confirmDeleteView)
	assert.Nil(t, cmd)
	assert.Len(t, fakes.receipts.deleted, 1)
	_ = model
}

func TestConfirmDeleteView_ShowsReceiptDetails(t *testing.T) {
	app, _ := testApp(t)
	state := newSharedState(app)
	v := newConfirmDeleteView(state, testReceipt(4))

	out := v.View()
	assert.Contains(t, out, "Receipt #4")
	assert.Contains(t, out, "Sharma Traders")
	assert.Contains(t, out, "cannot be undone")
}
