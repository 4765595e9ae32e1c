package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeInto(t *testing.T, v *composeView, text string) *composeView {
	t.Helper()
	for _, r := range text {
		model, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		v = model.(*composeView)
	}
	return v
}

func press(t *testing.T, v *composeView, keyType tea.KeyType) (*composeView, tea.Cmd) {
	t.Helper()
	model, cmd := v.Update(tea.KeyMsg{Type: keyType})
	return model.(*composeView), cmd
}

func composeViewFor(t *testing.T) (*composeView, *SharedState, *testFakes) {
	t.Helper()
	app, fakes := testApp(t)
	state := newSharedState(app)
	state.RatePerKg = 50
	state.RateLoaded = true
	return newComposeView(state), state, fakes
}

func TestComposeView_TypingMirrorsIntoDraft(t *testing.T) {
	v, state, _ := composeViewFor(t)

	// Focus starts on the first item row's name field.
	v = typeInto(t, v, "Angle")
	v, _ = press(t, v, tea.KeyTab)
	v = typeInto(t, v, "10")

	require.Len(t, state.Draft.Items, 1)
	assert.Equal(t, "Angle", state.Draft.Items[0].Name)
	assert.Equal(t, "10", state.Draft.Items[0].Weight)
	assert.Equal(t, "10", state.Draft.TotalWeight().String())
}

func TestComposeView_LivePreviewUsesCachedRate(t *testing.T) {
	v, state, _ := composeViewFor(t)

	v = typeInto(t, v, "Angle")
	v, _ = press(t, v, tea.KeyTab)
	v = typeInto(t, v, "10")

	out := v.View()
	assert.Contains(t, out, "10.00 kg")
	assert.Contains(t, out, "₹500.00")

	// Preview math only; nothing was submitted.
	assert.Equal(t, "500", state.Draft.PreviewLaborCost(state.RateDecimal()).String())
}

func TestComposeView_InvalidWeightCountsAsZero(t *testing.T) {
	v, state, _ := composeViewFor(t)

	v = typeInto(t, v, "Angle")
	v, _ = press(t, v, tea.KeyTab)
	v = typeInto(t, v, "abc")

	assert.True(t, state.Draft.TotalWeight().IsZero())
}

func TestComposeView_AddAndRemoveRows(t *testing.T) {
	v, state, _ := composeViewFor(t)

	model, _ := v.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	v = model.(*composeView)
	require.Len(t, v.rows, 2)
	require.Len(t, state.Draft.Items, 2)

	// Focus moved to the new row's name field.
	v = typeInto(t, v, "Rod")
	assert.Equal(t, "Rod", state.Draft.Items[1].Name)

	model, _ = v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	v = model.(*composeView)
	require.Len(t, v.rows, 1)
	require.Len(t, state.Draft.Items, 1)
}

func TestComposeView_RemovingLastRowClearsIt(t *testing.T) {
	v, state, _ := composeViewFor(t)

	v = typeInto(t, v, "Angle")
	model, _ := v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	v = model.(*composeView)

	require.Len(t, v.rows, 1)
	require.Len(t, state.Draft.Items, 1)
	assert.Empty(t, state.Draft.Items[0].Name)
}

func TestComposeView_SubmitWithNoValidItemsWarnsLocally(t *testing.T) {
	v, _, fakes := composeViewFor(t)

	// A name without a weight is not a valid item.
	v = typeInto(t, v, "Angle")
	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	v = model.(*composeView)

	require.NotNil(t, cmd)
	msg, ok := cmd().(noticeMsg)
	require.True(t, ok)
	assert.Equal(t, noticeWarning, msg.kind)
	assert.False(t, v.busy)
	assert.Zero(t, fakes.receipts.creates)
}

func TestComposeView_SuccessfulSubmitResetsDraft(t *testing.T) {
	v, state, fakes := composeViewFor(t)
	created := testReceipt(7)
	fakes.receipts.created = &created

	v = typeInto(t, v, "Angle")
	v, _ = press(t, v, tea.KeyTab)
	v = typeInto(t, v, "10")

	model, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	v = model.(*composeView)
	require.NotNil(t, cmd)
	assert.True(t, v.busy)

	// Run the submission command and feed its result back.
	done, ok := cmd().(composeDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, 7, done.receipt.ID)

	model, _ = v.Update(done)
	_ = model

	require.Len(t, state.Draft.Items, 1)
	assert.Empty(t, state.Draft.Items[0].Name)
	assert.Empty(t, state.Draft.CustomerName)
}

func TestComposeView_DraftSurvivesLeavingComposer(t *testing.T) {
	v, state, _ := composeViewFor(t)

	v = typeInto(t, v, "Angle")
	_, cmd := press(t, v, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, popViewMsg{}, cmd())

	// Reopening resumes the same draft.
	again := newComposeView(state)
	assert.Equal(t, "Angle", again.rows[0].name.Value())
}

func TestComposeView_StaleRateResponseIsDropped(t *testing.T) {
	app, _ := testApp(t)
	state := newSharedState(app)
	v := newComposeView(state)

	_ = v.loadRate() // supersedes any earlier load
	current := v.loadID

	model, _ := v.Update(composeRateMsg{rate: 99})
	v = model.(*composeView)
	assert.False(t, state.RateLoaded)

	model, _ = v.Update(composeRateMsg{reqID: current, rate: 50})
	_ = model
	assert.True(t, state.RateLoaded)
	assert.Equal(t, 50.0, state.RatePerKg)
}
