package cli

import (
	"io"
	"testing"

	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := NewRootCmd(app)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	app, _ := testApp(t)
	root := NewRootCmd(app)

	want := []string{"login", "logout", "passwd", "ping", "summary", "monthly", "receipts", "rate", "export"}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestLoginCmd_SignsIn(t *testing.T) {
	app, fakes := testAppLoggedOut(t)

	err := execute(t, app, "login", "-u", "owner", "-p", "secret")
	require.NoError(t, err)
	require.NotNil(t, fakes.auth.session)
	assert.Equal(t, "owner", fakes.auth.session.Username)
}

func TestLoginCmd_RequiresCredentialFlags(t *testing.T) {
	app, _ := testAppLoggedOut(t)

	assert.Error(t, execute(t, app, "login"))
	assert.Error(t, execute(t, app, "login", "-u", "owner"))
}

func TestReceiptsListCmd_RejectsHalfOpenRange(t *testing.T) {
	app, _ := testApp(t)

	err := execute(t, app, "receipts", "list", "--start", "2025-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start and --end")
}

func TestReceiptsAddCmd_CreatesFromItemSpecs(t *testing.T) {
	app, fakes := testApp(t)
	created := testReceipt(9)
	fakes.receipts.created = &created

	err := execute(t, app, "receipts", "add",
		"--customer", "Sharma Traders",
		"--item", "Angle:10:8x8 feet",
		"--item", "Rod:5")
	require.NoError(t, err)
	assert.Equal(t, 1, fakes.receipts.creates)
}

func TestReceiptsRemoveCmd_RequiresYes(t *testing.T) {
	app, fakes := testApp(t)

	err := execute(t, app, "receipts", "rm", "4")
	require.Error(t, err)
	assert.Empty(t, fakes.receipts.deleted)

	err = execute(t, app, "receipts", "rm", "4", "--yes")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, fakes.receipts.deleted)
}

func TestCommandsRequireLogin(t *testing.T) {
	app, _ := testAppLoggedOut(t)

	for _, args := range [][]string{
		{"receipts", "list"},
		{"summary"},
		{"monthly"},
		{"rate", "get"},
		{"export"},
	} {
		err := execute(t, app, args...)
		require.Error(t, err, "%v", args)
		assert.Contains(t, err.Error(), "not signed in", "%v", args)
	}
}

func TestRateSetCmd_PushesRate(t *testing.T) {
	app, fakes := testApp(t)

	err := execute(t, app, "rate", "set", "60")
	require.NoError(t, err)
	assert.Equal(t, []float64{60}, fakes.rates.updates)

	assert.Error(t, execute(t, app, "rate", "set", "sixty"))
}

func TestExportCmd_FullVersusFiltered(t *testing.T) {
	app, fakes := testApp(t)

	require.NoError(t, execute(t, app, "export"))
	assert.Equal(t, 1, fakes.export.all)
	assert.Empty(t, fakes.export.queries)

	require.NoError(t, execute(t, app, "export", "--start", "2025-06-01", "--end", "2025-06-30"))
	require.Len(t, fakes.export.queries, 1)
	assert.Equal(t, "2025-06-01", fakes.export.queries[0].StartDate)
}

func TestParseItemSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    domain.ItemDraft
		wantErr bool
	}{
		{spec: "Angle:10:8x8 feet", want: domain.ItemDraft{Name: "Angle", Weight: "10", Dimension: "8x8 feet"}},
		{spec: "Rod:5", want: domain.ItemDraft{Name: "Rod", Weight: "5"}},
		{spec: " Pipe : 2.5 : 3m ", want: domain.ItemDraft{Name: "Pipe", Weight: "2.5", Dimension: "3m"}},
		{spec: "Angle", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseItemSpec(tt.spec)
		if tt.wantErr {
			assert.Error(t, err, tt.spec)
			continue
		}
		require.NoError(t, err, tt.spec)
		assert.Equal(t, tt.want, got, tt.spec)
	}
}
