package service

import (
	"context"
	"testing"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements Backend in memory and records calls.
type fakeBackend struct {
	token string

	loginResult *api.LoginResult
	loginErr    error

	rate    float64
	rateErr error

	receipts    []api.Receipt
	receiptsErr error

	createResult *api.CreateReceiptResult
	createErr    error
	createCalls  int
	lastCreated  api.NewReceipt

	deleteErr   error
	deletedIDs  []int
	passwordErr error

	summary    *api.DailySummary
	summaryErr error

	monthly    *api.MonthlySummary
	monthlyErr error

	exportResult *api.ExportResult
	exportErr    error
	lastQuery    *api.ReceiptQuery
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (*api.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeBackend) UpdatePassword(ctx context.Context, current, newPassword, confirm string) error {
	return f.passwordErr
}

func (f *fakeBackend) LaborRate(ctx context.Context) (*api.LaborRate, error) {
	if f.rateErr != nil {
		return nil, f.rateErr
	}
	return &api.LaborRate{RatePerKg: f.rate}, nil
}

func (f *fakeBackend) SetLaborRate(ctx context.Context, ratePerKg float64) error {
	if f.rateErr != nil {
		return f.rateErr
	}
	f.rate = ratePerKg
	return nil
}

func (f *fakeBackend) Receipts(ctx context.Context, q api.ReceiptQuery) ([]api.Receipt, error) {
	f.lastQuery = &q
	if f.receiptsErr != nil {
		return nil, f.receiptsErr
	}
	return f.receipts, nil
}

func (f *fakeBackend) CreateReceipt(ctx context.Context, r api.NewReceipt) (*api.CreateReceiptResult, error) {
	f.createCalls++
	f.lastCreated = r
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeBackend) DeleteReceipt(ctx context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeBackend) Summary(ctx context.Context, date string) (*api.DailySummary, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeBackend) MonthlySummary(ctx context.Context, year, month int) (*api.MonthlySummary, error) {
	if f.monthlyErr != nil {
		return nil, f.monthlyErr
	}
	return f.monthly, nil
}

func (f *fakeBackend) Export(ctx context.Context, q api.ReceiptQuery) (*api.ExportResult, error) {
	f.lastQuery = &q
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportResult, nil
}

func (f *fakeBackend) ExportAll(ctx context.Context) (*api.ExportResult, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportResult, nil
}

func (f *fakeBackend) SetToken(token string) { f.token = token }
func (f *fakeBackend) ClearToken()           { f.token = "" }

func testCreds(t *testing.T) *store.CredentialsRepo {
	t.Helper()
	db, err := store.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewCredentialsRepo(db)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
