package cli

import (
	"context"
	"testing"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/navdurga/steeldesk/internal/service"
)

// fakeAuth is an in-memory AuthService.
type fakeAuth struct {
	session   *domain.Session
	stored    *domain.Session
	loginErr  error
	changeErr error
	logouts   int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.session = &domain.Session{Username: username, Token: "tok-" + username}
	return f.session, nil
}

func (f *fakeAuth) Restore(ctx context.Context) (*domain.Session, error) {
	f.session = f.stored
	return f.stored, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logouts++
	f.session = nil
	f.stored = nil
	return nil
}

func (f *fakeAuth) ChangePassword(ctx context.Context, current, newPassword, confirm string) error {
	return f.changeErr
}

func (f *fakeAuth) Current() *domain.Session { return f.session }

// fakeReceipts is an in-memory ReceiptService.
type fakeReceipts struct {
	receipts  []api.Receipt
	created   *api.Receipt
	creates   int
	createErr error
	searchErr error
	deleted   []int
	searches  []api.ReceiptQuery
}

func (f *fakeReceipts) Create(ctx context.Context, draft *domain.ReceiptDraft) (*api.Receipt, error) {
	f.creates++
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	draft.Reset()
	return f.created, nil
}

func (f *fakeReceipts) ListDay(ctx context.Context, date string) ([]api.Receipt, error) {
	return f.receipts, f.searchErr
}

func (f *fakeReceipts) Search(ctx context.Context, q api.ReceiptQuery) ([]api.Receipt, error) {
	f.searches = append(f.searches, q)
	return f.receipts, f.searchErr
}

func (f *fakeReceipts) Get(ctx context.Context, id int) (*api.Receipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			return &f.receipts[i], nil
		}
	}
	return nil, api.ErrUnavailable
}

func (f *fakeReceipts) Delete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeSummaries is an in-memory SummaryService.
type fakeSummaries struct {
	today   *service.DashboardData
	daily   *api.DailySummary
	monthly *service.MonthlyReport
	err     error
}

func (f *fakeSummaries) Today(ctx context.Context) (*service.DashboardData, error) {
	return f.today, f.err
}

func (f *fakeSummaries) ForDate(ctx context.Context, date string) (*api.DailySummary, error) {
	return f.daily, f.err
}

func (f *fakeSummaries) Monthly(ctx context.Context, year, month int) (*service.MonthlyReport, error) {
	return f.monthly, f.err
}

// fakeRates is an in-memory RateService.
type fakeRates struct {
	rate    float64
	getErr  error
	updates []float64
}

func (f *fakeRates) Get(ctx context.Context) (float64, error) {
	return f.rate, f.getErr
}

func (f *fakeRates) Update(ctx context.Context, ratePerKg float64) error {
	f.updates = append(f.updates, ratePerKg)
	f.rate = ratePerKg
	return nil
}

// fakeExport is an in-memory ExportService.
type fakeExport struct {
	outcome *service.ExportOutcome
	err     error
	queries []api.ReceiptQuery
	all     int
}

func (f *fakeExport) ExportAll(ctx context.Context) (*service.ExportOutcome, error) {
	f.all++
	return f.outcome, f.err
}

func (f *fakeExport) ExportFiltered(ctx context.Context, q api.ReceiptQuery) (*service.ExportOutcome, error) {
	f.queries = append(f.queries, q)
	return f.outcome, f.err
}

// testFakes bundles the fakes wired into a test App.
type testFakes struct {
	auth      *fakeAuth
	receipts  *fakeReceipts
	summaries *fakeSummaries
	rates     *fakeRates
	export    *fakeExport
}

// testApp builds an App whose stored session is already signed in, so the
// TUI starts at the dashboard.
func testApp(t *testing.T) (*App, *testFakes) {
	t.Helper()

	f := &testFakes{
		auth:     &fakeAuth{stored: &domain.Session{Username: "owner", Token: "tok"}},
		receipts: &fakeReceipts{},
		summaries: &fakeSummaries{
			today: &service.DashboardData{
				Summary: api.DailySummary{Date: "2025-06-10"},
			},
		},
		rates:  &fakeRates{rate: 50},
		export: &fakeExport{outcome: &service.ExportOutcome{Path: "receipts.csv", TotalRecords: 3}},
	}

	app := &App{
		Auth:          f.auth,
		Receipts:      f.receipts,
		Summaries:     f.summaries,
		Rates:         f.rates,
		Export:        f.export,
		Available:     func(ctx context.Context) bool { return true },
		IsInteractive: func() bool { return false },
	}
	return app, f
}

// testAppLoggedOut builds an App with no stored session.
func testAppLoggedOut(t *testing.T) (*App, *testFakes) {
	t.Helper()
	app, f := testApp(t)
	f.auth.stored = nil
	return app, f
}

func testReceipt(id int) api.Receipt {
	return api.Receipt{
		ID:             id,
		CustomerName:   "Sharma Traders",
		Date:           "2025-06-10",
		Time:           "11:30:00",
		TotalWeight:    15,
		TotalLaborCost: 750,
		Items: []api.ReceiptItem{
			{ID: 1, ItemName: "Angle", WeightKg: 10, Dimension: "8x8 feet", LaborCost: 500},
			{ID: 2, ItemName: "Rod", WeightKg: 5, LaborCost: 250},
		},
	}
}
