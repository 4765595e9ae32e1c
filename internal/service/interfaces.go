package service

import (
	"context"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/domain"
)

// Backend is the slice of the API client the services depend on.
// *api.Client satisfies it; tests substitute fakes.
type Backend interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	UpdatePassword(ctx context.Context, current, newPassword, confirm string) error
	LaborRate(ctx context.Context) (*api.LaborRate, error)
	SetLaborRate(ctx context.Context, ratePerKg float64) error
	Receipts(ctx context.Context, q api.ReceiptQuery) ([]api.Receipt, error)
	CreateReceipt(ctx context.Context, r api.NewReceipt) (*api.CreateReceiptResult, error)
	DeleteReceipt(ctx context.Context, id int) error
	Summary(ctx context.Context, date string) (*api.DailySummary, error)
	MonthlySummary(ctx context.Context, year, month int) (*api.MonthlySummary, error)
	Export(ctx context.Context, q api.ReceiptQuery) (*api.ExportResult, error)
	ExportAll(ctx context.Context) (*api.ExportResult, error)
	SetToken(token string)
	ClearToken()
}

type AuthService interface {
	// Login authenticates, arms the backend token, and persists the session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	// Restore resumes a persisted session without re-authenticating. No local
	// expiry check is performed; a dead token surfaces as ErrUnauthorized on
	// the next call. Returns nil when no session is stored.
	Restore(ctx context.Context) (*domain.Session, error)
	// Logout clears the in-memory session, the backend token, and durable
	// storage.
	Logout(ctx context.Context) error
	// ChangePassword delegates all validation to the backend.
	ChangePassword(ctx context.Context, current, newPassword, confirm string) error
	// Current returns the active session, or nil when logged out.
	Current() *domain.Session
}

type ReceiptService interface {
	// Create validates and submits a draft. With no valid items it fails with
	// domain.ErrNoItems before any network call. On success the draft is
	// reset to one empty row and the stored receipt is returned.
	Create(ctx context.Context, draft *domain.ReceiptDraft) (*api.Receipt, error)
	// ListDay fetches all receipts for one date.
	ListDay(ctx context.Context, date string) ([]api.Receipt, error)
	// Search passes filters through to the backend verbatim.
	Search(ctx context.Context, q api.ReceiptQuery) ([]api.Receipt, error)
	// Get re-fetches the receipt collection and locates by id.
	Get(ctx context.Context, id int) (*api.Receipt, error)
	// Delete removes a receipt. Confirmation is the caller's responsibility.
	Delete(ctx context.Context, id int) error
}

// DashboardData bundles the "today" summary with the day's receipt list.
type DashboardData struct {
	Summary  api.DailySummary
	Receipts []api.Receipt
}

// DayRow is one rendered line of a monthly breakdown.
type DayRow struct {
	Date      string
	Receipts  int
	Weight    float64
	LaborCost float64
}

// MonthlyReport is a monthly summary with the breakdown flattened into
// date-ascending rows.
type MonthlyReport struct {
	Year           int
	Month          int
	TotalReceipts  int
	TotalWeight    float64
	TotalLaborCost float64
	Days           []DayRow
}

type SummaryService interface {
	// Today fetches the current day's summary and receipts. No caching;
	// every call re-fetches.
	Today(ctx context.Context) (*DashboardData, error)
	// ForDate fetches the summary for a specific date.
	ForDate(ctx context.Context, date string) (*api.DailySummary, error)
	// Monthly fetches the month aggregate with rows sorted by date ascending
	// regardless of the response's map ordering.
	Monthly(ctx context.Context, year, month int) (*MonthlyReport, error)
}

type RateService interface {
	Get(ctx context.Context) (float64, error)
	// Update rejects negative or non-finite rates locally with
	// domain.ErrInvalidRate, then pushes the new rate.
	Update(ctx context.Context, ratePerKg float64) error
}

// ExportOutcome describes a completed CSV download.
type ExportOutcome struct {
	Path         string
	Filename     string
	TotalRecords int
}

type ExportService interface {
	// ExportAll downloads the full CSV export and writes it to the export
	// directory under the backend's suggested filename.
	ExportAll(ctx context.Context) (*ExportOutcome, error)
	// ExportFiltered downloads a CSV export with the same filters as a
	// receipt search.
	ExportFiltered(ctx context.Context, q api.ReceiptQuery) (*ExportOutcome, error)
}
