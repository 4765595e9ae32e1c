package service

import (
	"context"
	"sort"

	"github.com/navdurga/steeldesk/internal/api"
)

type summaryService struct {
	backend Backend
}

// NewSummaryService creates the dashboard and monthly aggregation service.
func NewSummaryService(backend Backend) SummaryService {
	return &summaryService{backend: backend}
}

func (s *summaryService) Today(ctx context.Context) (*DashboardData, error) {
	summary, err := s.backend.Summary(ctx, "")
	if err != nil {
		return nil, err
	}
	// The summary carries the server's idea of "today"; query the receipt
	// list for that same date so the two halves of the dashboard agree.
	receipts, err := s.backend.Receipts(ctx, api.DayQuery(summary.Date))
	if err != nil {
		return nil, err
	}
	return &DashboardData{Summary: *summary, Receipts: receipts}, nil
}

func (s *summaryService) ForDate(ctx context.Context, date string) (*api.DailySummary, error) {
	return s.backend.Summary(ctx, date)
}

func (s *summaryService) Monthly(ctx context.Context, year, month int) (*MonthlyReport, error) {
	summary, err := s.backend.MonthlySummary(ctx, year, month)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{
		Year:           summary.Year,
		Month:          summary.Month,
		TotalReceipts:  summary.TotalReceipts,
		TotalWeight:    summary.TotalWeight,
		TotalLaborCost: summary.TotalLaborCost,
		Days:           make([]DayRow, 0, len(summary.DailyBreakdown)),
	}
	for date, totals := range summary.DailyBreakdown {
		report.Days = append(report.Days, DayRow{
			Date:      date,
			Receipts:  totals.Receipts,
			Weight:    totals.Weight,
			LaborCost: totals.LaborCost,
		})
	}
	// Lexical order on ISO dates is chronological order.
	sort.Slice(report.Days, func(i, j int) bool {
		return report.Days[i].Date < report.Days[j].Date
	})
	return report, nil
}
