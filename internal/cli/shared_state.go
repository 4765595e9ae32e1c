package cli

import (
	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/shopspring/decimal"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Cached labor rate for preview totals. Advisory only; server totals
	// remain authoritative after any round trip.
	RatePerKg  float64
	RateLoaded bool

	// The single in-progress receipt draft. It survives navigating away
	// from the composer and failed submissions; it is reset on successful
	// submit and on logout.
	Draft *domain.ReceiptDraft

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:   app,
		Draft: domain.NewReceiptDraft(),
	}
}

// Username returns the active session's username, or "" when logged out.
func (s *SharedState) Username() string {
	if session := s.App.Auth.Current(); session != nil {
		return session.Username
	}
	return ""
}

// RateDecimal returns the cached labor rate as a decimal for draft
// preview math.
func (s *SharedState) RateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(s.RatePerKg)
}

// ResetDraft clears the in-progress draft back to one empty row.
func (s *SharedState) ResetDraft() {
	s.Draft.Reset()
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
