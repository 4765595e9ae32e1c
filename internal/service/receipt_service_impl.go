package service

import (
	"context"
	"fmt"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/rs/zerolog"
)

type receiptService struct {
	backend Backend
	log     zerolog.Logger
}

// NewReceiptService creates the receipt workflow service.
func NewReceiptService(backend Backend, log zerolog.Logger) ReceiptService {
	return &receiptService{backend: backend, log: log}
}

func (s *receiptService) Create(ctx context.Context, draft *domain.ReceiptDraft) (*api.Receipt, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	items := draft.ValidItems()
	submission := api.NewReceipt{
		CustomerName: draft.CustomerName,
		Notes:        draft.Notes,
		Items:        make([]api.NewReceiptItem, 0, len(items)),
	}
	for _, item := range items {
		submission.Items = append(submission.Items, api.NewReceiptItem{
			ItemName:  item.Name,
			WeightKg:  item.WeightKg.InexactFloat64(),
			Dimension: item.Dimension,
		})
	}

	result, err := s.backend.CreateReceipt(ctx, submission)
	if err != nil {
		// The draft stays intact so the user can correct and resubmit.
		return nil, err
	}

	draft.Reset()
	s.log.Info().Int("receipt_id", result.ReceiptID).Int("items", len(items)).Msg("receipt created")

	// The create endpoint returns only the id; the stored receipt with its
	// server-computed totals comes from a re-fetch.
	receipt, err := s.Get(ctx, result.ReceiptID)
	if err != nil {
		return nil, fmt.Errorf("fetching created receipt: %w", err)
	}
	return receipt, nil
}

func (s *receiptService) ListDay(ctx context.Context, date string) ([]api.Receipt, error) {
	return s.backend.Receipts(ctx, api.DayQuery(date))
}

func (s *receiptService) Search(ctx context.Context, q api.ReceiptQuery) ([]api.Receipt, error) {
	return s.backend.Receipts(ctx, q)
}

// Get fetches the whole collection and locates the receipt by id. There is
// no GET /receipts/{id} in the backend contract; data volumes are small
// enough that this stays acceptable.
func (s *receiptService) Get(ctx context.Context, id int) (*api.Receipt, error) {
	receipts, err := s.backend.Receipts(ctx, api.ReceiptQuery{})
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			return &receipts[i], nil
		}
	}
	return nil, fmt.Errorf("receipt %d not found", id)
}

func (s *receiptService) Delete(ctx context.Context, id int) error {
	if err := s.backend.DeleteReceipt(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("receipt_id", id).Msg("receipt deleted")
	return nil
}
