package service

import (
	"context"
	"math"

	"github.com/navdurga/steeldesk/internal/domain"
	"github.com/rs/zerolog"
)

type rateService struct {
	backend Backend
	log     zerolog.Logger
}

// NewRateService creates the labor rate service.
func NewRateService(backend Backend, log zerolog.Logger) RateService {
	return &rateService{backend: backend, log: log}
}

func (s *rateService) Get(ctx context.Context) (float64, error) {
	rate, err := s.backend.LaborRate(ctx)
	if err != nil {
		return 0, err
	}
	return rate.RatePerKg, nil
}

func (s *rateService) Update(ctx context.Context, ratePerKg float64) error {
	if ratePerKg < 0 || math.IsNaN(ratePerKg) || math.IsInf(ratePerKg, 0) {
		return domain.ErrInvalidRate
	}
	if err := s.backend.SetLaborRate(ctx, ratePerKg); err != nil {
		return err
	}
	s.log.Info().Float64("rate_per_kg", ratePerKg).Msg("labor rate updated")
	return nil
}
