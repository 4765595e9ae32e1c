package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/navdurga/steeldesk/internal/api"
	"github.com/rs/zerolog"
)

type exportService struct {
	backend Backend
	dir     string
	log     zerolog.Logger
}

// NewExportService creates the CSV download service. Exports land in dir
// under the backend's suggested filename.
func NewExportService(backend Backend, dir string, log zerolog.Logger) ExportService {
	return &exportService{backend: backend, dir: dir, log: log}
}

func (s *exportService) ExportAll(ctx context.Context) (*ExportOutcome, error) {
	result, err := s.backend.ExportAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.write(result)
}

func (s *exportService) ExportFiltered(ctx context.Context, q api.ReceiptQuery) (*ExportOutcome, error) {
	result, err := s.backend.Export(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.write(result)
}

// write stores the CSV bytes exactly as produced by the backend.
func (s *exportService) write(result *api.ExportResult) (*ExportOutcome, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	// The filename comes from the backend; keep only its base name so a
	// hostile value cannot escape the export directory.
	name := filepath.Base(result.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "receipts.csv"
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
		return nil, fmt.Errorf("writing export file: %w", err)
	}

	s.log.Info().Str("path", path).Int("records", result.TotalRecords).Msg("export written")
	return &ExportOutcome{Path: path, Filename: name, TotalRecords: result.TotalRecords}, nil
}
