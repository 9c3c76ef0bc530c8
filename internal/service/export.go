package service

import (
	"context"

	"github.com/guttosm/boardpulse/internal/dates"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/exporter"
	"github.com/guttosm/boardpulse/internal/storage"
)

// ExportService writes one session's limit-up records to a file.
type ExportService interface {
	Export(ctx context.Context, date, outputPath string) (int, error)
}

type exportService struct {
	store storage.Provider
	write func(path string, recs []models.LadderRecord) error
}

func NewExportService(store storage.Provider) ExportService {
	return &exportService{store: store, write: exporter.Write}
}

// Export selects records the same way QueryLimitUp does, without streak
// bounds and in dataset order, and returns how many were written. When
// nothing matches it returns 0 and leaves outputPath untouched.
func (s *exportService) Export(ctx context.Context, date, outputPath string) (int, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	recs := limitUpOn(ds, dates.ParseTarget(date))
	if len(recs) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.write(outputPath, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}
