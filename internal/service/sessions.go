package service

import (
	"context"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/storage"
)

// SessionService lists the sessions present in the dataset.
type SessionService interface {
	// Dates returns the distinct limit-up sessions, newest first. A limit
	// below 1 returns all of them.
	Dates(ctx context.Context, limit int) ([]models.SessionDate, error)
	// Nearest returns the latest session on or before the given day, or nil
	// when the dataset has none.
	Nearest(ctx context.Context, on time.Time) (*models.SessionDate, error)
}

type sessionService struct {
	store storage.Provider
}

func NewSessionService(store storage.Provider) SessionService {
	return &sessionService{store: store}
}

func (s *sessionService) Dates(ctx context.Context, limit int) ([]models.SessionDate, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	groups := groupBySession(ds.LimitUp())
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	out := make([]models.SessionDate, len(groups))
	for i, g := range groups {
		out[i] = g.date
	}
	return out, nil
}

func (s *sessionService) Nearest(ctx context.Context, on time.Time) (*models.SessionDate, error) {
	all, err := s.Dates(ctx, 0)
	if err != nil {
		return nil, err
	}
	today := models.CalendarDate(time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, time.UTC))
	for _, d := range all {
		if _, ok := d.Day(); !ok {
			continue
		}
		if d.Compare(today) <= 0 {
			return &d, nil
		}
	}
	return nil, nil
}
