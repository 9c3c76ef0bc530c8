package service

import (
	"context"
	"sort"

	"github.com/guttosm/boardpulse/internal/dates"
	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/storage"
)

// QueryOptions bounds the streak length of a date query.
//
// Fields:
//   - MinDays: inclusive lower bound (default 1).
//   - MaxDays: inclusive upper bound; nil means unbounded.
type QueryOptions struct {
	MinDays int
	MaxDays *int
}

// DefaultQueryOptions returns the bounds used when the caller sets none.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{MinDays: 1}
}

// QueryService answers "which stocks hit limit-up on this date".
type QueryService interface {
	QueryLimitUp(ctx context.Context, date string, opts QueryOptions) (*models.QueryResult, error)
}

type queryService struct {
	store storage.Provider
}

func NewQueryService(store storage.Provider) QueryService {
	return &queryService{store: store}
}

// QueryLimitUp returns the limit-up records of a session whose streak lies
// within opts, longest streak first. Records with equal streaks keep their
// dataset order. An empty result is not an error.
func (s *queryService) QueryLimitUp(ctx context.Context, date string, opts QueryOptions) (*models.QueryResult, error) {
	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.LadderRecord{}
	for _, r := range limitUpOn(ds, dates.ParseTarget(date)) {
		if r.ConsecutiveLimitUpDays < opts.MinDays {
			continue
		}
		if opts.MaxDays != nil && r.ConsecutiveLimitUpDays > *opts.MaxDays {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConsecutiveLimitUpDays > out[j].ConsecutiveLimitUpDays
	})
	return &models.QueryResult{Records: out, Total: len(out)}, nil
}

// limitUpOn selects the limit-up records of one session in dataset order.
func limitUpOn(ds *models.Dataset, target dates.Target) []models.LadderRecord {
	var out []models.LadderRecord
	for _, r := range ds.LimitUp() {
		if target.Matches(r.Date) {
			out = append(out, r)
		}
	}
	return out
}
