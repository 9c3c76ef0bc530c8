package service

import (
	"context"
	"sort"
	"strings"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/storage"
)

// SearchService finds a stock on the most recent session by code or name.
type SearchService interface {
	Search(ctx context.Context, keyword string) (*models.SearchResult, error)
}

type searchService struct {
	store storage.Provider
}

func NewSearchService(store storage.Provider) SearchService {
	return &searchService{store: store}
}

// Search matches keyword case-insensitively as a substring of the symbol or
// name among the latest session's limit-up records. The first match in
// dataset order wins and its full limit-up history is attached.
//
// Returns nil, nil when nothing matches.
func (s *searchService) Search(ctx context.Context, keyword string) (*models.SearchResult, error) {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil, nil
	}

	ds, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	limitUp := ds.LimitUp()
	if len(limitUp) == 0 {
		return nil, nil
	}

	latest := limitUp[0].Date
	for _, r := range limitUp[1:] {
		if r.Date.Compare(latest) > 0 {
			latest = r.Date
		}
	}

	var match *models.LadderRecord
	for i := range limitUp {
		r := &limitUp[i]
		if r.Date.Compare(latest) != 0 {
			continue
		}
		if strings.Contains(strings.ToLower(r.Symbol), kw) || strings.Contains(strings.ToLower(r.Name), kw) {
			match = r
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	var history []models.LadderRecord
	for _, r := range limitUp {
		if r.Symbol == match.Symbol {
			history = append(history, r)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Compare(history[j].Date) < 0
	})

	return &models.SearchResult{Match: *match, History: history}, nil
}
