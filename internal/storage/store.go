package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/boardpulse/internal/domain/models"
	"github.com/guttosm/boardpulse/internal/logger"
	"golang.org/x/sync/singleflight"
)

// MissingDataHint tells the operator how to produce the dataset.
const MissingDataHint = "run the ladder pipeline first"

// ErrUnsupportedSource is returned when no loader handles the configured source.
var ErrUnsupportedSource = errors.New("unsupported ladder source")

// MissingDataError reports that the backing dataset does not exist yet.
type MissingDataError struct {
	Location string
	Err      error
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("ladder data not found at %s: %s", e.Location, MissingDataHint)
}

func (e *MissingDataError) Unwrap() error { return e.Err }

// Loader reads raw rows from one backing source.
type Loader interface {
	Load(ctx context.Context) ([]Row, error)
	Location() string
}

// Provider hands the loaded dataset to the engines.
type Provider interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// Store loads the dataset once and caches it for the process lifetime.
//
// Behavior:
//   - Concurrent first calls share a single load.
//   - Failures are not cached; the next call retries.
//   - The returned dataset is read-only and safe to share.
type Store struct {
	loader Loader
	group  singleflight.Group

	mu sync.RWMutex
	ds *models.Dataset
}

// NewStore creates a Store backed by loader.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Load returns the cached dataset, loading it on first use.
func (s *Store) Load(ctx context.Context) (*models.Dataset, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	v, err, _ := s.group.Do("dataset", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Dataset), nil
}

func (s *Store) load(ctx context.Context) (*models.Dataset, error) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	start := time.Now()
	location := s.loader.Location()
	rows, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, err = buildDataset(rows, location)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	logger.L().Info().
		Str("source", location).
		Int("rows", ds.Len()).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("ladder data loaded")
	return ds, nil
}
