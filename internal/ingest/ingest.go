// Package ingest loads JSON movie dumps into the index.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"filmseek/internal/domain"
	"filmseek/internal/store"
)

const batchSize = 100

// Loader writes movie dumps into a store using a bounded worker pool.
type Loader struct {
	store   store.MovieStore
	logger  zerolog.Logger
	workers int
}

// Report summarizes one dump load.
type Report struct {
	Loaded  int
	Skipped int
}

// NewLoader creates a loader with the given worker count.
func NewLoader(st store.MovieStore, logger zerolog.Logger, workers int) *Loader {
	if workers <= 0 {
		workers = 4
	}
	return &Loader{
		store:   st,
		logger:  logger,
		workers: workers,
	}
}

// LoadFile reads a dump file and indexes its movies. The dump is either a
// bare JSON array of movies or a {"results": [...]} wrapper, the two shapes
// the search service has used over time.
func (l *Loader) LoadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	movies, err := decodeDump(data)
	if err != nil {
		return nil, err
	}

	return l.Load(movies)
}

// Load indexes the given movies in batches, skipping invalid records.
func (l *Loader) Load(movies []domain.Movie) (*Report, error) {
	report := &Report{}

	valid := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Title == "" {
			report.Skipped++
			l.logger.Warn().Int("id", m.ID).Msg("skipping movie with empty title")
			continue
		}
		valid = append(valid, m)
	}

	pool, err := ants.NewPool(l.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	if err := l.indexBatches(valid, pool.Submit, report); err != nil {
		return nil, err
	}

	l.logger.Info().Int("loaded", report.Loaded).Int("skipped", report.Skipped).Msg("dump indexed")
	return report, nil
}

// indexBatches fans the movies out to submit in fixed-size batches. It
// waits for every batch it managed to submit, including on the submit
// error path, so the store is quiet by the time it returns.
func (l *Loader) indexBatches(valid []domain.Movie, submit func(func()) error, report *Report) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(valid); start += batchSize {
		end := start + batchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		wg.Add(1)
		submitErr := submit(func() {
			defer wg.Done()
			if err := l.store.Put(batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			mu.Lock()
			report.Loaded += len(batch)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return fmt.Errorf("failed to submit batch: %w", submitErr)
		}
	}

	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("failed to index batch: %w", firstErr)
	}
	return nil
}

func decodeDump(data []byte) ([]domain.Movie, error) {
	var wrapper domain.SearchResponse
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Results != nil {
		return wrapper.Results, nil
	}

	var movies []domain.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("dump is neither a movie array nor a results wrapper: %w", err)
	}
	return movies, nil
}
