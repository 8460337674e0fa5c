// Package store persists the movie index in BadgerDB.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"filmseek/internal/domain"
)

const moviePrefix = "movie:"

// MovieStore is the interface the search service and the populate step use.
type MovieStore interface {
	Put(movies []domain.Movie) error
	Get(id int) (*domain.Movie, error)
	Search(query string, limit int) ([]domain.Movie, error)
	Count() (int, error)
	Close() error
}

// Store is a BadgerDB-backed movie index.
type Store struct {
	db *badger.DB
}

var _ MovieStore = (*Store)(nil)

// Open opens (creating if needed) the index at the given directory.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logging is too chatty for a TUI sibling process

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory index, used by tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory index: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func movieKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%012d", moviePrefix, id))
}

// Put writes a batch of movies, overwriting existing records with the same ID.
func (s *Store) Put(movies []domain.Movie) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, m := range movies {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to marshal movie %d: %w", m.ID, err)
		}
		if err := wb.Set(movieKey(m.ID), data); err != nil {
			return fmt.Errorf("failed to write movie %d: %w", m.ID, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to flush batch: %w", err)
	}
	return nil
}

// Get returns the movie with the given ID, or nil if absent.
func (s *Store) Get(id int) (*domain.Movie, error) {
	var movie *domain.Movie

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(movieKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var m domain.Movie
			if err := json.Unmarshal(val, &m); err != nil {
				return err
			}
			movie = &m
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read movie %d: %w", id, err)
	}
	return movie, nil
}

// Count returns the number of indexed movies.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(moviePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

// Search scans the index for movies whose title or overview contains the
// query, case-insensitively. Title matches rank before overview-only
// matches; within a rank, ID order. An empty query returns the first
// movies in ID order, matching the behavior of a search engine queried
// with no terms.
func (s *Store) Search(query string, limit int) ([]domain.Movie, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	type ranked struct {
		movie domain.Movie
		rank  int
	}
	var matches []ranked

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(moviePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var m domain.Movie
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			})
			if err != nil {
				return err
			}

			if needle == "" {
				matches = append(matches, ranked{movie: m, rank: 0})
				if len(matches) >= limit {
					return nil
				}
				continue
			}

			switch {
			case strings.Contains(strings.ToLower(m.Title), needle):
				matches = append(matches, ranked{movie: m, rank: 0})
			case strings.Contains(strings.ToLower(m.Overview), needle):
				matches = append(matches, ranked{movie: m, rank: 1})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search scan failed: %w", err)
	}

	// Keys iterate in ID order already, so a stable sort on rank keeps
	// ID order within each rank.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]domain.Movie, 0, len(matches))
	for _, r := range matches {
		results = append(results, r.movie)
	}
	return results, nil
}
