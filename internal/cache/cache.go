// Package cache persists best-known schedules and run statistics
// across CLI invocations, keyed by the problem shape (table capacities,
// round count, word width). It wraps BadgerDB exactly the way the
// chess engine's internal/storage package wraps it for preferences and
// game stats: JSON-encoded values under short binary keys, committed
// through short-lived transactions.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

// Store is a handle to the on-disk run cache. It is safe for
// concurrent use by multiple goroutines (Badger itself is).
type Store struct {
	db *badger.DB
}

// Stats is the best result recorded so far for a given problem shape.
type Stats struct {
	Tables      []int     `json:"tables"`
	Rounds      int       `json:"rounds"`
	WordBits    int       `json:"word_bits"`
	Solved      bool      `json:"solved"`
	Steps       uint64    `json:"steps"`
	BestDepth   int       `json:"best_depth"`
	Schedule    [][]int   `json:"schedule,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
	RunCount    int       `json:"run_count"`
}

// Open opens (creating if necessary) the Badger store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cache: open badger: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultDir returns the platform-appropriate application data
// directory for the run cache, mirroring the chess engine's
// GetDataDir/GetDatabaseDir split.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cache: resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "schedsolver", "runs"), nil
}

// Close releases the underlying Badger handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for a problem shape: an 8-byte xxhash
// digest of its (tables, rounds, wordBits) triple, hex-encoded.
func Key(tables []int, rounds, wordBits int) string {
	h := xxhash.New()
	for _, t := range tables {
		fmt.Fprintf(h, "%d,", t)
	}
	fmt.Fprintf(h, "|%d|%d", rounds, wordBits)
	return fmt.Sprintf("run:%x", h.Sum64())
}

// Load returns the recorded Stats for key, or (_, false, nil) if
// nothing has been recorded yet.
func (s *Store) Load(key string) (Stats, bool, error) {
	var stats Stats
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	})
	if err != nil {
		return Stats{}, false, fmt.Errorf("cache: load %s: %w", key, err)
	}
	return stats, found, nil
}

// Save records stats under key, overwriting whatever was there, only
// if the new run is an improvement (solved beats unsolved, and a
// deeper best_depth beats a shallower one for unsolved runs).
func (s *Store) Save(key string, stats Stats) error {
	prev, found, err := s.Load(key)
	if err != nil {
		return err
	}
	if found {
		stats.RunCount = prev.RunCount + 1
		if !shouldReplace(prev, stats) {
			stats.Schedule = prev.Schedule
			stats.Solved = prev.Solved
			stats.BestDepth = prev.BestDepth
			stats.Steps = prev.Steps
		}
	} else {
		stats.RunCount = 1
	}

	buf, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("cache: marshal stats: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf)
	})
	if err != nil {
		return fmt.Errorf("cache: save %s: %w", key, err)
	}
	return nil
}

func shouldReplace(prev, next Stats) bool {
	if next.Solved != prev.Solved {
		return next.Solved
	}
	return next.BestDepth > prev.BestDepth
}
