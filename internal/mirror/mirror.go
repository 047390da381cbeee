// Package mirror keeps a local read-through copy of the authoritative
// collections in a Badger database. The planner replaces a mirrored
// collection wholesale after every successful apply and on every remote
// change notification; readers only ever see complete snapshots.
package mirror

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps the Badger database backing the mirrored collections.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	done   chan struct{}
}

// Open creates or opens the mirror database at the given path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logger is too chatty; we log at the store level.

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open mirror db: %w", err)
	}

	s := &Store{db: db, logger: logger, done: make(chan struct{})}
	go s.runGC()
	return s, nil
}

// Close stops background maintenance and closes the underlying database.
func (s *Store) Close() error {
	close(s.done)
	return s.db.Close()
}

// runGC periodically runs Badger value log garbage collection.
func (s *Store) runGC() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
				s.logger.Warn("mirror value log GC failed", slog.String("error", err.Error()))
			}
		case <-s.done:
			return
		}
	}
}
