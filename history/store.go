// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/store.go
// Summary: SQLite-backed visited-page history with async batch writes.

package history

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is one recorded page load.
type Visit struct {
	URL         string
	ContentType string
	When        time.Time
}

// StoreConfig holds tuning for the history store.
type StoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BatchSize is the number of visits accumulated before a flush.
	// Default: 32.
	BatchSize int

	// BatchTimeout is how long a partial batch may sit before flushing.
	// Default: 2s.
	BatchTimeout time.Duration

	// ChannelBuffer sizes the async recording channel. Default: 256.
	ChannelBuffer int
}

// DefaultStoreConfig returns sensible defaults.
func DefaultStoreConfig(dbPath string) StoreConfig {
	return StoreConfig{
		DBPath:        dbPath,
		BatchSize:     32,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 256,
	}
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    content_type TEXT NOT NULL DEFAULT '',
    visited_at INTEGER NOT NULL      -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_visits_time ON visits(visited_at);
CREATE INDEX IF NOT EXISTS idx_visits_url ON visits(url);
`

// Store records page visits asynchronously and serves recency queries.
type Store struct {
	config StoreConfig
	db     *sql.DB

	recordCh chan Visit
	flushCh  chan chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Open creates or opens the history database and starts the batch writer.
func Open(dbPath string) (*Store, error) {
	return OpenWithConfig(DefaultStoreConfig(dbPath))
}

// OpenWithConfig opens a store with custom tuning.
func OpenWithConfig(config StoreConfig) (*Store, error) {
	if config.BatchSize <= 0 {
		config.BatchSize = 32
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = 2 * time.Second
	}
	if config.ChannelBuffer <= 0 {
		config.ChannelBuffer = 256
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to history database: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	s := &Store{
		config:   config,
		db:       db,
		recordCh: make(chan Visit, config.ChannelBuffer),
		flushCh:  make(chan chan struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go s.batchWriter()
	return s, nil
}

// Record queues a visit. Never blocks; when the queue is full the visit is
// dropped, history being best-effort.
func (s *Store) Record(url, contentType string) {
	if url == "" {
		return
	}
	v := Visit{URL: url, ContentType: contentType, When: time.Now()}
	select {
	case s.recordCh <- v:
	default:
		log.Printf("History: queue full, dropping visit %s", url)
	}
}

// Recent returns up to limit visits, newest first.
func (s *Store) Recent(limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		"SELECT url, content_type, visited_at FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ns int64
		if err := rows.Scan(&v.URL, &v.ContentType, &ns); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.When = time.Unix(0, ns)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Flush blocks until every queued visit has been written.
func (s *Store) Flush() {
	done := make(chan struct{})
	select {
	case s.flushCh <- done:
		<-done
	case <-s.doneCh:
	}
}

// Close flushes pending visits and closes the database.
func (s *Store) Close() error {
	close(s.stopCh)
	<-s.doneCh
	return s.db.Close()
}

// batchWriter accumulates visits and writes them in transactions.
func (s *Store) batchWriter() {
	defer close(s.doneCh)

	batch := make([]Visit, 0, s.config.BatchSize)
	timer := time.NewTimer(s.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case v := <-s.recordCh:
			batch = append(batch, v)
			if len(batch) >= s.config.BatchSize {
				flush()
				timer.Reset(s.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(s.config.BatchTimeout)

		case done := <-s.flushCh:
			draining := true
			for draining {
				select {
				case v := <-s.recordCh:
					batch = append(batch, v)
				default:
					draining = false
				}
			}
			flush()
			close(done)

		case <-s.stopCh:
			for {
				select {
				case v := <-s.recordCh:
					batch = append(batch, v)
				default:
					flush()
					return
				}
			}
		}
	}
}

// writeBatch stores one batch in a single transaction.
func (s *Store) writeBatch(batch []Visit) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("History: begin transaction: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT INTO visits (url, content_type, visited_at) VALUES (?, ?, ?)")
	if err != nil {
		log.Printf("History: prepare insert: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, v := range batch {
		if _, err := stmt.Exec(v.URL, v.ContentType, v.When.UnixNano()); err != nil {
			log.Printf("History: insert %s: %v", v.URL, err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("History: commit batch: %v", err)
	}
}
