// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/store_test.go
// Summary: Visit recording, batching, and recency queries.

package history_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/framegrace/texbrowse/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	s.Record("file:///tmp/a.html", "text/html")
	s.Record("https://example.com/doc.pdf", "application/pdf")
	s.Flush()

	visits, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	// Newest first.
	if visits[0].URL != "https://example.com/doc.pdf" {
		t.Fatalf("visits[0] = %q", visits[0].URL)
	}
	if visits[0].ContentType != "application/pdf" {
		t.Fatalf("content type = %q", visits[0].ContentType)
	}
	if visits[1].URL != "file:///tmp/a.html" {
		t.Fatalf("visits[1] = %q", visits[1].URL)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 10; i++ {
		s.Record(fmt.Sprintf("https://example.com/%d", i), "text/html")
	}
	s.Flush()

	visits, err := s.Recent(3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(visits))
	}
	if visits[0].URL != "https://example.com/9" {
		t.Fatalf("visits[0] = %q", visits[0].URL)
	}
}

func TestBatchSizeTriggersFlush(t *testing.T) {
	cfg := history.DefaultStoreConfig(filepath.Join(t.TempDir(), "history.db"))
	cfg.BatchSize = 2
	s, err := history.OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	s.Record("https://example.com/1", "text/html")
	s.Record("https://example.com/2", "text/html")
	s.Flush() // also drains anything still queued

	visits, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
}

func TestEmptyURLIgnored(t *testing.T) {
	s := openTestStore(t)
	s.Record("", "text/html")
	s.Flush()

	visits, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 0 {
		t.Fatalf("empty URL was recorded: %v", visits)
	}
}

func TestCloseFlushesAndPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.Record("https://example.com/kept", "text/html")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	visits, err := reopened.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(visits) != 1 || visits[0].URL != "https://example.com/kept" {
		t.Fatalf("visit lost across close: %v", visits)
	}
}
