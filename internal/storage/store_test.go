/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestOpenCreatesSchema(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saves")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
	ctx := context.Background()
	var schema int
	if err := s.DB().QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
	var mode string
	if err := s.DB().QueryRowContext(ctx, `PRAGMA journal_mode;`).Scan(&mode); err != nil || mode != "wal" {
		t.Fatalf("journal_mode = %q (%v), want wal", mode, err)
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for blank dir")
	}
}

// TestMigrations_UpgradeV1ToV2 ensures that a schema=1 database gains the minigame column and index.
func TestMigrations_UpgradeV1ToV2(t *testing.T) {
	dir := t.TempDir()
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)", filepath.ToSlash(Path(dir)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);`,
		`CREATE TABLE version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO version(id, schema, app, created_at, updated_at) VALUES(1, 1, 'test', '2020-01-01T00:00:00Z', '2020-01-01T00:00:00Z');`,
		`CREATE TABLE progress (slot INTEGER PRIMARY KEY, event_index INTEGER NOT NULL, updated_at TEXT NOT NULL);`,
		`CREATE TABLE runs (id TEXT PRIMARY KEY, slot INTEGER NOT NULL, event_index INTEGER NOT NULL, started_at TEXT NOT NULL, completed_at TEXT);`,
		`INSERT INTO runs(id, slot, event_index, started_at) VALUES('old', 1, 0, '2020-01-01T00:00:00Z');`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed v1 schema: %v (q=%s)", err, q)
		}
	}
	db.Close()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	var schema int
	if err := s.DB().QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if schema != 2 {
		t.Fatalf("expected schema 2 after migration, got %d", schema)
	}
	var cnt int
	if err := s.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_runs_slot_started'`).Scan(&cnt); err != nil || cnt != 1 {
		t.Fatalf("expected runs index after migration, got %d (%v)", cnt, err)
	}
	runs, err := s.Runs(ctx, 1)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "old" || runs[0].Minigame != "" {
		t.Fatalf("unexpected migrated runs: %+v", runs)
	}
}

func TestOpenOrRecover_OnCorruption(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("THIS IS NOT SQLITE"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, reset, err := OpenOrRecover(ctx, dir)
	if err != nil {
		t.Fatalf("OpenOrRecover: %v", err)
	}
	defer s.Close()
	if !reset {
		t.Fatalf("expected a reset")
	}
	if err := s.SaveProgress(ctx, 1, 2); err != nil {
		t.Fatalf("store not usable after reset: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "backups", FileName+".*.bak"))
	if len(matches) == 0 {
		t.Fatalf("expected a backup file")
	}
}

func TestOpenOrRecover_Healthy(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
	s, reset, err := OpenOrRecover(context.Background(), dir)
	if err != nil {
		t.Fatalf("OpenOrRecover: %v", err)
	}
	defer s.Close()
	if reset {
		t.Fatalf("healthy database must not be reset")
	}
}
