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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when completing a run id that was never started.
var ErrRunNotFound = errors.New("run not found")

// Run is one started event dialogue.
type Run struct {
	ID          string
	Slot        int
	EventIndex  int
	Minigame    string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Done reports whether the run reached its completion callback.
func (r Run) Done() bool { return r.CompletedAt != nil }

// SaveProgress records the next event index for slot.
func (s *Store) SaveProgress(ctx context.Context, slot, eventIndex int) error {
	if eventIndex < 0 {
		return fmt.Errorf("event index %d out of range", eventIndex)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `INSERT INTO progress (slot, event_index, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET event_index=excluded.event_index, updated_at=excluded.updated_at`,
		slot, eventIndex, now)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	s.log.Debug("progress saved", slog.Int("slot", slot), slog.Int("event", eventIndex))
	return nil
}

// LoadProgress returns the saved event index for slot, or 0 for a fresh slot.
func (s *Store) LoadProgress(ctx context.Context, slot int) (int, error) {
	var idx int
	err := s.db.QueryRowContext(ctx, `SELECT event_index FROM progress WHERE slot=?`, slot).Scan(&idx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("load progress: %w", err)
	}
	return idx, nil
}

// ResetProgress forgets slot and its run history.
func (s *Store) ResetProgress(ctx context.Context, slot int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	for _, q := range []string{`DELETE FROM progress WHERE slot=?`, `DELETE FROM runs WHERE slot=?`} {
		if _, err := tx.ExecContext(ctx, q, slot); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("reset slot %d: %w", slot, err)
		}
	}
	return tx.Commit()
}

// StartRun records that the dialogue of an event began and returns the run id.
func (s *Store) StartRun(ctx context.Context, slot, eventIndex int, minigame string) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO runs (id, slot, event_index, minigame, started_at) VALUES(?, ?, ?, ?, ?)`,
		id, slot, eventIndex, minigame, now); err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// CompleteRun stamps the completion time of a run. Completing twice keeps the first stamp.
func (s *Store) CompleteRun(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET completed_at=COALESCE(completed_at, ?) WHERE id=?`, now, id)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// Runs lists the runs of slot, oldest first.
func (s *Store) Runs(ctx context.Context, slot int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, slot, event_index, minigame, started_at, completed_at
		FROM runs WHERE slot=? ORDER BY started_at, rowid`, slot)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var (
			r         Run
			started   string
			completed sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Slot, &r.EventIndex, &r.Minigame, &started, &completed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			r.StartedAt = t
		}
		if completed.Valid {
			if t, err := time.Parse(time.RFC3339Nano, completed.String); err == nil {
				r.CompletedAt = &t
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
