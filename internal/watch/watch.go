/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package watch reports edits to content files, one notification per burst of writes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	applog "kinzaquest/internal/log"
)

// DefaultDebounce is the quiet period after the last write before a change is reported.
const DefaultDebounce = 300 * time.Millisecond

// Change is a settled edit of one file.
type Change struct {
	Path    string
	Removed bool
}

// Watcher watches directory trees for files with a given extension.
type Watcher struct {
	fsw      *fsnotify.Watcher
	ext      string
	debounce time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New watches every directory below the roots for files ending in ext.
// A zero debounce uses DefaultDebounce.
func New(ext string, debounce time.Duration, roots ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fsw:      fsw,
		ext:      ext,
		debounce: debounce,
		log:      applog.WithComponent("watch"),
		timers:   map[string]*time.Timer{},
	}
	for _, root := range roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.log.Debug("watching", slog.String("dir", path))
		return nil
	})
}

// Run delivers settled changes to fn until ctx is done. fn runs on timer
// goroutines but never concurrently with itself.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	defer w.stopTimers()
	defer w.fsw.Close()
	var fnMu sync.Mutex
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.log.Warn("watch new directory", slog.String("dir", ev.Name), slog.Any("err", err))
					}
					continue
				}
			}
			if !strings.HasSuffix(ev.Name, w.ext) {
				continue
			}
			var removed bool
			switch {
			case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
			case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
				removed = true
			default:
				continue
			}
			c := Change{Path: ev.Name, Removed: removed}
			w.schedule(c, func() {
				if ctx.Err() != nil {
					return
				}
				fnMu.Lock()
				defer fnMu.Unlock()
				fn(c)
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", slog.Any("err", err))
		}
	}
}

// schedule restarts the debounce timer of c.Path.
func (w *Watcher) schedule(c Change, fire func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[c.Path]; ok {
		t.Stop()
	}
	w.timers[c.Path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, c.Path)
		w.mu.Unlock()
		fire()
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
}
