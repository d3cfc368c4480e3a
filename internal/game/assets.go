/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package game turns the TOML content files into the world the dialogue runs in:
// world settings, the ordered event list, the tile map and particle bursts. The
// Director drives events through a dialogue.Session.
package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	applog "kinzaquest/internal/log"
	"kinzaquest/internal/tomlcfg"
)

// Content file locations relative to the assets root.
const (
	ConfigFile     = "config/config.toml"
	EventsFile     = "config/events.toml"
	AnimationsFile = "config/animations.toml"
	EffectsFile    = "config/effects.toml"
	ParticlesFile  = "config/particles.toml"
	LayoutFile     = "world/layout.toml"
)

// Files lists every content file LoadAssets reads.
var Files = []string{ConfigFile, EventsFile, AnimationsFile, EffectsFile, ParticlesFile, LayoutFile}

// required files make LoadAssets fail when missing.
var required = map[string]bool{ConfigFile: true, EventsFile: true}

// Assets holds the parsed content documents of one assets root.
type Assets struct {
	Root       string
	Config     tomlcfg.Document
	Events     tomlcfg.Document
	Animations tomlcfg.Document
	Effects    tomlcfg.Document
	Particles  tomlcfg.Document
	Layout     tomlcfg.Document
	// Skips per relative file name; files without skips are absent.
	Skips map[string][]tomlcfg.Skip
}

// LoadAssets parses the content files under root concurrently.
// config.toml and events.toml must exist; the others default to empty documents.
func LoadAssets(ctx context.Context, root string) (*Assets, error) {
	l := applog.WithOperation(applog.WithComponent("game"), "load_assets").With(slog.String("root", root))

	docs := make([]tomlcfg.Document, len(Files))
	skips := make([][]tomlcfg.Skip, len(Files))
	g, ctx := errgroup.WithContext(ctx)
	for i, rel := range Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, sk, err := tomlcfg.ParseFile(filepath.Join(root, filepath.FromSlash(rel)))
			switch {
			case errors.Is(err, fs.ErrNotExist) && !required[rel]:
				l.Debug("optional file missing", slog.String("file", rel))
				doc = tomlcfg.Document{}
			case err != nil:
				return fmt.Errorf("load %s: %w", rel, err)
			}
			docs[i], skips[i] = doc, sk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.Error("load assets failed", slog.Any("err", err))
		return nil, err
	}

	a := &Assets{
		Root:       root,
		Config:     docs[0],
		Events:     docs[1],
		Animations: docs[2],
		Effects:    docs[3],
		Particles:  docs[4],
		Layout:     docs[5],
		Skips:      map[string][]tomlcfg.Skip{},
	}
	for i, rel := range Files {
		if len(skips[i]) == 0 {
			continue
		}
		a.Skips[rel] = skips[i]
		for _, s := range skips[i] {
			l.Warn("line skipped", slog.String("file", rel), slog.Int("line", s.Line), slog.String("reason", s.Reason.String()))
		}
	}
	l.Info("assets loaded", slog.Int("files", len(Files)))
	return a, nil
}

// Exists reports whether root looks like an assets directory.
func Exists(root string) bool {
	for rel := range required {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			return false
		}
	}
	return true
}
