/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"kinzaquest/internal/effect"
	"kinzaquest/internal/game"
	applog "kinzaquest/internal/log"
	"kinzaquest/internal/storage"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		slot  int
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "play [assets-dir]",
		Short: "Play the event story in the terminal",
		Long: `Play the events of an assets directory in order. Progress is saved per
slot and resumed on the next run.

Input, one command per line:
  (empty)     interact: start or advance the dialogue
  w a s d     walk one tile
  go          walk to the next event
  q           quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Game.AssetsDir
			if len(args) == 1 {
				root = args[0]
			}
			if !cmd.Flags().Changed("slot") {
				slot = a.cfg.Game.SaveSlot
			}
			dir, err := a.cfg.SaveDir()
			if err != nil {
				return err
			}
			return play(cmd.Context(), a, playOptions{
				assets:  root,
				saveDir: dir,
				slot:    slot,
				reset:   reset,
				in:      cmd.InOrStdin(),
				out:     cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().IntVar(&slot, "slot", 1, "save slot")
	cmd.Flags().BoolVar(&reset, "reset", false, "start the slot over")
	return cmd
}

type playOptions struct {
	assets  string
	saveDir string
	slot    int
	reset   bool
	in      io.Reader
	out     io.Writer
}

func play(ctx context.Context, a *app, o playOptions) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "play").With(slog.Int("slot", o.slot))

	assets, err := game.LoadAssets(ctx, o.assets)
	if err != nil {
		return err
	}
	cfg := game.BuildConfig(assets.Config)
	events := game.BuildEvents(assets.Events)
	world := game.BuildWorld(assets.Layout, cfg)
	particles := game.LoadParticles(assets.Particles)
	planner := effect.Planner{
		Places:     effect.LoadPlaceConfigs(assets.Effects),
		Animations: effect.LoadAnimations(assets.Animations),
	}

	store, recovered, err := storage.OpenOrRecover(ctx, o.saveDir)
	if err != nil {
		return err
	}
	defer store.Close()
	if recovered {
		_, _ = fmt.Fprintln(o.out, "Save data was damaged and has been reset.")
	}
	if o.reset {
		if err := store.ResetProgress(ctx, o.slot); err != nil {
			return err
		}
	}
	start, err := store.LoadProgress(ctx, o.slot)
	if err != nil {
		return err
	}

	out := o.out
	minigames := game.Minigames{}
	for id, def := range cfg.Minigames {
		title := def.String("title", id)
		minigames[id] = func() error {
			_, _ = fmt.Fprintf(out, "🎮 minigame unlocked: %s\n", title)
			return nil
		}
	}

	var runID string
	director := game.NewDirector(events, newCuePrinter(out, planner), newBoxPresenter(out, cfg.UI), game.Hooks{
		Launcher: minigames,
		Spawn: func(ev game.Event) {
			if b, ok := particles.Burst(ev, cfg.TileSize); ok {
				_, _ = fmt.Fprintf(out, "✧ %s ×%d at (%d,%d)\n", b.Def.Name, b.Def.Count, ev.X, ev.Y)
			}
		},
		OnEventStart: func(i int, ev game.Event) {
			id, err := store.StartRun(ctx, o.slot, i, ev.TriggersMinigame)
			if err != nil {
				l.Warn("record run start failed", slog.Any("err", err))
			}
			runID = id
		},
		OnEventComplete: func(_, next int) {
			if runID != "" {
				if err := store.CompleteRun(ctx, runID); err != nil {
					l.Warn("record run completion failed", slog.Any("err", err))
				}
				runID = ""
			}
			if err := store.SaveProgress(ctx, o.slot, next); err != nil {
				l.Error("save progress failed", slog.Any("err", err))
			}
		},
	})
	a.saveHook = func() error { return store.SaveProgress(context.Background(), o.slot, director.Index()) }
	defer func() { a.saveHook = nil }()

	director.Resume(start)
	player := game.NewPlayer(min(14, world.Width-1), min(10, world.Height-1), cfg.TileSize)
	l.Info("play started", slog.Int("event", director.Index()), slog.Int("events", len(events)))
	_, _ = fmt.Fprintf(out, "%s Kinza 2026 %s  (event %d of %d)\n", cfg.UI.TitleHearts, cfg.UI.TitleHearts, director.Index()+1, len(events))

	sc := bufio.NewScanner(o.in)
	for !director.Finished() {
		if err := ctx.Err(); err != nil {
			break
		}
		if !sc.Scan() {
			break
		}
		switch cmd := strings.ToLower(strings.TrimSpace(sc.Text())); cmd {
		case "q", "quit":
			return a.flush()
		case "w", "a", "s", "d":
			if director.Session().Active() {
				continue
			}
			dx, dy := step(cmd, float64(cfg.TileSize))
			if !world.Move(&player, dx, dy) {
				_, _ = fmt.Fprintln(out, "Something blocks the way.")
			}
		case "go":
			if ev, ok := director.Current(); ok && !director.Session().Active() {
				player = game.NewPlayer(ev.X, ev.Y, cfg.TileSize)
				player.X, player.Y = player.X+2, player.Y+2
				_, _ = fmt.Fprintf(out, "You walk to %s at (%d,%d).\n", ev.Emoji, ev.X, ev.Y)
			}
		case "":
			ev, _ := director.Current()
			px, py := player.Centre()
			if !director.Interact(ev.Overlaps(px, py, cfg.TileSize, cfg.CharacterScale)) {
				_, _ = fmt.Fprintf(out, "Nothing here. The next event %s is at (%d,%d).\n", ev.Emoji, ev.X, ev.Y)
			}
		default:
			_, _ = fmt.Fprintf(out, "Unknown command %q.\n", cmd)
		}
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}
	if director.Finished() {
		_, _ = fmt.Fprintf(out, "%s The end. %s\n", cfg.UI.TitleHearts, cfg.UI.TitleHearts)
	}
	return a.flush()
}

func step(dir string, tile float64) (float64, float64) {
	switch dir {
	case "w":
		return 0, -tile
	case "s":
		return 0, tile
	case "a":
		return -tile, 0
	default:
		return tile, 0
	}
}
