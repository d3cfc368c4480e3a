/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"kinzaquest/internal/config"
	"kinzaquest/internal/game"
	"kinzaquest/internal/storage"
)

const storyConfig = `
[world]
width = 10
height = 6
tile_size = 40

[minigames.lantern]
title = "Lantern Festival"
`

const storyEvents = `
[[events]]
x = 2
y = 2
emoji = "🌸"
particles = "petals"
dialogue = [
  "[effect:emoji=🌸,in=screen;player]",
  "Kinza: Look at the blossoms!",
  "They drift down slowly.",
]

[[events]]
x = 5
y = 3
triggers_minigame = "lantern"
dialogue = ["Narrator: The lanterns are waiting."]
`

func writeStory(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		game.ConfigFile:     storyConfig,
		game.EventsFile:     storyEvents,
		game.ParticlesFile:  "[petals]\ncount = 4\n",
		game.AnimationsFile: "[pop-up]\nscale_start = 0.2\n",
	}
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Dir = t.TempDir()
	return &app{cfg: cfg}
}

func execute(t *testing.T, a *app, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, testApp(t), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Kinza Quest")
}

func TestRootCommandMetadata(t *testing.T) {
	cmd := newRootCmd(testApp(t))
	assert.Equal(t, "kinzaquest", cmd.Use)
	for _, name := range []string{"version", "parse", "classify", "play", "watch"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
		assert.NotEmpty(t, sub.Short, "%s needs a short description", name)
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
}

func TestParseCommandYAML(t *testing.T) {
	root := writeStory(t)
	out, errOut, err := execute(t, testApp(t), "", "parse", filepath.Join(root, game.EventsFile))
	require.NoError(t, err)
	assert.Empty(t, errOut)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	events, ok := got["events"].([]any)
	require.True(t, ok, "events should be a list: %s", out)
	assert.Len(t, events, 2)
}

func TestParseCommandJSONReportsSkips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = \"kinza\"\nnot an assignment\n"), 0o644))

	out, errOut, err := execute(t, testApp(t), "", "parse", "--format", "json", path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "kinza", got["name"])
	assert.Contains(t, errOut, "line 2: no assignment")

	_, _, err = execute(t, testApp(t), "", "parse", "--strict", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 line(s) skipped")
}

func TestParseCommandErrors(t *testing.T) {
	_, _, err := execute(t, testApp(t), "", "parse", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "a.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))
	_, _, err = execute(t, testApp(t), "", "parse", "--format", "xml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestClassifyScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.txt")
	body := "Kinza: Hi!\n\n[effect:emoji=❤️,in=player:scale=2,duration=1]\nA quiet moment.\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, _, err := execute(t, testApp(t), "", "classify", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "   1  speech  Kinza | Hi!", lines[0])
	assert.Equal(t, "   3  effect  in=player(scale=2) duration=1 emoji=❤️", lines[1])
	assert.Equal(t, "   4  speech  - | A quiet moment.", lines[2])
}

func TestClassifyEvents(t *testing.T) {
	root := writeStory(t)
	out, _, err := execute(t, testApp(t), "", "classify", filepath.Join(root, game.EventsFile))
	require.NoError(t, err)
	assert.Contains(t, out, "# event 0 (2,2) 🌸")
	assert.Contains(t, out, "   1  effect  in=screen;player duration=0.5 emoji=🌸")
	assert.Contains(t, out, "# event 1 (5,3) ❓")
	assert.Contains(t, out, "   1  speech  Narrator | The lanterns are waiting.")
}

func TestPlayThroughStory(t *testing.T) {
	root := writeStory(t)
	a := testApp(t)

	// event 0: walk there, open, advance twice; event 1: walk there, open, close
	input := "\ngo\n\n\n\ngo\n\n\n"
	out, _, err := execute(t, a, input, "play", root, "--slot", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "(event 1 of 2)")
	assert.Contains(t, out, "Nothing here.")
	assert.Contains(t, out, "✧ petals ×4 at (2,2)")
	assert.Contains(t, out, "✦ screen-emoji 🌸 [pop-up 0.5s]")
	assert.Contains(t, out, "✦ player-emoji 🌸")
	assert.Contains(t, out, "Look at the blossoms!")
	assert.Contains(t, out, "They drift down slowly.")
	assert.Contains(t, out, "🎮 minigame unlocked: Lantern Festival")
	assert.Contains(t, out, "The end.")
	assert.Nil(t, a.saveHook, "save hook is cleared after play")

	dir, err := a.cfg.SaveDir()
	require.NoError(t, err)
	s, err := storage.Open(dir)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()
	idx, err := s.LoadProgress(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Done())
	assert.Equal(t, "lantern", runs[1].Minigame)
}

func TestPlayResumesAndQuits(t *testing.T) {
	root := writeStory(t)
	a := testApp(t)

	// finish the first event then quit
	_, _, err := execute(t, a, "go\n\n\n\nq\n", "play", root)
	require.NoError(t, err)

	out, _, err := execute(t, a, "q\n", "play", root)
	require.NoError(t, err)
	assert.Contains(t, out, "(event 2 of 2)")

	out, _, err = execute(t, a, "q\n", "play", root, "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "(event 1 of 2)")
}

func TestPlayMovement(t *testing.T) {
	root := writeStory(t)
	// the 10x6 world puts the player on the last column, so moving right is blocked
	out, _, err := execute(t, testApp(t), "d\nq\n", "play", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Something blocks the way.")

	out, _, err = execute(t, testApp(t), "jump\nq\n", "play", root)
	require.NoError(t, err)
	assert.Contains(t, out, `Unknown command "jump".`)
}

// syncBuffer is written from watcher timers and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchAssetsReportsChanges(t *testing.T) {
	root := writeStory(t)
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchAssets(ctx, root, 50*time.Millisecond, out) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "watching") }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "config/events.toml: ok")
	assert.Contains(t, out.String(), "world/layout.toml: missing")

	require.NoError(t, os.WriteFile(filepath.Join(root, game.EventsFile), []byte("oops\n"), 0o644))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "config/events.toml: 1 skipped")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
