/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAssets(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

const sampleConfig = `
[world]
width = 20
height = 10
tile_size = 32

[player]
speed = 6

[ui]
dialogue_bg = "#000"
`

const sampleEvents = `
[[events]]
x = 3
y = 4
emoji = "🌸"
particles = "petals"
dialogue = [
  "[effect:emoji=🌸,in=screen]",
  "Kinza: Look at the flowers!",
]

[[events]]
x = 7
y = 2
triggers_minigame = "lantern"
dialogue = ["Narrator: The lanterns glow."]
`

func TestLoadAssets(t *testing.T) {
	root := writeAssets(t, map[string]string{
		ConfigFile:    sampleConfig,
		EventsFile:    sampleEvents,
		ParticlesFile: "[petals]\ncount = 3\n",
		LayoutFile:    "rows = [\"gww\"]\nbogus line\n",
	})

	a, err := LoadAssets(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, root, a.Root)
	assert.Len(t, a.Events.Tables("events"), 2)
	assert.NotNil(t, a.Animations, "missing optional file becomes an empty document")
	assert.Empty(t, a.Animations)
	assert.NotNil(t, a.Effects)
	require.Contains(t, a.Skips, LayoutFile)
	assert.Equal(t, 2, a.Skips[LayoutFile][0].Line)
	assert.NotContains(t, a.Skips, ConfigFile)
	assert.True(t, Exists(root))
}

func TestLoadAssetsRequiresEvents(t *testing.T) {
	root := writeAssets(t, map[string]string{ConfigFile: sampleConfig})
	_, err := LoadAssets(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), EventsFile)
	assert.False(t, Exists(root))
}

func TestLoadAssetsCancelled(t *testing.T) {
	root := writeAssets(t, map[string]string{ConfigFile: sampleConfig, EventsFile: sampleEvents})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAssets(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
