/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kinzaquest/internal/tomlcfg"
)

func testWorld(t *testing.T) *World {
	t.Helper()
	cfg := BuildConfig(tomlcfg.Document{"decorations": tomlcfg.Document{"rock": "🪨"}})
	layout, skips := tomlcfg.Parse(`
width = 5
height = 4
rows = [
  "ggwgg",
  "gsgxg",
  "ggggg",
]

[[decorations]]
type = "rock"
x = 4
y = 3
collision = true

[[decorations]]
emoji = "🌳"
x = 0
y = 0
scale = 3
collision = true
collision_scale = 0.5

[[decorations]]
x = 1
y = 1
`)
	require.Empty(t, skips)
	return BuildWorld(layout, cfg)
}

func TestBuildWorldTerrain(t *testing.T) {
	w := testWorld(t)
	require.Equal(t, 5, w.Width)
	require.Equal(t, 4, w.Height)
	assert.Equal(t, "water", w.Terrain[0][2])
	assert.Equal(t, "sand", w.Terrain[1][1])
	assert.Equal(t, "grass", w.Terrain[1][3], "unknown characters are grass")
	assert.Equal(t, "grass", w.Terrain[3][0], "missing rows are grass")
}

func TestBuildWorldDecorations(t *testing.T) {
	w := testWorld(t)
	require.Len(t, w.Decorations, 2, "a decoration without emoji or type is dropped")
	assert.Equal(t, "🪨", w.Decorations[0].Emoji)
	assert.True(t, w.Decorations[0].Wind)
	assert.Equal(t, 0.5, w.Decorations[1].CollisionScale)
}

func TestWorldBlocked(t *testing.T) {
	w := testWorld(t)
	assert.True(t, w.Blocked(2, 0), "water")
	assert.True(t, w.Blocked(4, 3), "collidable decoration")
	assert.True(t, w.Blocked(0, 0), "tree covers its own tile")
	assert.False(t, w.Blocked(1, 0), "tree collision footprint is floor(0.5*3*0.5)=0")
	assert.True(t, w.Blocked(-1, 0))
	assert.True(t, w.Blocked(5, 0))
	assert.False(t, w.Blocked(1, 2))
}

func TestWorldMoveSlidesAlongWalls(t *testing.T) {
	w := testWorld(t)
	p := NewPlayer(1, 0, 40)
	assert.Equal(t, Player{X: 40, Y: 0, W: 36, H: 36}, p)

	// moving right runs into the water at x=2, moving down is free
	assert.True(t, w.Move(&p, 10, 10))
	assert.Equal(t, 40.0, p.X)
	assert.Equal(t, 10.0, p.Y)

	cx, cy := p.Centre()
	assert.Equal(t, 58.0, cx)
	assert.Equal(t, 28.0, cy)

	assert.False(t, w.Move(&p, 0, -20), "the top edge is blocked")
}

func TestParticles(t *testing.T) {
	doc, _ := tomlcfg.Parse(`
[petals]
count = 3
color = "#f0f"
speed_min = 0.1
speed_max = 0.5

[sparkle]
emoji = "✨"
count = 0
size_min = 2
`)
	ps := LoadParticles(doc)
	require.Len(t, ps, 2)

	petals := ps["petals"]
	assert.Equal(t, 3, petals.Count)
	assert.Equal(t, []string{"#f0f", "#fff"}, petals.Colors)
	assert.Equal(t, 0.1, petals.SpeedMin)
	assert.Equal(t, 0.5, petals.SpeedMax)
	assert.Equal(t, "float", petals.Style)
	assert.Equal(t, 2.0, petals.Lifetime)

	sparkle := ps["sparkle"]
	assert.Equal(t, 6, sparkle.Count)
	assert.Equal(t, 4.0, sparkle.SizeMin, "size range needs both ends")

	b, ok := ps.Burst(Event{X: 1, Y: 2, Particles: "petals"}, 40)
	require.True(t, ok)
	assert.Equal(t, 60.0, b.X)
	assert.Equal(t, 100.0, b.Y)
	_, ok = ps.Burst(Event{Particles: "missing"}, 40)
	assert.False(t, ok)
	_, ok = ps.Burst(Event{}, 40)
	assert.False(t, ok)
}
