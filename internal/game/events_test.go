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

	"kinzaquest/internal/script"
	"kinzaquest/internal/tomlcfg"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg := BuildConfig(tomlcfg.Document{})

	assert.Equal(t, 40, cfg.WorldWidth)
	assert.Equal(t, 30, cfg.WorldHeight)
	assert.Equal(t, 40, cfg.TileSize)
	assert.Equal(t, 4.0, cfg.PlayerSpeed)
	assert.Equal(t, []string{"water"}, cfg.BlockedTiles)
	assert.Equal(t, 1.0, cfg.CharacterScale)
	assert.Equal(t, UI{DialogueBg: "#fff5f8", DialogueBorder: "#c41e3a", DialogueText: "#2d1519", TitleHearts: "❤️"}, cfg.UI)
	assert.Empty(t, cfg.Tiles)
}

func TestBuildConfigFromDocument(t *testing.T) {
	doc, skips := tomlcfg.Parse(`
[world]
width = 0
tile_size = 32

[blocked_tiles]
list = ["water", "sand"]

[tiles.grass]
emoji = "🌿"

[tiles.water]
color = "#00f"

[decorations]
tree = "🌳"

[sprites]
character_scale = 1.5

[minigames.lantern]
title = "Lanterns"
`)
	require.Empty(t, skips)
	cfg := BuildConfig(doc)

	assert.Equal(t, 40, cfg.WorldWidth, "zero falls back to the default")
	assert.Equal(t, 32, cfg.TileSize)
	assert.Equal(t, []string{"water", "sand"}, cfg.BlockedTiles)
	assert.Equal(t, Tile{Color: "#333", Emoji: "🌿"}, cfg.Tiles["grass"])
	assert.Equal(t, Tile{Color: "#00f"}, cfg.Tiles["water"])
	assert.Equal(t, "🌳", cfg.Decorations["tree"])
	assert.Equal(t, 1.5, cfg.CharacterScale)
	assert.Equal(t, "Lanterns", cfg.Minigames["lantern"].String("title", ""))
	assert.True(t, cfg.IsBlockedTerrain("sand"))
	assert.False(t, cfg.IsBlockedTerrain("grass"))
}

func TestBuildEvents(t *testing.T) {
	doc, _ := tomlcfg.Parse(sampleEvents + `
[[events]]
x = 1
y = 1
particles = "  "
sprite_url = " img/final.png "
`)
	events := BuildEvents(doc)
	require.Len(t, events, 3)

	first := events[0]
	assert.Equal(t, 3, first.X)
	assert.Equal(t, 4, first.Y)
	assert.Equal(t, "🌸", first.Emoji)
	assert.Equal(t, "petals", first.Particles)
	require.Len(t, first.Dialogue, 2)
	assert.Equal(t, script.LineEffect, first.Dialogue[0].Type)
	assert.Equal(t, "Kinza", first.Dialogue[1].Speaker)

	assert.Equal(t, DefaultEventEmoji, events[1].Emoji)
	assert.Equal(t, "lantern", events[1].TriggersMinigame)

	assert.Empty(t, events[2].Particles)
	assert.Equal(t, "img/final.png", events[2].SpriteURL)
	assert.Empty(t, events[2].Dialogue)
}

func TestEventOverlaps(t *testing.T) {
	ev := Event{X: 2, Y: 3}
	// tile spans x 80..120, y 120..160
	assert.True(t, ev.Overlaps(100, 140, 40, 1))
	assert.True(t, ev.Overlaps(80, 160, 40, 1), "edges are inclusive")
	assert.False(t, ev.Overlaps(79, 140, 40, 1))
	// scale 2 pads by 20px on each side
	assert.True(t, ev.Overlaps(61, 101, 40, 2))
	assert.False(t, ev.Overlaps(59, 140, 40, 2))
	// scales below 1 never shrink the tile
	assert.True(t, ev.Overlaps(80, 120, 40, 0.5))
}

func TestFinalSprite(t *testing.T) {
	events := []Event{{}, {TriggersMinigame: "a", SpriteURL: "ev.png"}, {TriggersMinigame: "b", SpriteURL: "later.png"}}
	assert.Equal(t, "ev.png", FinalSprite(events, "cfg.png"))
	assert.Equal(t, "cfg.png", FinalSprite([]Event{{TriggersMinigame: "a"}}, " cfg.png "))
	assert.Equal(t, "", FinalSprite(nil, ""))
}
