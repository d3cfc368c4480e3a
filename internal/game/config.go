/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"slices"

	"kinzaquest/internal/tomlcfg"
)

// Tile is the look of one terrain kind.
type Tile struct {
	Color string
	Emoji string
}

// UI holds the dialogue box colours and the title decoration.
type UI struct {
	DialogueBg     string
	DialogueBorder string
	DialogueText   string
	TitleHearts    string
}

// Config is the world configuration from config.toml.
type Config struct {
	WorldWidth          int
	WorldHeight         int
	TileSize            int
	PlayerSpeed         float64
	BlockedTiles        []string
	Tiles               map[string]Tile
	Decorations         map[string]string // decoration type -> emoji
	PlayerSpriteURL     string
	FinalEventSpriteURL string
	CharacterScale      float64
	Minigames           map[string]tomlcfg.Document
	UI                  UI
}

// BuildConfig reads config.toml. Missing, zero or non-numeric values take the defaults:
// a 40x30 world of 40px tiles, speed 4, water blocked, character scale 1.
func BuildConfig(doc tomlcfg.Document) Config {
	world, _ := doc.Table("world")
	player, _ := doc.Table("player")
	final, _ := doc.Table("final_event")
	sprites, _ := doc.Table("sprites")
	ui, _ := doc.Table("ui")
	blocked, _ := doc.Table("blocked_tiles")

	cfg := Config{
		WorldWidth:          positiveInt(world, "width", 40),
		WorldHeight:         positiveInt(world, "height", 30),
		TileSize:            positiveInt(world, "tile_size", 40),
		PlayerSpeed:         positiveFloat(player, "speed", 4),
		BlockedTiles:        blocked.Strings("list"),
		Tiles:               map[string]Tile{},
		Decorations:         map[string]string{},
		PlayerSpriteURL:     player.String("sprite_url", ""),
		FinalEventSpriteURL: final.String("sprite_url", ""),
		CharacterScale:      sprites.Float("character_scale", 1),
		Minigames:           map[string]tomlcfg.Document{},
		UI: UI{
			DialogueBg:     nonEmpty(ui.String("dialogue_bg", ""), "#fff5f8"),
			DialogueBorder: nonEmpty(ui.String("dialogue_border", ""), "#c41e3a"),
			DialogueText:   nonEmpty(ui.String("dialogue_text", ""), "#2d1519"),
			TitleHearts:    nonEmpty(ui.String("title_hearts", ""), "❤️"),
		},
	}
	if len(cfg.BlockedTiles) == 0 {
		cfg.BlockedTiles = []string{"water"}
	}
	if tiles, ok := doc.Table("tiles"); ok {
		for name := range tiles {
			t, _ := tiles.Table(name)
			cfg.Tiles[name] = Tile{
				Color: nonEmpty(t.String("color", ""), "#333"),
				Emoji: t.String("emoji", ""),
			}
		}
	}
	if decs, ok := doc.Table("decorations"); ok {
		for name := range decs {
			if s := decs.String(name, ""); s != "" {
				cfg.Decorations[name] = s
			}
		}
	}
	if games, ok := doc.Table("minigames"); ok {
		for id := range games {
			if t, ok := games.Table(id); ok {
				cfg.Minigames[id] = t
			}
		}
	}
	return cfg
}

// IsBlockedTerrain reports whether the terrain kind stops the player.
func (c Config) IsBlockedTerrain(kind string) bool {
	return slices.Contains(c.BlockedTiles, kind)
}

func positiveInt(d tomlcfg.Document, key string, def int64) int {
	if v := d.Int(key, 0); v > 0 {
		return int(v)
	}
	return int(def)
}

func positiveFloat(d tomlcfg.Document, key string, def float64) float64 {
	if v := d.Float(key, 0); v > 0 {
		return v
	}
	return def
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
