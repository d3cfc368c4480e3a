/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"math"

	"kinzaquest/internal/tomlcfg"
)

var terrainByChar = map[byte]string{'g': "grass", 'w': "water", 'p': "pavement", 's': "sand"}

// Decoration is a placed emoji, optionally blocking the tiles it covers.
type Decoration struct {
	Emoji          string
	X, Y           int
	Scale          float64
	Collision      bool
	Wind           bool
	CollisionScale float64
}

// World is the tile map built from world/layout.toml.
type World struct {
	Width, Height int
	Terrain       [][]string // [y][x]
	Decorations   []Decoration

	cfg     Config
	blocked map[[2]int]bool
}

// BuildWorld reads the layout rows (one character per tile: g grass, w water,
// p pavement, s sand; anything else is grass) and the [[decorations]] list.
func BuildWorld(layout tomlcfg.Document, cfg Config) *World {
	w := &World{
		Width:   int(layout.Int("width", int64(cfg.WorldWidth))),
		Height:  int(layout.Int("height", int64(cfg.WorldHeight))),
		cfg:     cfg,
		blocked: map[[2]int]bool{},
	}
	if w.Width <= 0 {
		w.Width = cfg.WorldWidth
	}
	if w.Height <= 0 {
		w.Height = cfg.WorldHeight
	}
	rows := layout.Strings("rows")
	w.Terrain = make([][]string, w.Height)
	for y := range w.Height {
		var row string
		if y < len(rows) {
			row = rows[y]
		}
		w.Terrain[y] = make([]string, w.Width)
		for x := range w.Width {
			kind := "grass"
			if x < len(row) {
				if k, ok := terrainByChar[row[x]]; ok {
					kind = k
				}
			}
			w.Terrain[y][x] = kind
		}
	}

	for _, d := range layout.Tables("decorations") {
		emoji := d.String("emoji", "")
		if typ := d.String("type", ""); emoji == "" && typ != "" {
			emoji = nonEmpty(cfg.Decorations[typ], typ)
		}
		if emoji == "" {
			continue
		}
		dec := Decoration{
			Emoji:          emoji,
			X:              int(d.Int("x", 0)),
			Y:              int(d.Int("y", 0)),
			Scale:          d.Float("scale", 1),
			Collision:      d.Bool("collision", false),
			Wind:           d.Bool("wind", true),
			CollisionScale: math.Max(0.01, math.Min(1, d.Float("collision_scale", 1))),
		}
		w.Decorations = append(w.Decorations, dec)
		if dec.Collision {
			w.block(dec.X, dec.Y, int(math.Max(0, math.Floor(0.5*dec.Scale*dec.CollisionScale))))
		}
	}
	return w
}

func (w *World) block(cx, cy, half int) {
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			x, y := cx+dx, cy+dy
			if x >= 0 && x < w.Width && y >= 0 && y < w.Height {
				w.blocked[[2]int{x, y}] = true
			}
		}
	}
}

// Blocked reports whether tile (tx, ty) stops the player. Tiles outside the map are blocked.
func (w *World) Blocked(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= w.Width || ty >= w.Height {
		return true
	}
	if w.cfg.IsBlockedTerrain(w.Terrain[ty][tx]) {
		return true
	}
	return w.blocked[[2]int{tx, ty}]
}

// RectBlocked reports whether any tile under the pixel rectangle is blocked.
func (w *World) RectBlocked(px, py, width, height float64) bool {
	ts := float64(w.cfg.TileSize)
	minTx := int(math.Floor(px / ts))
	maxTx := int(math.Floor((px + width - 0.001) / ts))
	minTy := int(math.Floor(py / ts))
	maxTy := int(math.Floor((py + height - 0.001) / ts))
	for ty := minTy; ty <= maxTy; ty++ {
		for tx := minTx; tx <= maxTx; tx++ {
			if w.Blocked(tx, ty) {
				return true
			}
		}
	}
	return false
}

// Player is the walking character in pixel coordinates.
type Player struct {
	X, Y, W, H float64
}

// NewPlayer places the player on tile (tx, ty), slightly smaller than a tile.
func NewPlayer(tx, ty, tile int) Player {
	return Player{X: float64(tx * tile), Y: float64(ty * tile), W: float64(tile - 4), H: float64(tile - 4)}
}

// Centre returns the pixel centre of the player.
func (p Player) Centre() (float64, float64) { return p.X + p.W/2, p.Y + p.H/2 }

// Move tries to shift the player by (dx, dy) pixels, one axis at a time, so the
// player can slide along walls. It reports whether the player moved.
func (w *World) Move(p *Player, dx, dy float64) bool {
	moved := false
	if dx != 0 && !w.RectBlocked(p.X+dx, p.Y, p.W, p.H) {
		p.X += dx
		moved = true
	}
	if dy != 0 && !w.RectBlocked(p.X, p.Y+dy, p.W, p.H) {
		p.Y += dy
		moved = true
	}
	return moved
}
