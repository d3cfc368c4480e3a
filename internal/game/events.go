/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"fmt"
	"math"
	"strings"

	"kinzaquest/internal/script"
	"kinzaquest/internal/tomlcfg"
)

// DefaultEventEmoji marks an event without its own emoji.
const DefaultEventEmoji = "❓"

// Event is one stop of the story, played in file order.
type Event struct {
	X, Y             int
	Emoji            string
	TriggersMinigame string
	Particles        string
	SpriteURL        string
	Dialogue         []script.Line
}

// BuildEvents reads the [[events]] array of events.toml.
func BuildEvents(doc tomlcfg.Document) []Event {
	tables := doc.Tables("events")
	out := make([]Event, 0, len(tables))
	for _, t := range tables {
		out = append(out, Event{
			X:                int(t.Int("x", 0)),
			Y:                int(t.Int("y", 0)),
			Emoji:            nonEmpty(t.String("emoji", ""), DefaultEventEmoji),
			TriggersMinigame: trimmed(t, "triggers_minigame"),
			Particles:        trimmed(t, "particles"),
			SpriteURL:        trimmed(t, "sprite_url"),
			Dialogue:         script.ClassifyAll(t.Strings("dialogue")),
		})
	}
	return out
}

// Overlaps reports whether a player centred at (px, py) stands on the event tile.
// Characters drawn larger than a tile get the tile padded by half the excess on each side.
func (e Event) Overlaps(px, py float64, tile int, charScale float64) bool {
	ts := float64(tile)
	pad := math.Max(0, (charScale-1)*ts*0.5)
	tx := float64(e.X)*ts - pad
	ty := float64(e.Y)*ts - pad
	size := ts + pad*2
	return px >= tx && px <= tx+size && py >= ty && py <= ty+size
}

// Centre returns the pixel centre of the event tile.
func (e Event) Centre(tile int) (float64, float64) {
	return (float64(e.X) + 0.5) * float64(tile), (float64(e.Y) + 0.5) * float64(tile)
}

// FinalSprite returns the sprite of the first minigame event, else fallback.
func FinalSprite(events []Event, fallback string) string {
	for _, e := range events {
		if e.TriggersMinigame != "" {
			if e.SpriteURL != "" {
				return e.SpriteURL
			}
			break
		}
	}
	return strings.TrimSpace(fallback)
}

// trimmed reads key as text; numbers and bools are formatted.
func trimmed(t tomlcfg.Document, key string) string {
	v, ok := t[key]
	if !ok {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case bool:
		if !x {
			return ""
		}
	case tomlcfg.Document, []tomlcfg.Document:
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
