/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tomlcfg

import (
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Content files written in the supported subset must read the same as with a
// full TOML implementation.
func TestParityWithReferenceParser(t *testing.T) {
	inputs := map[string]string{
		"config": `
[world]
width = 40
height = 30
tile_size = 40

[player]
speed = 4.5
sprite_url = "assets/player.png"

[blocked_tiles]
list = ["water", "lava"]

[tiles.grass]
color = "#4a4"
emoji = ""
`,
		"events": `
[[events]]
x = 14
y = 10
emoji = "🌸"
dialogue = [
  "Kinza: Hello, \"friend\"",
  "[effect:emoji=❤️,in=[textbox:x=-1,y=-11,scale=5],duration=1.2]",
  "Thanks!",
]

[[events]]
x = 20
y = 4
triggers_minigame = "lantern"
dialogue = ["Narrator: The end"]
`,
		"animations": `
[pop-up]
opacity_start = 0
opacity_end = 1
scale_start = 0.2
scale_end = 1.0
easing = "ease-out"
`,
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, skips := Parse(in)
			require.Empty(t, skips)

			var want map[string]any
			require.NoError(t, toml.Unmarshal([]byte(in), &want))
			assert.Equal(t, want, plain(got))
		})
	}
}

// plain converts Document values to the generic shapes the reference parser produces.
func plain(v any) any {
	switch x := v.(type) {
	case Document:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = plain(val)
		}
		return m
	case []Document:
		out := make([]any, len(x))
		for i, d := range x {
			out[i] = plain(d)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
