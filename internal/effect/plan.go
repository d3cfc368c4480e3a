/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package effect

import "math"

// CueKind names the visual element a cue drives.
type CueKind int

const (
	CueImageBox CueKind = iota + 1
	CueScreenEmoji
	CueScreenImage
	CuePlayerEmoji
	CueTextboxEmoji
)

func (k CueKind) String() string {
	switch k {
	case CueImageBox:
		return "img-box"
	case CueScreenEmoji:
		return "screen-emoji"
	case CueScreenImage:
		return "screen-img"
	case CuePlayerEmoji:
		return "player-emoji"
	case CueTextboxEmoji:
		return "textbox-emoji"
	default:
		return "unknown"
	}
}

// emojiLinger is how long an emoji stays visible after its animation, in seconds.
const emojiLinger = 0.2

// Cue is one visual element a renderer should play for a directive.
type Cue struct {
	Kind      CueKind
	Asset     string // image path or emoji glyph
	Place     string
	Layout    Layout
	Animation Animation
	Duration  float64 // animation length in seconds
	Linger    float64 // seconds to stay visible once the animation ends
}

// Planner turns directives into cues using the configured places and animations.
type Planner struct {
	Places     PlaceConfigs
	Animations Animations
}

// Plan lists the cues for d. An img-box field shows a modal image and nothing else.
// Emoji and img fields play on screen; emoji also plays on player and textbox.
func (pl Planner) Plan(d Directive) []Cue {
	if path := d.Fields["img-box"]; path != "" {
		return []Cue{{Kind: CueImageBox, Asset: path}}
	}

	anim := pl.Animations.Lookup(d.Animation())
	emoji := d.Fields["emoji"]
	img := d.Fields["img"]

	var cues []Cue
	cue := func(kind CueKind, asset, place string, dur, linger float64) {
		inline, _ := d.Target(place)
		cues = append(cues, Cue{
			Kind:      kind,
			Asset:     asset,
			Place:     place,
			Layout:    pl.Places.Resolve(place, inline),
			Animation: anim,
			Duration:  dur,
			Linger:    linger,
		})
	}

	if emoji != "" && d.Has("screen") {
		cue(CueScreenEmoji, emoji, "screen", d.Duration, emojiLinger)
	}
	if img != "" && d.Has("screen") {
		dur := d.Duration
		if anim.Duration != 0 {
			dur = anim.Duration
		}
		cue(CueScreenImage, img, "screen", dur, math.Max(0, d.Duration-dur))
	}
	if emoji != "" && d.Has("player") {
		cue(CuePlayerEmoji, emoji, "player", d.Duration, emojiLinger)
	}
	if emoji != "" && d.Has("textbox") {
		cue(CueTextboxEmoji, emoji, "textbox", d.Duration, emojiLinger)
	}
	return cues
}
