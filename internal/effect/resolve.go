/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package effect

import (
	"kinzaquest/internal/tomlcfg"
)

// PlaceConfig holds per-place defaults from effects.toml, e.g.
//
//	[textbox]
//	scale = 1.5
//	offset_x = 4
//	offset_y = -2
type PlaceConfig struct {
	Scale   *float64
	OffsetX *float64
	OffsetY *float64
}

// PlaceConfigs maps place name to its configured defaults.
type PlaceConfigs map[string]PlaceConfig

// Layout is the resolved position adjustment for one placement.
type Layout struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// LoadPlaceConfigs reads every table of an effects.toml document.
func LoadPlaceConfigs(doc tomlcfg.Document) PlaceConfigs {
	out := PlaceConfigs{}
	for name := range doc {
		t, ok := doc.Table(name)
		if !ok {
			continue
		}
		out[name] = PlaceConfig{
			Scale:   optFloat(t, "scale"),
			OffsetX: optFloat(t, "offset_x"),
			OffsetY: optFloat(t, "offset_y"),
		}
	}
	return out
}

// Resolve merges an inline placement over the configured defaults for place.
// Inline values win over config; scale falls back to 1 when missing or not positive.
func (pc PlaceConfigs) Resolve(place string, inline Placement) Layout {
	cfg := pc[place]
	l := Layout{
		Scale:   pick(inline.Scale, cfg.Scale, 1),
		OffsetX: pick(inline.X, cfg.OffsetX, 0),
		OffsetY: pick(inline.Y, cfg.OffsetY, 0),
	}
	if l.Scale <= 0 {
		l.Scale = 1
	}
	return l
}

func pick(first, second *float64, def float64) float64 {
	if first != nil {
		return *first
	}
	if second != nil {
		return *second
	}
	return def
}

func optFloat(t tomlcfg.Document, key string) *float64 {
	switch v := t[key].(type) {
	case int64:
		f := float64(v)
		return &f
	case float64:
		return &v
	}
	return nil
}

// Easing names understood by renderers.
const (
	EaseLinear = "linear"
	EaseIn     = "ease-in"
	EaseOut    = "ease-out"
)

// Animation describes one entry of animations.toml.
type Animation struct {
	Name         string
	OpacityStart float64
	OpacityEnd   float64
	ScaleStart   float64
	ScaleEnd     float64
	YOffset      float64
	Easing       string
	// Duration overrides the directive duration for image cues; 0 means unset.
	Duration float64
}

// BaseAnimation applies when neither the requested animation nor pop-up is configured.
var BaseAnimation = Animation{
	Name:         DefaultAnimation,
	OpacityStart: 0,
	OpacityEnd:   1,
	ScaleStart:   0,
	ScaleEnd:     1,
	Easing:       EaseLinear,
}

// Animations maps animation name to its definition.
type Animations map[string]Animation

// LoadAnimations reads every table of an animations.toml document.
func LoadAnimations(doc tomlcfg.Document) Animations {
	out := Animations{}
	for name := range doc {
		t, ok := doc.Table(name)
		if !ok {
			continue
		}
		easing := t.String("easing", EaseLinear)
		if easing != EaseIn && easing != EaseOut {
			easing = EaseLinear
		}
		out[name] = Animation{
			Name:         name,
			OpacityStart: t.Float("opacity_start", BaseAnimation.OpacityStart),
			OpacityEnd:   t.Float("opacity_end", BaseAnimation.OpacityEnd),
			ScaleStart:   t.Float("scale_start", BaseAnimation.ScaleStart),
			ScaleEnd:     t.Float("scale_end", BaseAnimation.ScaleEnd),
			YOffset:      t.Float("y_offset", 0),
			Easing:       easing,
			Duration:     t.Float("duration", 0),
		}
	}
	return out
}

// Lookup returns name, else pop-up, else BaseAnimation.
func (a Animations) Lookup(name string) Animation {
	if anim, ok := a[name]; ok {
		return anim
	}
	if anim, ok := a[DefaultAnimation]; ok {
		return anim
	}
	return BaseAnimation
}
