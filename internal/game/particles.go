/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import "kinzaquest/internal/tomlcfg"

// ParticleDef is one entry of particles.toml.
type ParticleDef struct {
	Name     string
	Count    int
	Colors   []string
	Emoji    string
	Style    string
	Lifetime float64
	SpeedMin float64
	SpeedMax float64
	SizeMin  float64
	SizeMax  float64
}

// Particles maps definition name to definition.
type Particles map[string]ParticleDef

// LoadParticles reads every table of particles.toml. Unset values take the
// defaults of six pink-and-white floating particles living two seconds.
func LoadParticles(doc tomlcfg.Document) Particles {
	out := Particles{}
	for name := range doc {
		t, ok := doc.Table(name)
		if !ok {
			continue
		}
		def := ParticleDef{
			Name:     name,
			Count:    int(t.Int("count", 0)),
			Colors:   []string{nonEmpty(t.String("color", ""), "#ffb7c5"), nonEmpty(t.String("color_alt", ""), "#fff")},
			Emoji:    t.String("emoji", ""),
			Style:    nonEmpty(t.String("style", ""), "float"),
			Lifetime: t.Float("lifetime", 2),
			SpeedMin: 0.25,
			SpeedMax: 0.25,
			SizeMin:  4,
			SizeMax:  4,
		}
		if def.Count <= 0 {
			def.Count = 6
		}
		if t.Has("speed_min") && t.Has("speed_max") {
			def.SpeedMin, def.SpeedMax = t.Float("speed_min", 0), t.Float("speed_max", 0)
		}
		if t.Has("size_min") && t.Has("size_max") {
			def.SizeMin, def.SizeMax = t.Float("size_min", 0), t.Float("size_max", 0)
		}
		out[name] = def
	}
	return out
}

// Burst is a particle emission centred on an event tile.
type Burst struct {
	Def  ParticleDef
	X, Y float64
}

// Burst returns the emission for ev, if ev names a known definition.
func (p Particles) Burst(ev Event, tile int) (Burst, bool) {
	def, ok := p[ev.Particles]
	if ev.Particles == "" || !ok {
		return Burst{}, false
	}
	x, y := ev.Centre(tile)
	return Burst{Def: def, X: x, Y: y}, true
}
