/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package effect parses [effect:...] directives embedded in dialogue lines and
// resolves them against the effects and animations content files.
//
// Directive syntax: [effect:key=value,key=value,...]
//   - in=<placements>   where to show the effect (default: screen)
//   - duration=<secs>   float, default 0.5
//   - anything else     kept verbatim in Fields (img, img-box, emoji, animation, ...)
//
// Placements: "screen", "player,textbox", "textbox:x=-1,y=-11,scale=5" or
// "screen:scale=2;player:y=-4". Brackets around the list are ignored.
package effect

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultDuration applies when duration is missing or not a number.
	DefaultDuration = 0.5
	// DefaultPlace is used when a directive names no usable placement.
	DefaultPlace = "screen"
	// DefaultAnimation is the animation used when none is named.
	DefaultAnimation = "pop-up"

	openToken = "[effect:"
)

// Placement is a named target with optional inline overrides.
// Scale, X and Y are nil unless given as numbers.
type Placement struct {
	Place string
	Scale *float64
	X     *float64
	Y     *float64
	// Extra holds other numeric options, keyed by lower-cased name.
	Extra map[string]float64
}

// Directive is a parsed [effect:...] block. Targets is never empty.
type Directive struct {
	Targets  []Placement
	Duration float64
	Fields   map[string]string
}

// Animation returns the requested animation name or DefaultAnimation.
func (d Directive) Animation() string {
	if a := strings.TrimSpace(d.Fields["animation"]); a != "" {
		return a
	}
	return DefaultAnimation
}

// Target returns the first placement for place.
func (d Directive) Target(place string) (Placement, bool) {
	for _, p := range d.Targets {
		if p.Place == place {
			return p, true
		}
	}
	return Placement{}, false
}

func (d Directive) Has(place string) bool {
	_, ok := d.Target(place)
	return ok
}

// Detect finds the first [effect:...] block in line and parses it.
// It reports false when there is no block or its brackets never balance;
// such a line is ordinary text.
func Detect(line string) (Directive, bool) {
	str := strings.TrimSpace(line)
	start := strings.Index(str, openToken)
	if start == -1 {
		return Directive{}, false
	}
	end := matchingBracket(str, start)
	if end <= start {
		return Directive{}, false
	}

	d := Directive{
		Targets:  defaultTargets(),
		Duration: DefaultDuration,
		Fields:   map[string]string{},
	}
	inner := strings.TrimSpace(str[start+len(openToken) : end])
	for _, part := range splitTopLevel(inner) {
		eq := strings.IndexByte(part, '=')
		if eq == -1 {
			continue
		}
		key := strings.TrimSpace(part[:eq])
		val := strings.TrimSpace(part[eq+1:])
		if len(val) >= 2 && val[0] == '\'' && val[len(val)-1] == '\'' {
			val = val[1 : len(val)-1]
		}
		switch key {
		case "in":
			d.Targets = parsePlacements(val)
		case "duration":
			if f, ok := parseNumber(val); ok {
				d.Duration = f
			} else {
				d.Duration = DefaultDuration
			}
		default:
			d.Fields[key] = val
		}
	}
	return d, true
}

func defaultTargets() []Placement {
	return []Placement{{Place: DefaultPlace}}
}

// matchingBracket returns the index of the ']' that closes the '[' at open, or -1.
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas that are not inside brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, from := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[from:i]))
				from = i + 1
			}
		}
	}
	if from < len(s) {
		parts = append(parts, strings.TrimSpace(s[from:]))
	}
	return parts
}

// parsePlacements reads the value of in=. Precedence: a ';' anywhere makes it a
// list of specs; otherwise a ':' makes the whole value one spec with options;
// otherwise it is a comma list of bare place names.
func parsePlacements(val string) []Placement {
	raw := strings.TrimSpace(strings.NewReplacer("[", "", "]", "").Replace(val))
	var specs []string
	switch {
	case strings.Contains(raw, ";"):
		specs = strings.Split(raw, ";")
	case strings.Contains(raw, ":"):
		specs = []string{raw}
	default:
		specs = strings.Split(raw, ",")
	}

	var out []Placement
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		p := parsePlacement(spec)
		if p.Place != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultTargets()
	}
	return out
}

func parsePlacement(spec string) Placement {
	colon := strings.IndexByte(spec, ':')
	if colon == -1 {
		return Placement{Place: spec}
	}
	p := Placement{Place: strings.TrimSpace(spec[:colon])}
	for _, opt := range strings.Split(spec[colon+1:], ",") {
		eq := strings.IndexByte(opt, '=')
		if eq == -1 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(opt[:eq]))
		f, ok := parseNumber(opt[eq+1:])
		if !ok {
			continue
		}
		switch key {
		case "scale":
			p.Scale = &f
		case "x":
			p.X = &f
		case "y":
			p.Y = &f
		default:
			if p.Extra == nil {
				p.Extra = map[string]float64{}
			}
			p.Extra[key] = f
		}
	}
	return p
}

// parseNumber accepts only a whole finite number; "2x" or "1.2s" is not one.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
