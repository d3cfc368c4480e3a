/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"strings"

	"kinzaquest/internal/effect"
)

// LineType indicates the kind of a dialogue line.
// Speech: "Speaker: message" or a bare message
// Effect: a line carrying an [effect:...] directive; never shown as text

type LineType int

const (
	LineSpeech LineType = iota + 1
	LineEffect
)

func (t LineType) String() string {
	switch t {
	case LineSpeech:
		return "speech"
	case LineEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Line is one classified dialogue line.
// For Speech, Speaker is empty when the line names nobody.
// For Effect, Effect is set and Speaker/Message are empty.

type Line struct {
	Type    LineType
	Speaker string
	Message string
	Effect  *effect.Directive
	LineNo  int // 1-based source line, 0 when classified from a bare string
}

// Speech builds a speech line.
func Speech(speaker, message string) Line {
	return Line{Type: LineSpeech, Speaker: speaker, Message: message}
}

// Effect wraps a directive as a line.
func Effect(d effect.Directive) Line {
	return Line{Type: LineEffect, Effect: &d}
}

func (l Line) IsEffect() bool { return l.Type == LineEffect && l.Effect != nil }

// IsNarrator reports whether a speech line should be shown without a name tag.
func (l Line) IsNarrator() bool {
	name := strings.TrimSpace(l.Speaker)
	return name == "" || strings.EqualFold(name, "narrator")
}
