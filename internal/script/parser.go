/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"bufio"
	"strings"

	"kinzaquest/internal/effect"
)

// Classify turns one authored dialogue line into a Line.
// A line holding a well-formed [effect:...] block is an Effect.
// Otherwise the text before the first ':' is the speaker and the rest the message;
// without a ':' the whole line is the message.
func Classify(raw string) Line {
	str := strings.TrimSpace(raw)
	if d, ok := effect.Detect(str); ok {
		return Effect(d)
	}
	idx := strings.IndexByte(str, ':')
	if idx == -1 {
		return Speech("", str)
	}
	return Speech(strings.TrimSpace(str[:idx]), strings.TrimSpace(str[idx+1:]))
}

// ClassifyAll classifies each raw line, keeping order.
func ClassifyAll(raws []string) []Line {
	out := make([]Line, 0, len(raws))
	for _, r := range raws {
		out = append(out, Classify(r))
	}
	return out
}

// ParseText classifies a plain script with one dialogue line per physical line.
// Blank lines are dropped; LineNo records the 1-based source line.
func ParseText(input string) []Line {
	var out []Line
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		l := Classify(scanner.Text())
		l.LineNo = lineNo
		out = append(out, l)
	}
	return out
}
