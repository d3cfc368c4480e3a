/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package tomlcfg

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var (
	reArrayHeader = regexp.MustCompile(`^\[\[([^\[\]]+)\]\]$`)
	reTableHeader = regexp.MustCompile(`^\[([^\[\]]+)\]$`)
	reInt         = regexp.MustCompile(`^-?\d+$`)
	reFloat       = regexp.MustCompile(`^-?\d*\.?\d+([eE][+-]?\d+)?$`)
)

// Parse parses text into a Document. It never fails: lines that do not fit the
// grammar are skipped and returned as Skips so callers can report them.
// Rules:
//   - [a.b] makes the nested table the write target, creating tables along the path.
//   - [[a.b]] appends a new table to the array at a.b and makes it the write target.
//   - key = value writes into the current target (the root before any header).
//   - An array value may continue over following lines until its closing bracket.
func Parse(text string) (Document, []Skip) {
	p := &parser{
		lines: strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"),
		root:  Document{},
	}
	p.target = p.root
	p.run()
	return p.root, p.skips
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (Document, []Skip, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, skips := Parse(string(b))
	return doc, skips, nil
}

type parser struct {
	lines  []string
	pos    int // index of the next unread line
	root   Document
	target Document
	skips  []Skip
}

func (p *parser) skip(lineNo int, text string, r Reason) {
	p.skips = append(p.skips, Skip{Line: lineNo, Text: text, Reason: r})
}

func (p *parser) run() {
	for p.pos < len(p.lines) {
		lineNo := p.pos + 1
		trim := strings.TrimSpace(p.lines[p.pos])
		p.pos++

		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}

		if m := reArrayHeader.FindStringSubmatch(trim); m != nil {
			p.arrayHeader(lineNo, trim, m[1])
			continue
		}
		if m := reTableHeader.FindStringSubmatch(trim); m != nil {
			p.tableHeader(lineNo, trim, m[1])
			continue
		}
		if strings.HasPrefix(trim, "[") {
			p.skip(lineNo, trim, ReasonMalformedHeader)
			continue
		}

		eq := strings.IndexByte(trim, '=')
		if eq == -1 {
			p.skip(lineNo, trim, ReasonNoAssignment)
			continue
		}
		key := strings.TrimSpace(trim[:eq])
		if key == "" {
			p.skip(lineNo, trim, ReasonEmptyKey)
			continue
		}
		if _, isTable := p.target[key].(Document); isTable {
			p.skip(lineNo, trim, ReasonPathConflict)
			continue
		}
		val := strings.TrimSpace(trim[eq+1:])
		if strings.HasPrefix(val, "[") {
			items, closed := p.array(val)
			if !closed {
				p.skip(lineNo, trim, ReasonUnterminatedArray)
			}
			p.target[key] = items
			continue
		}
		p.target[key] = parseScalar(val)
	}
}

func (p *parser) tableHeader(lineNo int, line, inner string) {
	parts, ok := splitPath(inner)
	if !ok {
		p.skip(lineNo, line, ReasonMalformedHeader)
		return
	}
	t, ok := descend(p.root, parts)
	if !ok {
		p.skip(lineNo, line, ReasonPathConflict)
		return
	}
	p.target = t
}

func (p *parser) arrayHeader(lineNo int, line, inner string) {
	parts, ok := splitPath(inner)
	if !ok {
		p.skip(lineNo, line, ReasonMalformedHeader)
		return
	}
	parent, ok := descend(p.root, parts[:len(parts)-1])
	if !ok {
		p.skip(lineNo, line, ReasonPathConflict)
		return
	}
	last := parts[len(parts)-1]
	var arr []Document
	switch v := parent[last].(type) {
	case nil:
	case []Document:
		arr = v
	default:
		p.skip(lineNo, line, ReasonPathConflict)
		return
	}
	t := Document{}
	parent[last] = append(arr, t)
	p.target = t
}

// array scans an array literal starting at val (which begins with '['),
// pulling further physical lines while the closing bracket is missing.
func (p *parser) array(val string) ([]any, bool) {
	items := []any{}
	rest := strings.TrimSpace(val[1:])
	for {
		for rest != "" {
			it := nextItem(rest)
			if it.incomplete {
				break
			}
			rest = it.rest
			if it.item != "" {
				items = append(items, parseScalar(it.item))
			}
			if it.closed {
				return items, true
			}
		}
		next, ok := p.continuation()
		if !ok {
			if tail := strings.TrimSpace(rest); tail != "" {
				items = append(items, parseScalar(tail))
			}
			return items, false
		}
		if rest = strings.TrimSpace(rest); rest != "" {
			rest += " " + next
		} else {
			rest = next
		}
	}
}

// continuation returns the next non-blank, non-comment line.
func (p *parser) continuation() (string, bool) {
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		p.pos++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, true
	}
	return "", false
}

type arrayItem struct {
	item       string
	rest       string
	closed     bool
	incomplete bool // the buffer ends inside a quoted item; rest is unchanged
}

func nextItem(s string) arrayItem {
	s = strings.TrimSpace(s)
	if s == "" {
		return arrayItem{}
	}
	if s[0] == '"' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '"':
				it := arrayItem{item: s[:i+1]}
				rem := strings.TrimSpace(s[i+1:])
				switch {
				case strings.HasPrefix(rem, ","):
					it.rest = rem[1:]
				case strings.HasPrefix(rem, "]"):
					it.closed = true
				default:
					it.rest = rem
				}
				return it
			}
		}
		return arrayItem{rest: s, incomplete: true}
	}
	j := strings.IndexAny(s, ",]")
	if j == -1 {
		// a bare item runs to the end of the line
		return arrayItem{item: s}
	}
	return arrayItem{
		item:   strings.TrimSpace(s[:j]),
		rest:   s[j+1:],
		closed: s[j] == ']',
	}
}

func parseScalar(s string) any {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `\"`, `"`)
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if reInt.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	if reFloat.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func splitPath(inner string) ([]string, bool) {
	parts := strings.Split(inner, ".")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return nil, false
		}
	}
	return parts, true
}

// descend walks parts from root, creating missing tables. A segment holding an
// array of tables resolves to its last element. It fails if a segment is a scalar.
func descend(root Document, parts []string) (Document, bool) {
	cur := root
	for _, part := range parts {
		switch v := cur[part].(type) {
		case nil:
			t := Document{}
			cur[part] = t
			cur = t
		case Document:
			cur = v
		case []Document:
			if len(v) == 0 {
				t := Document{}
				cur[part] = append(v, t)
				cur = t
				continue
			}
			cur = v[len(v)-1]
		default:
			return nil, false
		}
	}
	return cur, true
}
