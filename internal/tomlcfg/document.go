/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package tomlcfg parses the small TOML subset used by the game's content files
// (config, events, world layout, animations, effects).
// Supported: comments, key = value scalars, single- and multi-line arrays,
// [table], [table.sub] and [[array.of.tables]]. Inline tables, datetimes and
// nested arrays are not supported; lines outside the grammar are skipped and reported.
package tomlcfg

import "fmt"

// Document is a parsed table. Values are one of:
// string, int64, float64, bool, []any (scalars), Document, []Document.
type Document map[string]any

// Reason classifies why a line was skipped or degraded.
type Reason int

const (
	ReasonNoAssignment Reason = iota + 1
	ReasonEmptyKey
	ReasonMalformedHeader
	ReasonPathConflict
	// ReasonUnterminatedArray: the array never saw its closing bracket.
	// The key is still written with the items collected.
	ReasonUnterminatedArray
)

func (r Reason) String() string {
	switch r {
	case ReasonNoAssignment:
		return "no assignment"
	case ReasonEmptyKey:
		return "empty key"
	case ReasonMalformedHeader:
		return "malformed header"
	case ReasonPathConflict:
		return "path conflict"
	case ReasonUnterminatedArray:
		return "unterminated array"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Skip records a physical line the parser did not apply as written.
type Skip struct {
	Line   int // 1-based
	Text   string
	Reason Reason
}

func (s Skip) String() string {
	return fmt.Sprintf("line %d: %s: %q", s.Line, s.Reason, s.Text)
}

// Has reports whether key is present.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Table returns the nested table at key.
func (d Document) Table(key string) (Document, bool) {
	t, ok := d[key].(Document)
	return t, ok
}

// Tables returns the array of tables at key, or nil.
func (d Document) Tables(key string) []Document {
	ts, _ := d[key].([]Document)
	return ts
}

func (d Document) String(key, def string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return def
}

// Int accepts both integer and float values; floats are truncated.
func (d Document) Int(key string, def int64) int64 {
	switch v := d[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return def
}

// Float accepts both integer and float values.
func (d Document) Float(key string, def float64) float64 {
	switch v := d[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return def
}

func (d Document) Bool(key string, def bool) bool {
	if b, ok := d[key].(bool); ok {
		return b
	}
	return def
}

// Strings returns the string items of the array at key. Non-string items are
// formatted with %v. A missing or non-array value yields nil.
func (d Document) Strings(key string) []string {
	arr, ok := d[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	return out
}
