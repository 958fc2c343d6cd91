// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

// Position is a 0-based (line, column) pair. Column counting is configurable
// (UTF-8 or UTF-16 code units) to match editor protocols; Position itself is
// agnostic to which convention produced it.
type Position struct {
	Line, Column int
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LessEqual reports whether p sorts before or at other.
func (p Position) LessEqual(other Position) bool {
	return p == other || p.Less(other)
}

// Range is a half-open [Start, End) interval of Positions.
type Range struct {
	Start, End Position
}

// IsEmpty reports whether the range is zero-width.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// Zero returns a zero-width Range pinned at p.
func Zero(p Position) Range { return Range{Start: p, End: p} }
