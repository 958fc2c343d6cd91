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

package sema

// swizzleSets are GLSL's three parallel component-naming conventions; a
// swizzle string must draw its letters from exactly one of them (spec.md
// §4.9). The index within each string is the component position.
var swizzleSets = []string{"xyzw", "rgba", "stpq"}

// parseSwizzle validates field as a swizzle over a vector of vectorSize
// components, returning the 0..3 component index per letter. ok is false if
// field mixes sets, uses an out-of-range letter, is empty or exceeds four
// letters.
func parseSwizzle(field string, vectorSize int) (components []int, ok bool) {
	if len(field) == 0 || len(field) > 4 {
		return nil, false
	}
	setIdx := -1
	out := make([]int, 0, len(field))
	for _, r := range field {
		pos, set := componentOf(r)
		if set < 0 {
			return nil, false
		}
		if setIdx == -1 {
			setIdx = set
		} else if setIdx != set {
			return nil, false
		}
		if pos >= vectorSize {
			return nil, false
		}
		out = append(out, pos)
	}
	return out, true
}

func componentOf(r rune) (pos, set int) {
	for s, letters := range swizzleSets {
		for i, c := range letters {
			if c == r {
				return i, s
			}
		}
	}
	return 0, -1
}

// swizzleIsLValue reports whether a swizzle with the given component list
// can appear on the left of an assignment: every component must be
// distinct (spec.md §4.9, `SwizzleAccessExpr` doc).
func swizzleIsLValue(components []int) bool {
	seen := 0
	for _, c := range components {
		bit := 1 << uint(c)
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}
