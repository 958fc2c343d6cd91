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

import "github.com/daiyousei-qz/glsld-sub001/internal/ast"

// resolveOverload implements spec.md §4.9's three-pass overload resolution
// over candidates, a name's full global-scope overload set.
//
// Outcomes: (decl, true, false) on a unique winner, (nil, false, false) when
// no candidate's arity and conversions fit, and (nil, false, true) on an
// ambiguity between two or more equally-good candidates.
func resolveOverload(candidates []*ast.FunctionDecl, argTypes []*ast.Type) (decl *ast.FunctionDecl, ok, ambiguous bool) {
	// Pass 1: exact match. Parameter types are interned, so equality is the
	// pointer comparison ast.Equal performs.
	for _, c := range candidates {
		if paramsEqual(c, argTypes) {
			return c, true, false
		}
	}

	// Pass 2: candidates reachable via implicit conversion at every
	// argument position.
	type scored struct {
		decl  *ast.FunctionDecl
		ranks []int
	}
	var viable []scored
	for _, c := range candidates {
		if len(c.Params) != len(argTypes) {
			continue
		}
		ranks := make([]int, len(argTypes))
		fits := true
		for i, a := range argTypes {
			d, convOK := ast.ImplicitlyConvertibleTo(a, c.Params[i].ElemType)
			if !convOK {
				fits = false
				break
			}
			ranks[i] = d
		}
		if fits {
			viable = append(viable, scored{c, ranks})
		}
	}
	if len(viable) == 0 {
		return nil, false, false
	}
	if len(viable) == 1 {
		return viable[0].decl, true, false
	}

	// Pass 3: partial order. C1 is better than C2 iff no worse at every
	// position and strictly better at some position.
	better := func(c1, c2 scored) bool {
		strictlyBetter := false
		for i := range c1.ranks {
			if c1.ranks[i] > c2.ranks[i] {
				return false
			}
			if c1.ranks[i] < c2.ranks[i] {
				strictlyBetter = true
			}
		}
		return strictlyBetter
	}

	best := 0
	for i := 1; i < len(viable); i++ {
		if better(viable[i], viable[best]) {
			best = i
		}
	}
	for i := range viable {
		if i == best {
			continue
		}
		if !better(viable[best], viable[i]) {
			return nil, false, true
		}
	}
	return viable[best].decl, true, false
}

func paramsEqual(c *ast.FunctionDecl, argTypes []*ast.Type) bool {
	if len(c.Params) != len(argTypes) {
		return false
	}
	for i, a := range argTypes {
		if !ast.Equal(a, c.Params[i].ElemType) {
			return false
		}
	}
	return true
}
