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

// Package ast defines the typed, position-annotated AST produced by the
// parser (C10) and attributed by the AST builder (C9): expression, statement
// and declaration node variants, the Type and ConstValue data model, and the
// scope/symbol table used for name resolution and overload resolution.
package ast

import "github.com/daiyousei-qz/glsld-sub001/internal/token"

// SyntaxRange is the half-open [Start, End) interval of RawSyntaxToken IDs
// that a node spans, named AstSyntaxRange in spec.md §3.
type SyntaxRange struct {
	Start, End token.ID
}

// NewSyntaxRange builds a range spanning [start, end).
func NewSyntaxRange(start, end token.ID) SyntaxRange { return SyntaxRange{Start: start, End: end} }

// Single returns the one-token range [tok, tok+1).
func Single(tok token.ID) SyntaxRange { return SyntaxRange{Start: tok, End: tok + 1} }

// Join returns the smallest range covering both a and b; used when building
// a parent node's range from its first and last child (Testable Property 2).
func Join(a, b SyntaxRange) SyntaxRange {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return SyntaxRange{Start: start, End: end}
}
