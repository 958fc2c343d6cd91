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

import "github.com/daiyousei-qz/glsld-sub001/internal/atom"

// FileRef is re-exported here as a plain int32 so this package doesn't
// depend on internal/source; the preprocessor/scanner packages convert
// source.ID <-> FileRef at their boundary.
type FileRef int32

// PPToken is the output of the scanner (C3): a token with only its spelled
// position known, before keyword classification or macro expansion. Per
// spec.md §4.3, keywords are tagged Identifier at this stage.
type PPToken struct {
	Klass                Klass
	SpelledFile          FileRef
	SpelledRange         Range
	Text                 atom.String
	IsFirstTokenOfLine    bool
	HasLeadingWhitespace bool
}

// ID indexes a RawSyntaxToken within a token stream (C8). It is the value
// embedded in AST syntax ranges.
type ID uint32

// InvalidID is the sentinel for "no token", analogous to InvalidTokenIndex
// in the original implementation.
const InvalidID ID = 0xFFFFFFFF

// RawSyntaxToken is the output of the preprocessor (C7): a post-PP token
// with its final Klass (keywords classified), its spelled position, and its
// expanded position in the main translation unit.
type RawSyntaxToken struct {
	Klass         Klass
	SpelledFile   FileRef
	SpelledRange  Range
	ExpandedRange Range
	Text          atom.String
}

// Comment is a detached comment extracted from the token stream; NextToken
// is the index of the first following non-comment token.
type Comment struct {
	SpelledFile FileRef
	SpelledRange Range
	Text        string
	NextToken   ID
}
