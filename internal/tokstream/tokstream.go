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

// Package tokstream implements the token stream (C8): an append-only
// vector of RawSyntaxToken plus a sidecar vector of comments, indexed by
// the 32-bit token.ID embedded in AST syntax ranges (spec.md §4.8).
package tokstream

import "github.com/daiyousei-qz/glsld-sub001/internal/token"

// Stream is the append-only output of the preprocessor state machine (C7)
// and the input the parser (C10) consumes.
type Stream struct {
	tokens   []token.RawSyntaxToken
	comments []token.Comment
}

// New constructs an empty Stream.
func New() *Stream { return &Stream{} }

// Append adds tok to the end of the stream and returns its ID.
func (s *Stream) Append(tok token.RawSyntaxToken) token.ID {
	id := token.ID(len(s.tokens))
	s.tokens = append(s.tokens, tok)
	return id
}

// AppendComment records a detached comment. nextToken should be the ID the
// next call to Append will return, i.e. the index of the first non-comment
// token following it.
func (s *Stream) AppendComment(c token.Comment) {
	s.comments = append(s.comments, c)
}

// Len returns the number of tokens appended so far.
func (s *Stream) Len() int { return len(s.tokens) }

// At returns the token at id. Panics (out of range) if id is invalid;
// callers are expected to only index IDs obtained from this Stream.
func (s *Stream) At(id token.ID) token.RawSyntaxToken { return s.tokens[id] }

// Comments returns every detached comment, in stream order.
func (s *Stream) Comments() []token.Comment { return s.comments }

// Slice returns the tokens in [start, end), for error-recovery synchronizing
// scans and diagnostics that need to inspect a range directly.
func (s *Stream) Slice(start, end token.ID) []token.RawSyntaxToken {
	return s.tokens[start:end]
}
