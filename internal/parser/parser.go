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

// Package parser implements the parser (C10): a recursive-descent pass that
// walks the token stream the preprocessor state machine (C7) produced and
// drives the AST builder (C9) production by production, yielding a typed,
// position-annotated translation unit.
//
// The parser never backtracks beyond a few tokens of lookahead. Instead of
// unwinding, a parse routine that finds a required token missing emits a
// placeholder node (ErrorExpr/ErrorStmt/ErrorDecl) and enters Recovery,
// which the caller resolves by calling recoverFromError with the mode that
// matches the construct being parsed (spec.md §4.10).
package parser

import (
	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/sema"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
	"github.com/daiyousei-qz/glsld-sub001/internal/tokstream"
)

// TranslationUnit is the parser's top-level result: a flat declaration list
// spanning the whole file, since the AST package itself has no program-root
// node (a translation unit is the parser's business, not the builder's).
type TranslationUnit struct {
	Decls []ast.Decl
}

func (u *TranslationUnit) isNode() {}

// Children lets a TranslationUnit be walked like any other ast.Node.
func (u *TranslationUnit) Children() []ast.Node {
	out := make([]ast.Node, len(u.Decls))
	for i, d := range u.Decls {
		out[i] = d
	}
	return out
}

// Parser holds one translation unit's worth of parsing state: a cursor over
// stream, the bracket-depth counters consumeToken maintains, and the Sema
// builder productions are wired into as they're recognized.
type Parser struct {
	stream *tokstream.Stream
	sb     *sema.Builder
	diags  *diag.Sink

	pos token.ID

	parenDepth   int
	bracketDepth int
	braceDepth   int

	recovering bool
}

// New constructs a Parser over stream, wiring diagnostics into both the
// parser's own Errorf calls and sb's (the two share one Sink so the caller
// sees one ordered diagnostic list).
func New(stream *tokstream.Stream, sb *sema.Builder, diags *diag.Sink) *Parser {
	return &Parser{stream: stream, sb: sb, diags: diags}
}

// ParseTranslationUnit parses the whole stream as `{ declaration } EOF`
// (spec.md §4.10).
func (p *Parser) ParseTranslationUnit() *TranslationUnit {
	u := &TranslationUnit{}
	for !p.atEOF() {
		before := p.pos
		d := p.parseExternalDeclaration()
		if d != nil {
			u.Decls = append(u.Decls, d)
		}
		if p.pos == before {
			// No production consumed a token (a stray/unexpected token at
			// top level): force progress so translation-unit parsing always
			// terminates on a finite input.
			p.advance()
		}
	}
	return u
}

// cur returns the token at the parser's current position. At EOF it returns
// the stream's own Eof sentinel token if present, or a synthetic Eof token
// otherwise, so callers never index out of range.
func (p *Parser) cur() token.RawSyntaxToken {
	if int(p.pos) >= p.stream.Len() {
		return token.RawSyntaxToken{Klass: token.Eof}
	}
	return p.stream.At(p.pos)
}

func (p *Parser) curKlass() token.Klass { return p.cur().Klass }

func (p *Parser) curText() string { return p.cur().Text.Text() }

// peek looks ahead n tokens (0 == cur()); the parser never needs more than
// three-token lookahead (spec.md §4.10).
func (p *Parser) peek(n int) token.RawSyntaxToken {
	idx := int(p.pos) + n
	if idx < 0 || idx >= p.stream.Len() {
		return token.RawSyntaxToken{Klass: token.Eof}
	}
	return p.stream.At(token.ID(idx))
}

func (p *Parser) atEOF() bool { return p.curKlass() == token.Eof }

// consumeToken advances the cursor by one token, adjusting the bracket-depth
// counters the way spec.md §4.10 requires; every call in this package that
// moves the cursor goes through this or advance().
func (p *Parser) consumeToken() token.ID {
	id := p.pos
	switch p.curKlass() {
	case token.LParen:
		p.parenDepth++
	case token.RParen:
		if p.parenDepth > 0 {
			p.parenDepth--
		}
	case token.LBracket:
		p.bracketDepth++
	case token.RBracket:
		if p.bracketDepth > 0 {
			p.bracketDepth--
		}
	case token.LBrace:
		p.braceDepth++
	case token.RBrace:
		if p.braceDepth > 0 {
			p.braceDepth--
		}
	}
	if !p.atEOF() {
		p.pos++
	}
	return id
}

// advance is consumeToken without the caller needing the consumed ID.
func (p *Parser) advance() { p.consumeToken() }

func (p *Parser) at(k token.Klass) bool { return p.curKlass() == k }

// accept consumes and returns cur()'s ID if it matches k, reporting whether
// it did.
func (p *Parser) accept(k token.Klass) (token.ID, bool) {
	if p.at(k) {
		return p.consumeToken(), true
	}
	return token.InvalidID, false
}

// expect consumes cur() if it matches k; otherwise it reports a diagnostic
// and returns ok=false without consuming, leaving the caller responsible for
// building a placeholder node and calling recoverFromError.
func (p *Parser) expect(k token.Klass) (token.ID, bool) {
	if id, ok := p.accept(k); ok {
		return id, true
	}
	p.errorf("expected %s, got %s", k, p.curKlass())
	return token.InvalidID, false
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diags.Errorf(p.cur().SpelledRange, format, args...)
}

func (p *Parser) rangeFrom(start token.ID) ast.SyntaxRange {
	return ast.NewSyntaxRange(start, p.pos)
}

// RecoveryMode selects which synchronizing-token set recoverFromError skips
// to, matching the construct the caller was in the middle of parsing
// (spec.md §4.10).
type RecoveryMode int

const (
	// RecoverComma stops at the ')' closing the starting '(', a ',' at the
	// starting paren depth, or a ';'/'}' at the starting brace depth: used
	// inside a comma-separated argument/parameter list.
	RecoverComma RecoveryMode = iota
	// RecoverParen stops at the ')' closing the starting '(', or a ';'/'}'
	// at the starting brace depth: used for a single parenthesized
	// sub-expression (e.g. an if/while/switch condition).
	RecoverParen
	// RecoverBracket stops at the ']' closing the starting '[', or a
	// ';'/'}' at the starting brace depth: used for an array-size/index
	// expression.
	RecoverBracket
	// RecoverBrace stops at the '}' closing the starting '{': used for a
	// compound statement or struct/interface-block body.
	RecoverBrace
	// RecoverIListBrace is RecoverBrace, except a ';' found at a brace depth
	// deeper than the list's own opening depth forcibly rebalances
	// braceDepth back to it: an initializer list can't itself legally
	// contain a ';', so one appearing inside it means the list was never
	// closed.
	RecoverIListBrace
	// RecoverSemi stops at a ';' at the starting brace depth, or a '}' at a
	// shallower depth: used for a whole declaration/statement.
	RecoverSemi
)

// recoveryPoint captures the depths recoverFromError needs to recognize
// "the starting bracket's own closer" vs. "an enclosing block's terminator".
type recoveryPoint struct {
	parenDepth, bracketDepth, braceDepth int
}

func (p *Parser) mark() recoveryPoint {
	return recoveryPoint{p.parenDepth, p.bracketDepth, p.braceDepth}
}

// recoverFromError skips tokens from the current position until mode's
// synchronizing condition is met (spec.md §4.10), relative to start (the
// depths captured when the aborted construct was entered). It consumes the
// terminator it stops at only when that terminator closes the construct
// (Paren/Bracket/Brace's own closer, or Comma's own closer); it never
// consumes a ';'/'}' belonging to an enclosing block, leaving Recovery to
// persist one frame up.
func (p *Parser) recoverFromError(mode RecoveryMode, start recoveryPoint) {
	p.recovering = true
	defer func() { p.recovering = false }()

	for {
		if p.atEOF() {
			return
		}
		k := p.curKlass()

		switch mode {
		case RecoverComma:
			if k == token.RParen && p.parenDepth == start.parenDepth+1 {
				p.advance()
				return
			}
			if k == token.Comma && p.parenDepth == start.parenDepth {
				p.advance()
				return
			}
			if (k == token.Semicolon || k == token.RBrace) && p.braceDepth == start.braceDepth {
				return
			}

		case RecoverParen:
			if k == token.RParen && p.parenDepth == start.parenDepth+1 {
				p.advance()
				return
			}
			if (k == token.Semicolon || k == token.RBrace) && p.braceDepth == start.braceDepth {
				return
			}

		case RecoverBracket:
			if k == token.RBracket && p.bracketDepth == start.bracketDepth+1 {
				p.advance()
				return
			}
			if (k == token.Semicolon || k == token.RBrace) && p.braceDepth == start.braceDepth {
				return
			}

		case RecoverBrace:
			if k == token.RBrace && p.braceDepth == start.braceDepth+1 {
				p.advance()
				return
			}

		case RecoverIListBrace:
			if k == token.RBrace && p.braceDepth == start.braceDepth+1 {
				p.advance()
				return
			}
			if k == token.Semicolon && p.braceDepth > start.braceDepth {
				p.braceDepth = start.braceDepth
				return
			}

		case RecoverSemi:
			if k == token.Semicolon && p.braceDepth == start.braceDepth {
				p.advance()
				return
			}
			if k == token.RBrace && p.braceDepth < start.braceDepth {
				return
			}
		}

		p.advance()
	}
}
