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

// Package ppeval implements the PP expression evaluator (C5): a
// precedence-climbing evaluator over 64-bit integers for `#if`/`#elif`
// conditions, operating on an already macro-expanded token sequence in
// which `defined X`/`defined(X)` have already been replaced by the caller
// (spec.md §4.5).
package ppeval

import (
	"strconv"

	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// TokenSource yields the macro-expanded tokens of one #if/#elif condition,
// one at a time, ending with an Eof-klass token.
type TokenSource interface {
	Next() token.PPToken
}

// sliceSource adapts a []token.PPToken to TokenSource; used by the
// preprocessor, which has already collected+expanded the full line.
type sliceSource struct {
	toks []token.PPToken
	pos  int
}

// NewSliceSource wraps a fully-materialized token slice as a TokenSource.
func NewSliceSource(toks []token.PPToken) TokenSource { return &sliceSource{toks: toks} }

func (s *sliceSource) Next() token.PPToken {
	if s.pos >= len(s.toks) {
		return token.PPToken{Klass: token.Eof}
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

// precedence levels, 1 = lowest (spec.md §4.5). Unary operators bind
// tighter than any binary operator and are handled separately.
var binaryPrecedence = map[token.Klass]int{
	token.Or:         1, // ||
	token.And:        2, // &&
	token.VerticalBar: 3, // |
	token.Caret:      4, // ^
	token.Ampersand:  5, // &
	token.Equal:      6,
	token.NotEqual:   6,
	token.LAngle:     7,
	token.LessEq:     7,
	token.RAngle:     7,
	token.GreaterEq:  7,
	token.LShift:     8,
	token.RShift:     8,
	token.Plus:       9,
	token.Minus:      9,
	token.Star:       10,
	token.Slash:      10,
	token.Percent:    10,
}

// Eval parses and evaluates a full `#if`-style condition from src,
// returning (value, true) on success. Returns (0, false) on syntactic
// imbalance (spec.md: "Returns None ... the preprocessor maps that to
// false").
func Eval(src TokenSource) (int64, bool) {
	p := &parser{src: src}
	p.advance()
	v, ok := p.parseBinary(0)
	if !ok {
		return 0, false
	}
	if p.cur.Klass != token.Eof {
		return 0, false // trailing garbage: imbalance
	}
	return v, true
}

type parser struct {
	src TokenSource
	cur token.PPToken
}

func (p *parser) advance() { p.cur = p.src.Next() }

func (p *parser) parseBinary(minPrec int) (int64, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return 0, false
	}
	for {
		prec, isBinary := binaryPrecedence[p.cur.Klass]
		if !isBinary || prec < minPrec {
			return lhs, true
		}
		op := p.cur.Klass
		p.advance()
		// left-associative: next min precedence is prec+1
		rhs, ok := p.parseBinary(prec + 1)
		if !ok {
			return 0, false
		}
		lhs = applyBinary(op, lhs, rhs)
	}
}

func (p *parser) parseUnary() (int64, bool) {
	switch p.cur.Klass {
	case token.Plus:
		p.advance()
		return p.parseUnary()
	case token.Minus:
		p.advance()
		v, ok := p.parseUnary()
		return -v, ok
	case token.Tilde:
		p.advance()
		v, ok := p.parseUnary()
		return ^v, ok
	case token.Bang:
		p.advance()
		v, ok := p.parseUnary()
		if v == 0 {
			return 1, ok
		}
		return 0, ok
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (int64, bool) {
	switch p.cur.Klass {
	case token.LParen:
		p.advance()
		v, ok := p.parseBinary(0)
		if !ok {
			return 0, false
		}
		if p.cur.Klass != token.RParen {
			return 0, false
		}
		p.advance()
		return v, true
	case token.IntegerConstant:
		v, ok := parseIntLiteral(p.cur.Text.Text())
		p.advance()
		return v, ok
	case token.Identifier:
		// An identifier surviving to here (not `defined`, already handled
		// by the caller) is an undefined macro name; GLSL's C-derived rule
		// substitutes 0 for any remaining identifier.
		p.advance()
		return 0, true
	case token.K_true:
		p.advance()
		return 1, true
	case token.K_false:
		p.advance()
		return 0, true
	default:
		return 0, false
	}
}

func applyBinary(op token.Klass, lhs, rhs int64) int64 {
	switch op {
	case token.Plus:
		return lhs + rhs
	case token.Minus:
		return lhs - rhs
	case token.Star:
		return lhs * rhs
	case token.Slash:
		if rhs == 0 {
			return 0
		}
		return lhs / rhs
	case token.Percent:
		if rhs == 0 {
			return 0
		}
		return lhs % rhs
	// Shift amounts are taken mod 64 (rhs&63). Operands are int64, so a
	// right shift is arithmetic (sign-extending) and a left shift wraps on
	// overflow.
	case token.LShift:
		return lhs << uint(rhs&63)
	case token.RShift:
		return lhs >> uint(rhs&63)
	case token.LAngle:
		return boolToInt(lhs < rhs)
	case token.LessEq:
		return boolToInt(lhs <= rhs)
	case token.RAngle:
		return boolToInt(lhs > rhs)
	case token.GreaterEq:
		return boolToInt(lhs >= rhs)
	case token.Equal:
		return boolToInt(lhs == rhs)
	case token.NotEqual:
		return boolToInt(lhs != rhs)
	case token.Ampersand:
		return lhs & rhs
	case token.Caret:
		return lhs ^ rhs
	case token.VerticalBar:
		return lhs | rhs
	case token.And:
		return boolToInt(lhs != 0 && rhs != 0)
	case token.Or:
		return boolToInt(lhs != 0 || rhs != 0)
	default:
		return 0
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func parseIntLiteral(text string) (int64, bool) {
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		// Overflow of a literal wraps rather than faulting, consistent
		// with the evaluator's own arithmetic (spec.md §4.5).
		uv, uerr := strconv.ParseUint(text, 0, 64)
		if uerr != nil {
			return 0, false
		}
		return int64(uv), true
	}
	return v, true
}
