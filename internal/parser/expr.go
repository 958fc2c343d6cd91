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

package parser

import (
	"strconv"
	"strings"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// assignOps maps an assignment punctuator to the BinaryOp it builds.
var assignOps = map[token.Klass]ast.BinaryOp{
	token.Assign:       ast.BinaryAssign,
	token.MulAssign:    ast.BinaryMulAssign,
	token.DivAssign:    ast.BinaryDivAssign,
	token.ModAssign:    ast.BinaryModAssign,
	token.AddAssign:    ast.BinaryAddAssign,
	token.SubAssign:    ast.BinarySubAssign,
	token.LShiftAssign: ast.BinaryLShiftAssign,
	token.RShiftAssign: ast.BinaryRShiftAssign,
	token.AndAssign:    ast.BinaryAndAssign,
	token.XorAssign:    ast.BinaryXorAssign,
	token.OrAssign:     ast.BinaryOrAssign,
}

type binaryOpInfo struct {
	op   ast.BinaryOp
	prec int
}

// binaryPrec is the precedence-climbing table for every non-assignment
// binary operator, lowest (1) to highest (11), per spec.md §4.10's table.
// Comma and `?:` are handled outside this table, by parseExpr/
// parseConditionalExpr respectively.
var binaryPrec = map[token.Klass]binaryOpInfo{
	token.Or:          {ast.BinaryLogicalOr, 1},
	token.Xor:         {ast.BinaryLogicalXor, 2},
	token.And:         {ast.BinaryLogicalAnd, 3},
	token.VerticalBar: {ast.BinaryBitwiseOr, 4},
	token.Caret:       {ast.BinaryBitwiseXor, 5},
	token.Ampersand:   {ast.BinaryBitwiseAnd, 6},
	token.Equal:       {ast.BinaryEqual, 7},
	token.NotEqual:    {ast.BinaryNotEqual, 7},
	token.LAngle:      {ast.BinaryLess, 8},
	token.LessEq:      {ast.BinaryLessEq, 8},
	token.RAngle:      {ast.BinaryGreater, 8},
	token.GreaterEq:   {ast.BinaryGreaterEq, 8},
	token.LShift:      {ast.BinaryShiftLeft, 9},
	token.RShift:      {ast.BinaryShiftRight, 9},
	token.Plus:        {ast.BinaryPlus, 10},
	token.Minus:       {ast.BinaryMinus, 10},
	token.Star:        {ast.BinaryMul, 11},
	token.Slash:       {ast.BinaryDiv, 11},
	token.Percent:     {ast.BinaryMod, 11},
}

// prefixOps maps a prefix punctuator to the UnaryOp it builds.
var prefixOps = map[token.Klass]ast.UnaryOp{
	token.Increment: ast.UnaryPrefixInc,
	token.Decrement: ast.UnaryPrefixDec,
	token.Plus:      ast.UnaryIdentity,
	token.Minus:      ast.UnaryNegate,
	token.Bang:      ast.UnaryLogicalNot,
	token.Tilde:     ast.UnaryBitwiseNot,
}

// parseExpr parses `assignment_expr { ',' assignment_expr }`.
func (p *Parser) parseExpr() ast.Expr {
	start := p.pos
	e := p.parseAssignmentExpr()
	for p.at(token.Comma) {
		p.advance()
		rhs := p.parseAssignmentExpr()
		e = p.sb.BuildBinaryExpr(p.rangeFrom(start), ast.BinaryComma, e, rhs)
	}
	return e
}

// parseAssignmentExpr parses `unary_expr (assign_op assignment_expr)? |
// conditional_expr`: a permissive reading that parses a full
// conditional_expr first and, if an assignment operator follows, treats the
// already-parsed expression as the assignment's left operand (legal
// programs only ever have a bare unary_expr there, so nothing is lost).
func (p *Parser) parseAssignmentExpr() ast.Expr {
	start := p.pos
	lhs := p.parseConditionalExpr()
	if op, ok := assignOps[p.curKlass()]; ok {
		p.advance()
		rhs := p.parseAssignmentExpr()
		return p.sb.BuildBinaryExpr(p.rangeFrom(start), op, lhs, rhs)
	}
	return lhs
}

// parseConditionalExpr parses `binary_expr ['?' expr ':' assignment_expr]`.
func (p *Parser) parseConditionalExpr() ast.Expr {
	start := p.pos
	cond := p.parseBinaryExpr(1)
	if _, ok := p.accept(token.Question); !ok {
		return cond
	}
	then := p.parseExpr()
	if _, ok := p.expect(token.Colon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	els := p.parseAssignmentExpr()
	return p.sb.BuildSelectExpr(p.rangeFrom(start), cond, then, els)
}

// parseBinaryExpr climbs binaryPrec starting at minPrec, left-associatively
// (spec.md §4.10).
func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	start := p.pos
	lhs := p.parseUnaryExpr()
	for {
		info, ok := binaryPrec[p.curKlass()]
		if !ok || info.prec < minPrec {
			return lhs
		}
		p.advance()
		rhs := p.parseBinaryExpr(info.prec + 1)
		lhs = p.sb.BuildBinaryExpr(p.rangeFrom(start), info.op, lhs, rhs)
	}
}

// parseUnaryExpr parses `prefix_op unary_expr | postfix_expr`.
func (p *Parser) parseUnaryExpr() ast.Expr {
	start := p.pos
	if op, ok := prefixOps[p.curKlass()]; ok {
		p.advance()
		operand := p.parseUnaryExpr()
		return p.sb.BuildUnaryExpr(p.rangeFrom(start), op, operand)
	}
	return p.parsePostfixExpr()
}

// parsePostfixExpr parses `primary { '.' ID | '.' 'length' '(' ')' |
// '[' expr ']' | '++' | '--' }`.
func (p *Parser) parsePostfixExpr() ast.Expr {
	start := p.pos
	e := p.parsePrimaryExpr()
	for {
		switch p.curKlass() {
		case token.Dot:
			p.advance()
			if p.at(token.Identifier) && p.curText() == "length" && p.peek(1).Klass == token.LParen {
				p.advance() // 'length'
				mark := p.mark()
				p.advance() // '('
				if _, ok := p.expect(token.RParen); !ok {
					p.recoverFromError(RecoverParen, mark)
				}
				e = p.sb.BuildLengthExpr(p.rangeFrom(start), e)
				continue
			}
			field := p.curText()
			if _, ok := p.expect(token.Identifier); !ok {
				e = ast.NewErrorExpr(p.rangeFrom(start))
				continue
			}
			e = p.sb.BuildFieldOrSwizzleAccessExpr(p.rangeFrom(start), e, field)

		case token.LBracket:
			mark := p.mark()
			p.advance()
			index := p.parseExpr()
			if _, ok := p.expect(token.RBracket); !ok {
				p.recoverFromError(RecoverBracket, mark)
			}
			e = p.sb.BuildIndexAccessExpr(p.rangeFrom(start), e, index)

		case token.Increment:
			p.advance()
			e = p.sb.BuildUnaryExpr(p.rangeFrom(start), ast.UnaryPostfixInc, e)

		case token.Decrement:
			p.advance()
			e = p.sb.BuildUnaryExpr(p.rangeFrom(start), ast.UnaryPostfixDec, e)

		default:
			return e
		}
	}
}

// parsePrimaryExpr parses `ID | literal | '(' expr ')' | type_spec '('
// arg_list ')' | ID '(' arg_list ')'`.
func (p *Parser) parsePrimaryExpr() ast.Expr {
	start := p.pos
	switch {
	case p.at(token.LParen):
		mark := p.mark()
		p.advance()
		e := p.parseExpr()
		if _, ok := p.expect(token.RParen); !ok {
			p.recoverFromError(RecoverParen, mark)
		}
		return e

	case p.at(token.IntegerConstant), p.at(token.FloatConstant):
		return p.parseNumericLiteral()

	case p.at(token.K_true):
		p.advance()
		return p.sb.BuildLiteralExpr(p.rangeFrom(start), ast.NewBoolScalar(p.sb.Types, true))

	case p.at(token.K_false):
		p.advance()
		return p.sb.BuildLiteralExpr(p.rangeFrom(start), ast.NewBoolScalar(p.sb.Types, false))

	case p.isTypeSpecStart():
		target := p.parseTypeSpec()
		return p.parseCallArgs(start, func(args []ast.Expr) ast.Expr {
			return p.sb.BuildConstructorCallExpr(p.rangeFrom(start), target, args)
		})

	case p.at(token.Identifier):
		name := p.curText()
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallArgs(start, func(args []ast.Expr) ast.Expr {
				return p.sb.BuildFunctionCallExpr(p.rangeFrom(start), name, args)
			})
		}
		return p.sb.BuildNameAccessExpr(p.rangeFrom(start), name)

	default:
		p.errorf("expected an expression, got %s", p.curKlass())
		p.advance()
		return ast.NewErrorExpr(p.rangeFrom(start))
	}
}

// parseCallArgs parses `'(' [assignment_expr {',' assignment_expr}] ')'`
// and hands the argument list to build, shared by function and constructor
// calls since only the candidate-resolution rule differs between them.
func (p *Parser) parseCallArgs(start token.ID, build func([]ast.Expr) ast.Expr) ast.Expr {
	mark := p.mark()
	if _, ok := p.expect(token.LParen); !ok {
		p.recoverFromError(RecoverParen, mark)
		return build(nil)
	}

	var args []ast.Expr
	if !p.at(token.RParen) {
		for {
			args = append(args, p.parseAssignmentExpr())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		p.recoverFromError(RecoverParen, mark)
	}
	return build(args)
}

// parseNumericLiteral parses an IntegerConstant/FloatConstant token into a
// LiteralExpr, interpreting its u/U/f/F/l/L suffix the way the scanner (C3)
// spells it (spec.md §4.3).
func (p *Parser) parseNumericLiteral() ast.Expr {
	start := p.pos
	tok := p.cur()
	text := tok.Text.Text()
	p.advance()
	return p.sb.BuildLiteralExpr(p.rangeFrom(start), parseLiteralValue(p.sb.Types, tok.Klass, text))
}

func parseLiteralValue(ctx *ast.Context, klass token.Klass, text string) ast.ConstValue {
	if klass == token.FloatConstant {
		trimmed := strings.TrimRight(text, "fFlL")
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return ast.ErrorValue
		}
		kind := ast.F32
		if strings.ContainsAny(text, "lL") {
			kind = ast.F64
		}
		return ast.NewFloatScalar(ctx, kind, f)
	}

	unsigned := strings.ContainsAny(text, "uU")
	trimmed := strings.TrimRight(text, "uU")
	normalized := normalizeIntLiteral(trimmed)
	if unsigned {
		u, err := strconv.ParseUint(normalized, 0, 64)
		if err != nil {
			return ast.ErrorValue
		}
		return ast.NewUintScalar(ctx, ast.U32, u)
	}
	i, err := strconv.ParseInt(normalized, 0, 64)
	if err != nil {
		return ast.ErrorValue
	}
	return ast.NewIntScalar(ctx, ast.I32, i)
}

// normalizeIntLiteral rewrites a legacy-octal literal ("0755") into Go's
// "0o755" so strconv.ParseInt(..., 0, ...) agrees with GLSL's C-style octal,
// mirroring the scanner's own normalizeIntLiteral (internal/scanner).
func normalizeIntLiteral(s string) string {
	if len(s) > 1 && s[0] == '0' && s[1] != 'x' && s[1] != 'X' && s[1] != 'o' && s[1] != 'O' {
		return "0o" + s[1:]
	}
	return s
}
