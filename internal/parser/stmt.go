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
	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// looksLikeConstructorCallStart reports whether cur() starts a constructor
// call expression (`type_spec '(' ...`) rather than a declaration, the only
// ambiguity statement position needs to resolve (spec.md §4.10): qualifiers
// and `struct` never start an expression, so only a single-token type_spec
// (builtin keyword or struct-name identifier) immediately followed by '('
// can be read either way.
func (p *Parser) looksLikeConstructorCallStart() bool {
	k := p.curKlass()
	if _, ok := builtinTypeSpecs[k]; ok {
		return p.peek(1).Klass == token.LParen
	}
	if k == token.Identifier && p.sb.IsStructName(p.curText()) {
		return p.peek(1).Klass == token.LParen
	}
	return false
}

// parseStmt parses one `stmt` production (spec.md §4.10).
func (p *Parser) parseStmt() ast.Stmt {
	start := p.pos
	switch {
	case p.at(token.Semicolon):
		p.advance()
		return ast.NewEmptyStmt(p.rangeFrom(start))

	case p.at(token.LBrace):
		return p.parseCompoundStmt()

	case p.at(token.K_if):
		return p.parseIfStmt()

	case p.at(token.K_while):
		return p.parseWhileStmt()

	case p.at(token.K_do):
		return p.parseDoWhileStmt()

	case p.at(token.K_for):
		return p.parseForStmt()

	case p.at(token.K_switch):
		return p.parseSwitchStmt()

	case p.at(token.K_case):
		return p.parseCaseLabel()

	case p.at(token.K_default):
		return p.parseDefaultLabel()

	case p.at(token.K_break):
		return p.parseSimpleJump(start, ast.JumpBreak)

	case p.at(token.K_continue):
		return p.parseSimpleJump(start, ast.JumpContinue)

	case p.at(token.K_discard):
		return p.parseSimpleJump(start, ast.JumpDiscard)

	case p.at(token.K_return):
		return p.parseReturnStmt()

	case p.isQualifierStart():
		return p.parseDeclStmt()

	case p.isTypeSpecStart() && !p.looksLikeConstructorCallStart():
		return p.parseDeclStmt()

	default:
		return p.parseExprStmt()
	}
}

// parseCompoundStmtBody parses `'{' { stmt } '}'` without bracketing a
// lexical scope of its own: a function body shares its function's scope
// directly (spec.md §4.9), while parseCompoundStmt (used everywhere a
// compound statement appears nested inside another statement) opens one.
func (p *Parser) parseCompoundStmtBody() *ast.CompoundStmt {
	start := p.pos
	mark := p.mark()
	if _, ok := p.expect(token.LBrace); !ok {
		p.recoverFromError(RecoverBrace, mark)
		return p.sb.BuildCompoundStmt(p.rangeFrom(start), nil)
	}

	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.atEOF() {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		p.recoverFromError(RecoverBrace, mark)
	}
	return p.sb.BuildCompoundStmt(p.rangeFrom(start), stmts)
}

// parseCompoundStmt parses a nested compound statement, bracketing its own
// lexical block scope.
func (p *Parser) parseCompoundStmt() ast.Stmt {
	p.sb.EnterLexicalBlockScope()
	s := p.parseCompoundStmtBody()
	p.sb.LeaveLexicalBlockScope()
	return s
}

// parseParenExpr parses `'(' expr ')'`.
func (p *Parser) parseParenExpr() ast.Expr {
	start := p.pos
	mark := p.mark()
	if _, ok := p.expect(token.LParen); !ok {
		p.recoverFromError(RecoverParen, mark)
		return ast.NewErrorExpr(p.rangeFrom(start))
	}
	e := p.parseExpr()
	if _, ok := p.expect(token.RParen); !ok {
		p.recoverFromError(RecoverParen, mark)
	}
	return e
}

func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'if'
	cond := p.parseParenExpr()
	then := p.parseStmt()
	var els ast.Stmt
	if _, ok := p.accept(token.K_else); ok {
		els = p.parseStmt()
	}
	return p.sb.BuildIfStmt(p.rangeFrom(start), cond, then, els)
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'while'
	cond := p.parseParenExpr()
	p.sb.EnterLoop()
	body := p.parseStmt()
	p.sb.LeaveLoop()
	return p.sb.BuildWhileStmt(p.rangeFrom(start), cond, body)
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'do'
	p.sb.EnterLoop()
	body := p.parseStmt()
	p.sb.LeaveLoop()
	if _, ok := p.expect(token.K_while); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	cond := p.parseParenExpr()
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return p.sb.BuildDoWhileStmt(p.rangeFrom(start), body, cond)
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'for'
	mark := p.mark()
	if _, ok := p.expect(token.LParen); !ok {
		p.recoverFromError(RecoverParen, mark)
		return ast.NewErrorStmt(p.rangeFrom(start))
	}

	p.sb.EnterLexicalBlockScope()

	var init ast.Stmt
	switch {
	case p.at(token.Semicolon):
		p.advance()
	case p.isTypeSpecStart() && !p.looksLikeConstructorCallStart():
		init = p.parseDeclStmt()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expr
	if !p.at(token.Semicolon) {
		cond = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, mark)
	}

	var loop ast.Expr
	if !p.at(token.RParen) {
		loop = p.parseExpr()
	}
	if _, ok := p.expect(token.RParen); !ok {
		p.recoverFromError(RecoverParen, mark)
	}

	p.sb.EnterLoop()
	body := p.parseStmt()
	p.sb.LeaveLoop()

	p.sb.LeaveLexicalBlockScope()

	return p.sb.BuildForStmt(p.rangeFrom(start), init, cond, loop, body)
}

func (p *Parser) parseSwitchStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'switch'
	test := p.parseParenExpr()
	p.sb.EnterSwitchBody()
	body := p.parseCompoundStmt()
	p.sb.LeaveSwitchBody()
	return p.sb.BuildSwitchStmt(p.rangeFrom(start), test, body)
}

func (p *Parser) parseCaseLabel() ast.Stmt {
	start := p.pos
	p.advance() // 'case'
	value := p.parseExpr()
	if _, ok := p.expect(token.Colon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return p.sb.BuildLabelStmt(p.rangeFrom(start), ast.LabelCase, value)
}

func (p *Parser) parseDefaultLabel() ast.Stmt {
	start := p.pos
	p.advance() // 'default'
	if _, ok := p.expect(token.Colon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return p.sb.BuildLabelStmt(p.rangeFrom(start), ast.LabelDefault, nil)
}

func (p *Parser) parseSimpleJump(start token.ID, kind ast.JumpKind) ast.Stmt {
	p.advance() // the keyword
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return p.sb.BuildJumpStmt(p.rangeFrom(start), kind)
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.pos
	p.advance() // 'return'
	var value ast.Expr
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return p.sb.BuildReturnStmt(p.rangeFrom(start), value)
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.pos
	e := p.parseExpr()
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return ast.NewExprStmt(p.rangeFrom(start), e)
}

// parseDeclStmt parses a local variable (or bare struct) declaration
// appearing in statement position: `qualifier_seq? type_spec
// declarator_list? ';'`.
func (p *Parser) parseDeclStmt() ast.Stmt {
	start := p.pos
	var q ast.Qualifiers
	if p.isQualifierStart() {
		q = p.parseQualifiers()
	}
	elemType := p.parseTypeSpec()

	if !p.at(token.Identifier) {
		if _, ok := p.expect(token.Semicolon); !ok {
			p.recoverFromError(RecoverSemi, p.mark())
		}
		return ast.NewDeclStmt(p.rangeFrom(start), ast.NewEmptyDecl(p.rangeFrom(start), elemType))
	}

	decls := p.parseDeclaratorList(true)
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}

	decl := ast.NewVariableDecl(p.rangeFrom(start), q, elemType, decls)
	p.sb.DeclareVariable(decl)
	return ast.NewDeclStmt(p.rangeFrom(start), decl)
}
