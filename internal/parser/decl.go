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

// isQualifierStart reports whether cur() can begin a qualifier_seq.
func (p *Parser) isQualifierStart() bool {
	switch p.curKlass() {
	case token.K_const, token.K_in, token.K_out, token.K_inout, token.K_uniform, token.K_buffer,
		token.K_shared, token.K_attribute, token.K_varying, token.K_highp, token.K_mediump, token.K_lowp,
		token.K_flat, token.K_smooth, token.K_noperspective, token.K_invariant, token.K_precise,
		token.K_centroid, token.K_patch, token.K_sample, token.K_coherent, token.K_volatile,
		token.K_restrict, token.K_readonly, token.K_writeonly, token.K_layout:
		return true
	default:
		return false
	}
}

// parseExternalDeclaration parses one top-level `declaration` production
// (spec.md §4.10).
func (p *Parser) parseExternalDeclaration() ast.Decl {
	start := p.pos

	switch {
	case p.at(token.Semicolon):
		p.advance()
		return nil

	case p.at(token.K_precision):
		return p.parsePrecisionDecl(start)

	case p.isQualifierStart():
		q := p.parseQualifiers()
		switch {
		case p.at(token.Semicolon):
			p.advance()
			return ast.NewEmptyDecl(p.rangeFrom(start), ast.VoidType)
		case p.at(token.Identifier) && p.peek(1).Klass == token.LBrace:
			return p.parseInterfaceBlockDecl(start, q)
		default:
			elemType := p.parseTypeSpec()
			return p.parseDeclRest(start, q, elemType)
		}

	case p.isTypeSpecStart():
		elemType := p.parseTypeSpec()
		return p.parseDeclRest(start, ast.Qualifiers{}, elemType)

	default:
		p.errorf("expected a declaration, got %s", p.curKlass())
		p.advance()
		return ast.NewErrorDecl(p.rangeFrom(start))
	}
}

// parsePrecisionDecl parses `precision (highp|mediump|lowp) type_spec ';'`.
func (p *Parser) parsePrecisionDecl(start token.ID) ast.Decl {
	p.advance() // 'precision'

	prec := ast.PrecisionUnspecified
	switch p.curKlass() {
	case token.K_highp:
		prec = ast.PrecisionHigh
		p.advance()
	case token.K_mediump:
		prec = ast.PrecisionMedium
		p.advance()
	case token.K_lowp:
		prec = ast.PrecisionLow
		p.advance()
	default:
		p.errorf("expected a precision qualifier, got %s", p.curKlass())
	}

	elemType := p.parseTypeSpec()
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return ast.NewPrecisionDecl(p.rangeFrom(start), prec, elemType)
}

// parseDeclRest parses `decl_rest` given that qualifiers q and elemType have
// already been recognized: either a function_tail or a declarator_list ';'.
// A type_spec with no following identifier (a bare `struct Foo { ... };`) is
// a legal declaration on its own, introducing only a type.
func (p *Parser) parseDeclRest(start token.ID, q ast.Qualifiers, elemType *ast.Type) ast.Decl {
	if !p.at(token.Identifier) {
		if _, ok := p.expect(token.Semicolon); !ok {
			p.recoverFromError(RecoverSemi, p.mark())
		}
		return ast.NewEmptyDecl(p.rangeFrom(start), elemType)
	}

	name := p.curText()
	p.advance()

	if p.at(token.LParen) {
		return p.parseFunctionTail(start, name, elemType)
	}

	first := p.parseOneDeclarator(name, true)
	decls := p.parseDeclaratorListContinuing(first)
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}

	decl := ast.NewVariableDecl(p.rangeFrom(start), q, elemType, decls)
	p.sb.DeclareVariable(decl)
	return decl
}

// parseFunctionTail parses `'(' param_list ')' (';' | compound_stmt)`, name
// and '(' already known to follow. Parameters are declared directly into
// the function's own scope, entered before the parameter list so forward
// references within default-less GLSL parameter lists never occur but the
// scope is ready for the body regardless.
func (p *Parser) parseFunctionTail(start token.ID, name string, returnType *ast.Type) *ast.FunctionDecl {
	mark := p.mark()
	p.advance() // '('
	p.sb.EnterFunctionScope(returnType)

	var params []*ast.ParamDecl
	switch {
	case p.at(token.K_void) && p.peek(1).Klass == token.RParen:
		p.advance()
	case !p.at(token.RParen):
		for {
			params = append(params, p.parseParamDecl())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		p.recoverFromError(RecoverParen, mark)
	}

	var body *ast.CompoundStmt
	if _, ok := p.accept(token.Semicolon); !ok {
		body = p.parseCompoundStmtBody()
	}
	p.sb.LeaveFunctionScope()

	decl := ast.NewFunctionDecl(p.rangeFrom(start), name, returnType, params, body)
	p.sb.DeclareFunction(decl)
	return decl
}

// parseParamDecl parses one `qualifier_seq type_spec [ID] [array_spec]`
// function parameter.
func (p *Parser) parseParamDecl() *ast.ParamDecl {
	start := p.pos
	q := p.parseQualifiers()
	elemType := p.parseTypeSpec()

	name := ""
	if p.at(token.Identifier) {
		name = p.curText()
		p.advance()
	}
	arraySizes := p.parseArraySpec()

	decl := ast.NewParamDecl(p.rangeFrom(start), q, elemType, name, arraySizes)
	p.sb.DeclareParam(decl)
	return decl
}

// parseArraySpec parses `{ '[' [expr] ']' }`, one nil entry per unsized
// dimension.
func (p *Parser) parseArraySpec() []ast.Expr {
	var sizes []ast.Expr
	for p.at(token.LBracket) {
		mark := p.mark()
		p.advance()
		var size ast.Expr
		if !p.at(token.RBracket) {
			size = p.parseExpr()
		}
		if _, ok := p.expect(token.RBracket); !ok {
			p.recoverFromError(RecoverBracket, mark)
		}
		sizes = append(sizes, size)
	}
	return sizes
}

// parseOneDeclarator parses the `[array_spec] ['=' initializer]` tail of a
// declarator whose name has already been consumed.
func (p *Parser) parseOneDeclarator(name string, allowInit bool) ast.Declarator {
	sizes := p.parseArraySpec()
	var init ast.Expr
	if allowInit {
		if _, ok := p.accept(token.Assign); ok {
			init = p.parseInitializer()
		}
	}
	return ast.Declarator{Name: name, ArraySizes: sizes, Initializer: init}
}

// parseDeclaratorListContinuing parses `{ ',' declarator }` given the first
// declarator has already been parsed.
func (p *Parser) parseDeclaratorListContinuing(first ast.Declarator) []ast.Declarator {
	decls := []ast.Declarator{first}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			return decls
		}
		if !p.at(token.Identifier) {
			p.errorf("expected an identifier, got %s", p.curKlass())
			return decls
		}
		name := p.curText()
		p.advance()
		decls = append(decls, p.parseOneDeclarator(name, true))
	}
}

// parseDeclaratorList parses a full `declarator_list` (or
// `declarator_no_init` list when allowInit is false) starting fresh at the
// first identifier, used by struct/interface-block field declarations.
func (p *Parser) parseDeclaratorList(allowInit bool) []ast.Declarator {
	if !p.at(token.Identifier) {
		p.errorf("expected an identifier, got %s", p.curKlass())
		return nil
	}
	name := p.curText()
	p.advance()
	first := p.parseOneDeclarator(name, allowInit)
	return p.parseDeclaratorListContinuing(first)
}

// parseInitializer parses `initializer_list | assignment_expr`.
func (p *Parser) parseInitializer() ast.Expr {
	if p.at(token.LBrace) {
		return p.parseInitializerList()
	}
	return p.parseAssignmentExpr()
}

// parseInitializerList parses `'{' [initializer {',' initializer} [',']] '}'`.
func (p *Parser) parseInitializerList() ast.Expr {
	start := p.pos
	mark := p.mark()
	p.advance() // '{'

	var elems []ast.Expr
	if !p.at(token.RBrace) {
		for {
			elems = append(elems, p.parseInitializer())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
			if p.at(token.RBrace) {
				break // trailing comma
			}
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		p.recoverFromError(RecoverIListBrace, mark)
	}
	return p.sb.BuildInitializerListExpr(p.rangeFrom(start), elems)
}

// parseInterfaceBlockDecl parses `ID '{' { block_field } '}'
// [declarator_no_init] ';'`, the block name's identifier already confirmed
// (but not consumed) by the caller.
func (p *Parser) parseInterfaceBlockDecl(start token.ID, q ast.Qualifiers) ast.Decl {
	blockName := p.curText()
	p.advance()

	braceMark := p.mark()
	var fields []*ast.BlockFieldDecl
	if _, ok := p.expect(token.LBrace); !ok {
		p.recoverFromError(RecoverBrace, braceMark)
		return ast.NewErrorDecl(p.rangeFrom(start))
	}
	for !p.at(token.RBrace) && !p.atEOF() {
		fields = append(fields, p.parseBlockFieldDecl())
	}
	if _, ok := p.expect(token.RBrace); !ok {
		p.recoverFromError(RecoverBrace, braceMark)
	}

	instanceName := ""
	var arraySizes []ast.Expr
	if p.at(token.Identifier) {
		instanceName = p.curText()
		p.advance()
		arraySizes = p.parseArraySpec()
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}

	decl := ast.NewInterfaceBlockDecl(p.rangeFrom(start), q, blockName, fields, instanceName, arraySizes)
	p.sb.DeclareInterfaceBlock(decl)
	return decl
}

// parseBlockFieldDecl parses one `type_spec declarator_no_init_list ';'`
// member of an interface block body (spec.md: interface block fields never
// carry their own initializer).
func (p *Parser) parseBlockFieldDecl() *ast.BlockFieldDecl {
	start := p.pos
	elemType := p.parseTypeSpec()
	decls := p.parseDeclaratorList(false)
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return ast.NewBlockFieldDecl(p.rangeFrom(start), elemType, decls)
}
