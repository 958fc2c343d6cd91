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

// builtinTypeSpec describes the shape a single builtin-type keyword token
// maps to, independent of any Context (actual *ast.Type interning happens in
// resolveBuiltinType, which needs a Context to call into).
type builtinTypeSpec struct {
	kind       ast.Kind
	scalar     ast.ScalarKind
	vectorSize int
	cols, rows int
	opaqueName string
}

var builtinTypeSpecs = map[token.Klass]builtinTypeSpec{
	token.K_float: {kind: ast.KindScalar, scalar: ast.F32},
	token.K_int:   {kind: ast.KindScalar, scalar: ast.I32},
	token.K_uint:  {kind: ast.KindScalar, scalar: ast.U32},
	token.K_bool:  {kind: ast.KindScalar, scalar: ast.Bool},

	token.K_vec2: {kind: ast.KindVector, scalar: ast.F32, vectorSize: 2},
	token.K_vec3: {kind: ast.KindVector, scalar: ast.F32, vectorSize: 3},
	token.K_vec4: {kind: ast.KindVector, scalar: ast.F32, vectorSize: 4},

	token.K_ivec2: {kind: ast.KindVector, scalar: ast.I32, vectorSize: 2},
	token.K_ivec3: {kind: ast.KindVector, scalar: ast.I32, vectorSize: 3},
	token.K_ivec4: {kind: ast.KindVector, scalar: ast.I32, vectorSize: 4},

	token.K_uvec2: {kind: ast.KindVector, scalar: ast.U32, vectorSize: 2},
	token.K_uvec3: {kind: ast.KindVector, scalar: ast.U32, vectorSize: 3},
	token.K_uvec4: {kind: ast.KindVector, scalar: ast.U32, vectorSize: 4},

	token.K_bvec2: {kind: ast.KindVector, scalar: ast.Bool, vectorSize: 2},
	token.K_bvec3: {kind: ast.KindVector, scalar: ast.Bool, vectorSize: 3},
	token.K_bvec4: {kind: ast.KindVector, scalar: ast.Bool, vectorSize: 4},

	token.K_mat2: {kind: ast.KindMatrix, scalar: ast.F32, cols: 2, rows: 2},
	token.K_mat3: {kind: ast.KindMatrix, scalar: ast.F32, cols: 3, rows: 3},
	token.K_mat4: {kind: ast.KindMatrix, scalar: ast.F32, cols: 4, rows: 4},

	token.K_mat2x2: {kind: ast.KindMatrix, scalar: ast.F32, cols: 2, rows: 2},
	token.K_mat2x3: {kind: ast.KindMatrix, scalar: ast.F32, cols: 2, rows: 3},
	token.K_mat2x4: {kind: ast.KindMatrix, scalar: ast.F32, cols: 2, rows: 4},
	token.K_mat3x2: {kind: ast.KindMatrix, scalar: ast.F32, cols: 3, rows: 2},
	token.K_mat3x3: {kind: ast.KindMatrix, scalar: ast.F32, cols: 3, rows: 3},
	token.K_mat3x4: {kind: ast.KindMatrix, scalar: ast.F32, cols: 3, rows: 4},
	token.K_mat4x2: {kind: ast.KindMatrix, scalar: ast.F32, cols: 4, rows: 2},
	token.K_mat4x3: {kind: ast.KindMatrix, scalar: ast.F32, cols: 4, rows: 3},
	token.K_mat4x4: {kind: ast.KindMatrix, scalar: ast.F32, cols: 4, rows: 4},

	token.K_sampler2D:            {kind: ast.KindOpaque, opaqueName: "sampler2D"},
	token.K_sampler3D:            {kind: ast.KindOpaque, opaqueName: "sampler3D"},
	token.K_samplerCube:          {kind: ast.KindOpaque, opaqueName: "samplerCube"},
	token.K_sampler2DShadow:      {kind: ast.KindOpaque, opaqueName: "sampler2DShadow"},
	token.K_samplerCubeShadow:    {kind: ast.KindOpaque, opaqueName: "samplerCubeShadow"},
	token.K_sampler2DArray:       {kind: ast.KindOpaque, opaqueName: "sampler2DArray"},
	token.K_sampler2DArrayShadow: {kind: ast.KindOpaque, opaqueName: "sampler2DArrayShadow"},
	token.K_samplerExternalOES:   {kind: ast.KindOpaque, opaqueName: "samplerExternalOES"},
	token.K_isampler2D:           {kind: ast.KindOpaque, opaqueName: "isampler2D"},
	token.K_isampler3D:           {kind: ast.KindOpaque, opaqueName: "isampler3D"},
	token.K_isamplerCube:         {kind: ast.KindOpaque, opaqueName: "isamplerCube"},
	token.K_isampler2DArray:      {kind: ast.KindOpaque, opaqueName: "isampler2DArray"},
	token.K_usampler2D:           {kind: ast.KindOpaque, opaqueName: "usampler2D"},
	token.K_usampler3D:           {kind: ast.KindOpaque, opaqueName: "usampler3D"},
	token.K_usamplerCube:         {kind: ast.KindOpaque, opaqueName: "usamplerCube"},
	token.K_usampler2DArray:      {kind: ast.KindOpaque, opaqueName: "usampler2DArray"},
}

func (p *Parser) resolveBuiltinType(k token.Klass) *ast.Type {
	spec, ok := builtinTypeSpecs[k]
	if !ok {
		return ast.ErrorType
	}
	switch spec.kind {
	case ast.KindScalar:
		return p.sb.Types.Scalar(spec.scalar)
	case ast.KindVector:
		return p.sb.Types.Vector(spec.scalar, spec.vectorSize)
	case ast.KindMatrix:
		return p.sb.Types.Matrix(spec.scalar, spec.cols, spec.rows)
	case ast.KindOpaque:
		return p.sb.Types.Opaque(spec.opaqueName)
	default:
		return ast.ErrorType
	}
}

// isTypeSpecStart reports whether cur() can begin a type_spec: a builtin
// type keyword, `struct`, or an identifier naming an already-declared struct
// (spec.md §4.10's isStructName-based disambiguation).
func (p *Parser) isTypeSpecStart() bool {
	k := p.curKlass()
	if k == token.K_void {
		return true
	}
	if _, ok := builtinTypeSpecs[k]; ok {
		return true
	}
	if k == token.K_struct {
		return true
	}
	if k == token.Identifier && p.sb.IsStructName(p.curText()) {
		return true
	}
	return false
}

// parseTypeSpec parses a single type_spec: void, a builtin type keyword, a
// struct specifier/reference, or a bare struct-name identifier.
func (p *Parser) parseTypeSpec() *ast.Type {
	switch {
	case p.at(token.K_void):
		p.advance()
		return ast.VoidType

	case p.at(token.K_struct):
		return p.parseStructSpecifier()

	case p.at(token.Identifier) && p.sb.IsStructName(p.curText()):
		name := p.curText()
		p.advance()
		return p.sb.ResolveStructType(name)

	default:
		k := p.curKlass()
		if _, ok := builtinTypeSpecs[k]; ok {
			p.advance()
			return p.resolveBuiltinType(k)
		}
		p.errorf("expected a type, got %s", k)
		return ast.ErrorType
	}
}

// parseStructSpecifier parses `struct [Name] { field... }`, declaring the
// struct into the current scope the way C9's DeclareStruct expects
// (spec.md §4.10's decl_rest can wrap this in a full declaration, or it can
// appear bare as the type_spec of a field/variable declaration).
func (p *Parser) parseStructSpecifier() *ast.Type {
	start := p.pos
	p.advance() // 'struct'

	name := ""
	if p.at(token.Identifier) {
		name = p.curText()
		p.advance()
	}

	var fields []*ast.StructFieldDecl
	mark := p.mark()
	if _, ok := p.expect(token.LBrace); ok {
		for !p.at(token.RBrace) && !p.atEOF() {
			fields = append(fields, p.parseStructFieldDecl())
		}
		if _, ok := p.expect(token.RBrace); !ok {
			p.recoverFromError(RecoverBrace, mark)
		}
	}

	decl := ast.NewStructDecl(p.rangeFrom(start), name, fields)
	return p.sb.DeclareStruct(decl)
}

// parseStructFieldDecl parses one `type_spec declarator_list ';'` member of
// a struct body (interface-block members go through parseBlockFieldDecl).
func (p *Parser) parseStructFieldDecl() *ast.StructFieldDecl {
	start := p.pos
	elemType := p.parseTypeSpec()
	decls := p.parseDeclaratorList(false)
	if _, ok := p.expect(token.Semicolon); !ok {
		p.recoverFromError(RecoverSemi, p.mark())
	}
	return ast.NewStructFieldDecl(p.rangeFrom(start), elemType, decls)
}

// parseQualifiers parses the (possibly empty) leading qualifier sequence of
// a declaration: storage, precision, interpolation, invariant/precise, and
// a `layout(...)` clause.
func (p *Parser) parseQualifiers() ast.Qualifiers {
	var q ast.Qualifiers
	for {
		switch p.curKlass() {
		case token.K_const:
			q.Storage = ast.StorageConst
		case token.K_in:
			q.Storage = ast.StorageIn
		case token.K_out:
			q.Storage = ast.StorageOut
		case token.K_inout:
			q.Storage = ast.StorageInOut
		case token.K_uniform:
			q.Storage = ast.StorageUniform
		case token.K_buffer:
			q.Storage = ast.StorageBuffer
		case token.K_shared:
			q.Storage = ast.StorageShared
		case token.K_attribute:
			q.Storage = ast.StorageAttribute
		case token.K_varying:
			q.Storage = ast.StorageVarying
		case token.K_highp:
			q.Precision = ast.PrecisionHigh
		case token.K_mediump:
			q.Precision = ast.PrecisionMedium
		case token.K_lowp:
			q.Precision = ast.PrecisionLow
		case token.K_flat:
			q.Interp = ast.InterpolationFlat
		case token.K_smooth:
			q.Interp = ast.InterpolationSmooth
		case token.K_noperspective:
			q.Interp = ast.InterpolationNoperspective
		case token.K_invariant:
			q.Invariant = true
		case token.K_precise:
			q.Precise = true
		case token.K_centroid, token.K_patch, token.K_sample, token.K_coherent,
			token.K_volatile, token.K_restrict, token.K_readonly, token.K_writeonly:
			// Recognized but not load-bearing for this front end's type
			// checking; carried only so the token is consumed.
		case token.K_layout:
			p.parseLayoutQualifier(&q)
			continue
		default:
			return q
		}
		p.advance()
	}
}

// parseLayoutQualifier parses `layout '(' id ['=' literal] {',' ...} ')'`,
// recording each entry's raw text in q.Layout: the layout identifier space
// is large and version-dependent, and this front end does no codegen, so
// values are kept as opaque text rather than a typed struct (spec.md
// Non-goals).
func (p *Parser) parseLayoutQualifier(q *ast.Qualifiers) {
	p.advance() // 'layout'
	mark := p.mark()
	if _, ok := p.expect(token.LParen); !ok {
		p.recoverFromError(RecoverParen, mark)
		return
	}
	if q.Layout == nil {
		q.Layout = make(map[string]string)
	}
	for {
		if !p.at(token.Identifier) && !token.IsKeyword(p.curKlass()) {
			break
		}
		id := p.curText()
		p.advance()
		val := ""
		if _, ok := p.accept(token.Assign); ok {
			val = p.curText()
			p.advance()
		}
		q.Layout[id] = val
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		p.recoverFromError(RecoverParen, mark)
	}
}
