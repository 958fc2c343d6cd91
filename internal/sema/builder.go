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

// Package sema implements the AST builder (C9): the component that turns
// the shapes the parser (C10) recognizes into a typed, position-annotated
// AST. It resolves names against a scope chain, inserts implicit casts,
// folds constant expressions and resolves function/constructor overloads.
//
// Node allocation itself is ordinary Go allocation rather than a hand-rolled
// bump arena: Go's garbage collector already amortizes short-lived
// allocations of this shape, and a translation unit's worth of AST nodes is
// small enough that a custom arena buys nothing but complexity (documented
// deviation).
package sema

import (
	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
	"github.com/daiyousei-qz/glsld-sub001/internal/tokstream"
)

// Builder holds the state of one translation unit's AST construction pass:
// the type interning context, the diagnostic sink and the current scope
// chain. The parser drives it call by call as it recognizes each grammar
// production.
type Builder struct {
	Types  *ast.Context
	diags  *diag.Sink
	stream *tokstream.Stream

	global *scope
	cur    *scope

	returnType *ast.Type // declared return type of the open function scope, nil outside one

	loopDepth   int
	switchDepth int
}

// NewBuilder constructs a Builder over an empty global scope. stream is
// used only to resolve SyntaxRanges to source positions for diagnostics.
func NewBuilder(types *ast.Context, diags *diag.Sink, stream *tokstream.Stream) *Builder {
	g := newScope(nil)
	return &Builder{Types: types, diags: diags, stream: stream, global: g, cur: g}
}

// ImportBuiltins seeds the global scope with builtin variables and function
// overloads, e.g. from a precompiled preamble (spec.md §4.12). Safe to call
// more than once; later calls simply add more overloads/symbols.
func (b *Builder) ImportBuiltins(vars []BuiltinVar, funcs []*ast.FunctionDecl) {
	for _, v := range vars {
		b.global.declareVar(v.Name, v.Type, nil, nil)
	}
	for _, f := range funcs {
		b.global.declareFunc(f)
	}
}

// BuiltinVar names a predeclared variable (e.g. gl_Position) injected
// outside the normal declaration-statement path.
type BuiltinVar struct {
	Name string
	Type *ast.Type
}

func (b *Builder) rangeOf(rng ast.SyntaxRange) token.Range {
	if b.stream == nil || rng.Start >= rng.End || int(rng.End) > b.stream.Len() {
		return token.Range{}
	}
	return b.stream.At(rng.Start).SpelledRange
}

func (b *Builder) errorf(rng ast.SyntaxRange, format string, args ...interface{}) {
	b.diags.Errorf(b.rangeOf(rng), format, args...)
}

// EnterFunctionScope opens a new scope for a function body and records its
// declared return type, consulted by ReturnType for `return` statement
// checking.
func (b *Builder) EnterFunctionScope(returnType *ast.Type) {
	b.cur = newScope(b.cur)
	b.returnType = returnType
}

// LeaveFunctionScope closes the scope opened by the matching
// EnterFunctionScope.
func (b *Builder) LeaveFunctionScope() {
	if b.cur.parent != nil {
		b.cur = b.cur.parent
	}
	b.returnType = nil
}

// EnterLexicalBlockScope opens a new block scope, e.g. for a compound
// statement, a for-loop header or an if/while/do body.
func (b *Builder) EnterLexicalBlockScope() {
	b.cur = newScope(b.cur)
}

// LeaveLexicalBlockScope closes the scope opened by the matching
// EnterLexicalBlockScope.
func (b *Builder) LeaveLexicalBlockScope() {
	if b.cur.parent != nil {
		b.cur = b.cur.parent
	}
}

// ReturnType reports the declared return type of the innermost open
// function scope, or nil if none is open.
func (b *Builder) ReturnType() *ast.Type { return b.returnType }

// IsStructName reports whether text names a struct type visible from the
// current scope, used by the parser to disambiguate a bare identifier in
// statement position (spec.md §4.10).
func (b *Builder) IsStructName(text string) bool {
	return b.cur.lookupStruct(text) != nil
}

// ResolveStructType returns the interned Type a previously declared struct
// name refers to, or nil if text does not name one, used by the parser to
// turn a bare struct-name type_spec into a full *ast.Type.
func (b *Builder) ResolveStructType(text string) *ast.Type {
	return b.cur.lookupStruct(text)
}
