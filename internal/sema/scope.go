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

package sema

import "github.com/daiyousei-qz/glsld-sub001/internal/ast"

// varSymbol is a resolved variable, parameter or struct-instance-name entry
// in a scope's symbol table. value is non-nil when the symbol is a `const`
// whose initializer folded successfully, letting later constant expressions
// (e.g. array sizes) reference it.
type varSymbol struct {
	name  string
	typ   *ast.Type
	decl  ast.Decl
	value *ast.ConstValue
}

// scope is one level of the lexical symbol table: global, function or block.
// Function overload sets and struct names are only ever recorded at the
// global level, mirroring GLSL's flat namespace for both (spec.md §4.9).
type scope struct {
	parent  *scope
	vars    map[string]*varSymbol
	structs map[string]*ast.Type
	funcs   map[string][]*ast.FunctionDecl
}

func newScope(parent *scope) *scope { return &scope{parent: parent} }

func (s *scope) root() *scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

func (s *scope) declareVar(name string, typ *ast.Type, decl ast.Decl, value *ast.ConstValue) {
	if name == "" {
		return
	}
	if s.vars == nil {
		s.vars = make(map[string]*varSymbol)
	}
	s.vars[name] = &varSymbol{name: name, typ: typ, decl: decl, value: value}
}

func (s *scope) lookupVar(name string) *varSymbol {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v
		}
	}
	return nil
}

func (s *scope) declareStruct(name string, t *ast.Type) {
	if name == "" {
		return
	}
	root := s.root()
	if root.structs == nil {
		root.structs = make(map[string]*ast.Type)
	}
	root.structs[name] = t
}

func (s *scope) lookupStruct(name string) *ast.Type {
	return s.root().structs[name]
}

// declareFunc adds decl to the name's overload set. Unlike declareVar this
// never overwrites: redeclaring the same signature is a builder-level
// diagnostic, not a silent shadow.
func (s *scope) declareFunc(decl *ast.FunctionDecl) {
	root := s.root()
	if root.funcs == nil {
		root.funcs = make(map[string][]*ast.FunctionDecl)
	}
	root.funcs[decl.Name] = append(root.funcs[decl.Name], decl)
}

func (s *scope) lookupFuncs(name string) []*ast.FunctionDecl {
	return s.root().funcs[name]
}
