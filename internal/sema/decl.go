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

// ArrayTypeOf builds the (possibly multi-dimensional) array type for a
// declarator's elemType plus its bracket sizes, outermost first. A
// non-constant or missing size yields an unsized dimension (-1); the
// corresponding diagnostic, if any, is the caller's responsibility since
// only it knows whether an unsized dimension is legal in context (e.g.
// function parameters require one, most declarators don't).
func (b *Builder) ArrayTypeOf(elemType *ast.Type, sizes []ast.Expr) *ast.Type {
	t := elemType
	for i := len(sizes) - 1; i >= 0; i-- {
		t = b.Types.Array(t, b.constArraySize(sizes[i]))
	}
	return t
}

func (b *Builder) constArraySize(sizeExpr ast.Expr) int {
	if sizeExpr == nil {
		return -1
	}
	v, ok := sizeExpr.ConstValue()
	if !ok {
		b.errorf(sizeExpr.Range(), "array size must be a constant expression")
		return -1
	}
	if v.Type.Kind != ast.KindScalar || v.Type.Scalar == ast.Bool || v.Type.Scalar.IsFloat() {
		b.errorf(sizeExpr.Range(), "array size must be an integer constant")
		return -1
	}
	n := v.Elements[0].AsInt64()
	if n <= 0 {
		b.errorf(sizeExpr.Range(), "array size must be positive")
		return -1
	}
	return int(n)
}

// DeclareVariable wires each of decl's declarators into the current scope,
// computing its full (possibly array) type, checking const-ness and
// initializer compatibility (spec.md §4.9).
func (b *Builder) DeclareVariable(decl *ast.VariableDecl) {
	for i := range decl.Declarators {
		d := &decl.Declarators[i]
		varType := b.ArrayTypeOf(decl.ElemType, d.ArraySizes)

		var value *ast.ConstValue
		if d.Initializer != nil {
			d.Initializer = b.CheckInitializerAgainstType(decl.Range(), varType, d.Initializer)
			if v, ok := d.Initializer.ConstValue(); ok {
				value = &v
			}
		}

		if decl.Qualifiers.Storage == ast.StorageConst {
			if d.Initializer == nil {
				b.errorf(decl.Range(), "const-qualified variable '%s' must be initialized", d.Name)
			} else if value == nil {
				b.errorf(decl.Range(), "const-qualified variable '%s' initialized with a non-constant expression", d.Name)
			}
		}

		b.cur.declareVar(d.Name, varType, decl, value)
	}
}

// DeclareParam wires a function parameter into the (already-entered)
// function scope and returns its full type.
func (b *Builder) DeclareParam(p *ast.ParamDecl) *ast.Type {
	t := b.ArrayTypeOf(p.ElemType, p.ArraySizes)
	if p.Name != "" {
		b.cur.declareVar(p.Name, t, p, nil)
	}
	return t
}

// DeclareFunction adds decl to the global overload set, rejecting an exact
// redeclaration of the same signature (spec.md §4.9, §9: functions overload
// on parameter types only, matching the teacher's AddDecl rule).
func (b *Builder) DeclareFunction(decl *ast.FunctionDecl) {
	sig := make([]*ast.Type, len(decl.Params))
	for i, p := range decl.Params {
		sig[i] = p.ElemType
	}
	for _, existing := range b.global.lookupFuncs(decl.Name) {
		if paramsEqual(existing, sig) {
			b.errorf(decl.Range(), "redeclaration of function '%s' with an identical signature", decl.Name)
			return
		}
	}
	b.global.declareFunc(decl)
}

// DeclareStruct interns fields into a struct Type, registers its name (if
// any) as both a type name (for IsStructName) and as a constructor-callable
// type, and stashes the interned Type on decl.Resolved.
func (b *Builder) DeclareStruct(decl *ast.StructDecl) *ast.Type {
	var fields []ast.StructField
	for _, fd := range decl.Fields {
		for _, d := range fd.Declarators {
			t := b.ArrayTypeOf(fd.ElemType, d.ArraySizes)
			fields = append(fields, ast.StructField{Name: d.Name, Type: t})
		}
	}

	t := b.Types.Struct(decl.Name, fields)
	decl.Resolved = t
	if decl.Name != "" {
		b.cur.declareStruct(decl.Name, t)
	}
	return t
}

// DeclareInterfaceBlock interns decl's fields into a struct-shaped Type and
// wires it into scope: a named instance (`} blockInstance;`) becomes one
// variable of that struct type, an unnamed one flattens every field
// directly into the current scope, matching GLSL's two interface-block
// access conventions (spec.md §4.9).
func (b *Builder) DeclareInterfaceBlock(decl *ast.InterfaceBlockDecl) *ast.Type {
	var fields []ast.StructField
	for _, fd := range decl.Fields {
		for _, d := range fd.Declarators {
			t := b.ArrayTypeOf(fd.ElemType, d.ArraySizes)
			fields = append(fields, ast.StructField{Name: d.Name, Type: t})
		}
	}

	blockType := b.Types.Struct(decl.BlockName, fields)
	if decl.InstanceName != "" {
		t := b.ArrayTypeOf(blockType, decl.ArraySizes)
		b.cur.declareVar(decl.InstanceName, t, decl, nil)
	} else {
		for _, f := range fields {
			b.cur.declareVar(f.Name, f.Type, decl, nil)
		}
	}
	return blockType
}
