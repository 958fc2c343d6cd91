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

// BuildFunctionCallExpr resolves a named call against the global function
// overload set and adopts the winning candidate's return type (spec.md
// §4.9). Constructor-style calls (where name is a type, not a function) are
// handled by BuildConstructorCallExpr instead — the parser tells them apart
// via IsStructName/its own type-keyword table before choosing which to call.
func (b *Builder) BuildFunctionCallExpr(rng ast.SyntaxRange, name string, args []ast.Expr) ast.Expr {
	e := ast.NewFunctionCallExpr(rng, name, args)

	argTypes := make([]*ast.Type, len(args))
	hasError := false
	for i, a := range args {
		argTypes[i] = a.DeducedType()
		if argTypes[i].Kind == ast.KindError {
			hasError = true
		}
	}

	candidates := b.cur.lookupFuncs(name)
	if len(candidates) == 0 {
		if !hasError {
			b.errorf(rng, "call to undeclared function '%s'", name)
		}
		e.SetDeducedType(ast.ErrorType)
		return e
	}

	decl, ok, ambiguous := resolveOverload(candidates, argTypes)
	switch {
	case ambiguous:
		b.errorf(rng, "ambiguous call to overloaded function '%s'", name)
		e.SetDeducedType(ast.ErrorType)
		return e
	case !ok:
		if !hasError {
			b.errorf(rng, "no matching overload of '%s' for the given argument types", name)
		}
		e.SetDeducedType(ast.ErrorType)
		return e
	}

	e.Resolved = decl
	for i, p := range decl.Params {
		if _, ok := ast.ImplicitlyConvertibleTo(args[i].DeducedType(), p.ElemType); ok {
			args[i] = b.castTo(p.ElemType, args[i])
		}
	}
	e.Args = args
	e.SetDeducedType(decl.ReturnType)
	return e
}

// BuildConstructorCallExpr builds `Type(args...)`, GLSL's aggregate
// constructor/conversion syntax (spec.md §4.9). Arity and argument types
// come from target's shape, not an overload set.
func (b *Builder) BuildConstructorCallExpr(rng ast.SyntaxRange, target *ast.Type, args []ast.Expr) ast.Expr {
	e := ast.NewConstructorCallExpr(rng, target, args)

	switch target.Kind {
	case ast.KindScalar, ast.KindVector, ast.KindMatrix:
		b.checkNumericConstructor(rng, target, args)
	case ast.KindStruct:
		b.checkStructConstructor(rng, target, args)
	case ast.KindArray:
		b.checkArrayConstructor(rng, target, args)
	default:
		b.errorf(rng, "cannot construct an object of type '%s'", target)
	}

	if allConst(args) {
		if v, ok := foldConstructor(b.Types, target, args); ok {
			e.SetConstValue(v)
		}
	}
	return e
}

func allConst(args []ast.Expr) bool {
	for _, a := range args {
		if _, ok := a.ConstValue(); !ok {
			return false
		}
	}
	return true
}

func componentCount(t *ast.Type) int {
	switch t.Kind {
	case ast.KindScalar:
		return 1
	case ast.KindVector:
		return t.VectorSize
	case ast.KindMatrix:
		return t.Cols * t.Rows
	default:
		return 0
	}
}

func (b *Builder) checkNumericConstructor(rng ast.SyntaxRange, target *ast.Type, args []ast.Expr) {
	if len(args) == 0 {
		b.errorf(rng, "constructor for '%s' needs at least one argument", target)
		return
	}
	if target.Kind == ast.KindMatrix && len(args) == 1 && args[0].DeducedType().Kind == ast.KindMatrix {
		return // matrix-from-matrix: always legal, any size
	}

	needed := componentCount(target)
	for _, a := range args {
		at := a.DeducedType()
		if at.Kind == ast.KindError {
			return
		}
		if at.Kind != ast.KindScalar && at.Kind != ast.KindVector && at.Kind != ast.KindMatrix {
			b.errorf(rng, "argument of type '%s' cannot be used to construct '%s'", at, target)
			return
		}
		needed -= componentCount(at)
	}
	if needed > 0 {
		b.errorf(rng, "not enough components to construct '%s'", target)
	}
}

func (b *Builder) checkStructConstructor(rng ast.SyntaxRange, target *ast.Type, args []ast.Expr) {
	if len(args) != len(target.Fields) {
		b.errorf(rng, "struct '%s' requires %d initializers, got %d", target, len(target.Fields), len(args))
		return
	}
	for i, f := range target.Fields {
		at := args[i].DeducedType()
		if at.Kind == ast.KindError {
			continue
		}
		if !ast.Equal(at, f.Type) {
			if _, ok := ast.ImplicitlyConvertibleTo(at, f.Type); ok {
				args[i] = b.castTo(f.Type, args[i])
			} else {
				b.errorf(rng, "cannot initialize field '%s' (type '%s') with value of type '%s'", f.Name, f.Type, at)
			}
		}
	}
}

func (b *Builder) checkArrayConstructor(rng ast.SyntaxRange, target *ast.Type, args []ast.Expr) {
	if target.ArraySize >= 0 && target.ArraySize != len(args) {
		b.errorf(rng, "array of size %d constructed with %d arguments", target.ArraySize, len(args))
	}
	if len(args) == 0 {
		b.errorf(rng, "cannot construct an array of size zero")
	}
	for i, a := range args {
		at := a.DeducedType()
		if at.Kind == ast.KindError {
			continue
		}
		if !ast.Equal(at, target.Elem) {
			if _, ok := ast.ImplicitlyConvertibleTo(at, target.Elem); ok {
				args[i] = b.castTo(target.Elem, a)
			} else {
				b.errorf(rng, "cannot construct array of '%s' from element of type '%s'", target.Elem, at)
			}
		}
	}
}

// foldConstructor constant-folds a numeric (scalar/vector/matrix)
// constructor by concatenating its arguments' elements and converting each
// to target's scalar kind. Struct and array constructors, and matrix
// constructors with matrix arguments, are left unfolded: their element
// layout isn't a flat concatenation, and no downstream consumer in this
// front end needs their folded value.
func foldConstructor(ctx *ast.Context, target *ast.Type, args []ast.Expr) (ast.ConstValue, bool) {
	switch target.Kind {
	case ast.KindScalar, ast.KindVector:
		var out []ast.Scalar
		for _, a := range args {
			v, _ := a.ConstValue()
			for _, s := range v.Elements {
				out = append(out, convertScalar(target.Scalar, s))
			}
		}
		n := componentCount(target)
		if len(out) < n {
			return ast.ConstValue{}, false
		}
		return ast.ConstValue{Type: target, Elements: out[:n]}, true
	default:
		return ast.ConstValue{}, false
	}
}

// BuildInitializerListExpr builds a brace-enclosed aggregate initializer,
// legal only in variable initializers (spec.md §4.10). Its deduced type is
// left error-typed here; the declaration-building code that knows the
// declarator's target type checks and retypes it.
func (b *Builder) BuildInitializerListExpr(rng ast.SyntaxRange, elements []ast.Expr) *ast.InitializerListExpr {
	return ast.NewInitializerListExpr(rng, elements)
}

// CheckInitializerAgainstType validates (and retypes) an initializer
// expression against a declarator's target type: an InitializerListExpr
// checks element-by-element against target's shape, anything else goes
// through the ordinary implicit-conversion rule.
func (b *Builder) CheckInitializerAgainstType(rng ast.SyntaxRange, target *ast.Type, init ast.Expr) ast.Expr {
	list, isList := init.(*ast.InitializerListExpr)
	if !isList {
		if init.DeducedType().Kind == ast.KindError || target.Kind == ast.KindError {
			return init
		}
		if ast.Equal(init.DeducedType(), target) {
			return init
		}
		if _, ok := ast.ImplicitlyConvertibleTo(init.DeducedType(), target); ok {
			return b.castTo(target, init)
		}
		b.errorf(rng, "cannot initialize '%s' with an expression of type '%s'", target, init.DeducedType())
		return init
	}

	switch target.Kind {
	case ast.KindArray:
		if target.ArraySize >= 0 && target.ArraySize != len(list.Elements) {
			b.errorf(rng, "array of size %d initialized with %d elements", target.ArraySize, len(list.Elements))
		}
		for i, el := range list.Elements {
			list.Elements[i] = b.CheckInitializerAgainstType(el.Range(), target.Elem, el)
		}
	case ast.KindStruct:
		if len(list.Elements) != len(target.Fields) {
			b.errorf(rng, "struct '%s' initialized with %d elements, needs %d", target, len(list.Elements), len(target.Fields))
		}
		for i := 0; i < len(list.Elements) && i < len(target.Fields); i++ {
			list.Elements[i] = b.CheckInitializerAgainstType(list.Elements[i].Range(), target.Fields[i].Type, list.Elements[i])
		}
	case ast.KindVector, ast.KindMatrix:
		needed := componentCount(target)
		if len(list.Elements) != needed {
			b.errorf(rng, "'%s' initialized with %d elements, needs %d", target, len(list.Elements), needed)
		}
		elemType := target
		if target.Kind == ast.KindVector {
			elemType = b.Types.Scalar(target.Scalar)
		} else {
			elemType = b.Types.Vector(target.Scalar, target.Rows)
		}
		for i, el := range list.Elements {
			list.Elements[i] = b.CheckInitializerAgainstType(el.Range(), elemType, el)
		}
	default:
		b.errorf(rng, "type '%s' cannot be initialized with a brace-enclosed list", target)
	}
	list.SetDeducedType(target)
	return list
}
