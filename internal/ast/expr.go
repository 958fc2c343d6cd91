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

package ast

// Expr is implemented by every expression node variant. All variants embed
// exprBase, which carries the syntax range and the attributes the builder
// (C9) fills in: deduced Type and, where constant, a folded ConstValue.
type Expr interface {
	Node
	Range() SyntaxRange
	DeducedType() *Type
	SetDeducedType(*Type)
	ConstValue() (ConstValue, bool)
	SetConstValue(ConstValue)
}

type exprBase struct {
	SyntaxRange SyntaxRange
	Type        *Type
	Const       *ConstValue
}

func (e *exprBase) Range() SyntaxRange     { return e.SyntaxRange }
func (e *exprBase) DeducedType() *Type     { return e.Type }
func (e *exprBase) SetDeducedType(t *Type) { e.Type = t }
func (e *exprBase) ConstValue() (ConstValue, bool) {
	if e.Const == nil {
		return ConstValue{}, false
	}
	return *e.Const, true
}
func (e *exprBase) SetConstValue(v ConstValue) { e.Const = &v }

// ErrorExpr stands in for an expression the parser or builder could not
// make sense of; its DeducedType is always ErrorType.
type ErrorExpr struct {
	exprBase
}

func NewErrorExpr(rng SyntaxRange) *ErrorExpr {
	e := &ErrorExpr{exprBase{SyntaxRange: rng, Type: ErrorType}}
	return e
}

// LiteralExpr is a literal token (integer, float, bool) parsed directly to
// a ConstValue.
type LiteralExpr struct {
	exprBase
	Value ConstValue
}

func NewLiteralExpr(rng SyntaxRange, v ConstValue) *LiteralExpr {
	e := &LiteralExpr{exprBase: exprBase{SyntaxRange: rng, Type: v.Type}, Value: v}
	e.SetConstValue(v)
	return e
}

// NameAccessExpr resolves an identifier to a variable, parameter or
// (pre-overload-resolution) a bare name; the builder fills in Resolved once
// name lookup succeeds.
type NameAccessExpr struct {
	exprBase
	Name     string
	Resolved Decl // nil until resolved by the builder
}

func NewNameAccessExpr(rng SyntaxRange, name string) *NameAccessExpr {
	return &NameAccessExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Name: name}
}

// FieldAccessExpr is `base.field`, i.e. struct member access.
type FieldAccessExpr struct {
	exprBase
	Base  Expr
	Field string
}

func NewFieldAccessExpr(rng SyntaxRange, base Expr, field string) *FieldAccessExpr {
	return &FieldAccessExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Base: base, Field: field}
}

// SwizzleAccessExpr is `base.xyzw`/`.rgba`/`.stpq` vector component access,
// kept distinct from FieldAccessExpr because it carries the resolved
// component index list and can be an lvalue only under stricter rules
// (no repeated component on the write side).
type SwizzleAccessExpr struct {
	exprBase
	Base       Expr
	Swizzle    string
	Components []int // 0..3, one per swizzle letter
}

func NewSwizzleAccessExpr(rng SyntaxRange, base Expr, swizzle string, components []int) *SwizzleAccessExpr {
	return &SwizzleAccessExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Base: base, Swizzle: swizzle, Components: components}
}

// IndexAccessExpr is `base[index]`.
type IndexAccessExpr struct {
	exprBase
	Base  Expr
	Index Expr
}

func NewIndexAccessExpr(rng SyntaxRange, base, index Expr) *IndexAccessExpr {
	return &IndexAccessExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Base: base, Index: index}
}

// UnaryExpr applies a UnaryOp to Operand.
type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

func NewUnaryExpr(rng SyntaxRange, op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Op: op, Operand: operand}
}

// BinaryExpr applies a BinaryOp to Lhs, Rhs.
type BinaryExpr struct {
	exprBase
	Op  BinaryOp
	Lhs Expr
	Rhs Expr
}

func NewBinaryExpr(rng SyntaxRange, op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Op: op, Lhs: lhs, Rhs: rhs}
}

// SelectExpr is the ternary `cond ? then : else`.
type SelectExpr struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func NewSelectExpr(rng SyntaxRange, cond, then, els Expr) *SelectExpr {
	return &SelectExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Cond: cond, Then: then, Else: els}
}

// ImplicitCastExpr wraps an expression the builder inserted an implicit
// conversion around; it never appears directly from the parser.
type ImplicitCastExpr struct {
	exprBase
	Operand Expr
}

func NewImplicitCastExpr(target *Type, operand Expr) *ImplicitCastExpr {
	return &ImplicitCastExpr{exprBase: exprBase{SyntaxRange: operand.Range(), Type: target}, Operand: operand}
}

// FunctionCallExpr is a call to a named function, resolved to one overload
// candidate once overload resolution succeeds.
type FunctionCallExpr struct {
	exprBase
	FunctionName string
	Args         []Expr
	Resolved     *FunctionDecl // nil until overload resolution succeeds
}

func NewFunctionCallExpr(rng SyntaxRange, name string, args []Expr) *FunctionCallExpr {
	return &FunctionCallExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, FunctionName: name, Args: args}
}

// ConstructorCallExpr is `Type(args...)`, GLSL's type-conversion/aggregate
// construction syntax; kept distinct from FunctionCallExpr since its
// candidate set and arity rules come from the type system, not overloads.
type ConstructorCallExpr struct {
	exprBase
	TargetType *Type
	Args       []Expr
}

func NewConstructorCallExpr(rng SyntaxRange, target *Type, args []Expr) *ConstructorCallExpr {
	return &ConstructorCallExpr{exprBase: exprBase{SyntaxRange: rng, Type: target}, TargetType: target, Args: args}
}

// InitializerListExpr is a brace-enclosed `{ a, b, c }` aggregate
// initializer, legal only in variable initializers (spec.md §4.10).
type InitializerListExpr struct {
	exprBase
	Elements []Expr
}

func NewInitializerListExpr(rng SyntaxRange, elements []Expr) *InitializerListExpr {
	return &InitializerListExpr{exprBase: exprBase{SyntaxRange: rng, Type: ErrorType}, Elements: elements}
}

func (e *ErrorExpr) isNode()            {}
func (e *LiteralExpr) isNode()          {}
func (e *NameAccessExpr) isNode()       {}
func (e *FieldAccessExpr) isNode()      {}
func (e *SwizzleAccessExpr) isNode()    {}
func (e *IndexAccessExpr) isNode()      {}
func (e *UnaryExpr) isNode()            {}
func (e *BinaryExpr) isNode()           {}
func (e *SelectExpr) isNode()           {}
func (e *ImplicitCastExpr) isNode()     {}
func (e *FunctionCallExpr) isNode()     {}
func (e *ConstructorCallExpr) isNode()  {}
func (e *InitializerListExpr) isNode()  {}

func (e *ErrorExpr) Children() []Node           { return nil }
func (e *LiteralExpr) Children() []Node         { return nil }
func (e *NameAccessExpr) Children() []Node      { return nil }
func (e *FieldAccessExpr) Children() []Node     { return []Node{e.Base} }
func (e *SwizzleAccessExpr) Children() []Node   { return []Node{e.Base} }
func (e *IndexAccessExpr) Children() []Node     { return []Node{e.Base, e.Index} }
func (e *UnaryExpr) Children() []Node           { return []Node{e.Operand} }
func (e *BinaryExpr) Children() []Node          { return []Node{e.Lhs, e.Rhs} }
func (e *SelectExpr) Children() []Node          { return []Node{e.Cond, e.Then, e.Else} }
func (e *ImplicitCastExpr) Children() []Node    { return []Node{e.Operand} }
func (e *FunctionCallExpr) Children() []Node {
	out := make([]Node, len(e.Args))
	for i, a := range e.Args {
		out[i] = a
	}
	return out
}
func (e *ConstructorCallExpr) Children() []Node {
	out := make([]Node, len(e.Args))
	for i, a := range e.Args {
		out[i] = a
	}
	return out
}
func (e *InitializerListExpr) Children() []Node {
	out := make([]Node, len(e.Elements))
	for i, a := range e.Elements {
		out[i] = a
	}
	return out
}
