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

// BuildLiteralExpr wraps an already-scanned constant as a LiteralExpr; there
// is nothing to resolve or fold, the literal carries its ConstValue already.
func (b *Builder) BuildLiteralExpr(rng ast.SyntaxRange, v ast.ConstValue) *ast.LiteralExpr {
	return ast.NewLiteralExpr(rng, v)
}

// BuildNameAccessExpr resolves name against the current scope chain. An
// unresolved name is reported once and returns an ErrorExpr rather than a
// NameAccessExpr with a nil Resolved, so callers never have to nil-check.
func (b *Builder) BuildNameAccessExpr(rng ast.SyntaxRange, name string) ast.Expr {
	sym := b.cur.lookupVar(name)
	if sym == nil {
		b.errorf(rng, "undeclared identifier '%s'", name)
		return ast.NewErrorExpr(rng)
	}
	e := ast.NewNameAccessExpr(rng, name)
	e.Resolved = sym.decl
	e.SetDeducedType(sym.typ)
	if sym.value != nil {
		e.SetConstValue(*sym.value)
	}
	return e
}

// BuildFieldOrSwizzleAccessExpr builds `base.field`, deciding between struct
// member access and vector swizzle from base's deduced type (spec.md §4.9).
func (b *Builder) BuildFieldOrSwizzleAccessExpr(rng ast.SyntaxRange, base ast.Expr, field string) ast.Expr {
	bt := base.DeducedType()
	switch bt.Kind {
	case ast.KindStruct:
		for _, f := range bt.Fields {
			if f.Name == field {
				e := ast.NewFieldAccessExpr(rng, base, field)
				e.SetDeducedType(f.Type)
				return e
			}
		}
		b.errorf(rng, "type '%s' has no member '%s'", bt, field)
		return ast.NewErrorExpr(rng)

	case ast.KindVector:
		components, ok := parseSwizzle(field, bt.VectorSize)
		if !ok {
			b.errorf(rng, "invalid swizzle '%s' on type '%s'", field, bt)
			return ast.NewErrorExpr(rng)
		}
		e := ast.NewSwizzleAccessExpr(rng, base, field, components)
		if len(components) == 1 {
			e.SetDeducedType(b.Types.Scalar(bt.Scalar))
		} else {
			e.SetDeducedType(b.Types.Vector(bt.Scalar, len(components)))
		}
		if v, ok := base.ConstValue(); ok {
			out := make([]ast.Scalar, len(components))
			for i, c := range components {
				out[i] = v.Elements[c]
			}
			e.SetConstValue(ast.ConstValue{Type: e.DeducedType(), Elements: out})
		}
		return e

	case ast.KindError:
		return ast.NewErrorExpr(rng)

	default:
		b.errorf(rng, "type '%s' has no member '%s'", bt, field)
		return ast.NewErrorExpr(rng)
	}
}

// BuildLengthExpr builds `base.length()`. Per spec.md §4.10 this always
// parses as a unary Length expression regardless of actual typing; only the
// deduced type reflects whether base is actually array/vector/matrix-shaped.
func (b *Builder) BuildLengthExpr(rng ast.SyntaxRange, base ast.Expr) *ast.UnaryExpr {
	e := ast.NewUnaryExpr(rng, ast.UnaryLength, base)
	bt := base.DeducedType()
	switch bt.Kind {
	case ast.KindArray, ast.KindVector, ast.KindMatrix:
		e.SetDeducedType(b.Types.Scalar(ast.I32))
		if bt.Kind == ast.KindArray && bt.ArraySize >= 0 {
			e.SetConstValue(ast.NewIntScalar(b.Types, ast.I32, int64(bt.ArraySize)))
		}
	case ast.KindError:
		e.SetDeducedType(ast.ErrorType)
	default:
		b.errorf(rng, "'.length()' applied to non-array/vector/matrix type '%s'", bt)
		e.SetDeducedType(ast.ErrorType)
	}
	return e
}

// BuildIndexAccessExpr builds `base[index]`, reducing array, vector or
// matrix rank by one (spec.md §4.9).
func (b *Builder) BuildIndexAccessExpr(rng ast.SyntaxRange, base, index ast.Expr) ast.Expr {
	it := index.DeducedType()
	if it.Kind != ast.KindError && (it.Kind != ast.KindScalar || it.Scalar == ast.Bool || it.Scalar.IsFloat()) {
		b.errorf(rng, "index expression must be an integer, got '%s'", it)
	}

	bt := base.DeducedType()
	e := ast.NewIndexAccessExpr(rng, base, index)
	switch bt.Kind {
	case ast.KindArray:
		e.SetDeducedType(bt.Elem)
	case ast.KindVector:
		e.SetDeducedType(b.Types.Scalar(bt.Scalar))
	case ast.KindMatrix:
		e.SetDeducedType(b.Types.Vector(bt.Scalar, bt.Rows))
	case ast.KindError:
		e.SetDeducedType(ast.ErrorType)
	default:
		b.errorf(rng, "type '%s' is not indexable", bt)
		e.SetDeducedType(ast.ErrorType)
	}
	return e
}

// BuildUnaryExpr type-checks and (where possible) constant-folds a unary
// operator application (spec.md §4.9).
func (b *Builder) BuildUnaryExpr(rng ast.SyntaxRange, op ast.UnaryOp, operand ast.Expr) ast.Expr {
	e := ast.NewUnaryExpr(rng, op, operand)
	t := operand.DeducedType()
	if t.Kind == ast.KindError {
		e.SetDeducedType(ast.ErrorType)
		return e
	}

	switch op {
	case ast.UnaryPrefixInc, ast.UnaryPrefixDec, ast.UnaryPostfixInc, ast.UnaryPostfixDec:
		if !isLValue(operand) {
			b.errorf(rng, "operand of '%s' is not an lvalue", op)
		}
		fallthrough
	case ast.UnaryIdentity, ast.UnaryNegate:
		if !isNumericShape(t) {
			b.errorf(rng, "operator '%s' requires a numeric operand, got '%s'", op, t)
			e.SetDeducedType(ast.ErrorType)
			return e
		}
	case ast.UnaryBitwiseNot:
		if !isIntegerShape(t) {
			b.errorf(rng, "operator '~' requires an integer operand, got '%s'", t)
			e.SetDeducedType(ast.ErrorType)
			return e
		}
	case ast.UnaryLogicalNot:
		if !(t.Kind == ast.KindScalar && t.Scalar == ast.Bool) {
			b.errorf(rng, "operator '!' requires a bool operand, got '%s'", t)
			e.SetDeducedType(ast.ErrorType)
			return e
		}
	}
	e.SetDeducedType(t)

	if v, ok := operand.ConstValue(); ok {
		folded := ast.FoldUnary(b.Types, op, v)
		if !folded.IsError() {
			e.SetConstValue(folded)
		}
	}
	return e
}

func isNumericShape(t *ast.Type) bool {
	switch t.Kind {
	case ast.KindScalar, ast.KindVector, ast.KindMatrix:
		return t.Scalar != ast.Bool
	default:
		return false
	}
}

func isIntegerShape(t *ast.Type) bool {
	switch t.Kind {
	case ast.KindScalar, ast.KindVector:
		return t.Scalar != ast.Bool && !t.Scalar.IsFloat()
	default:
		return false
	}
}

// BuildSelectExpr builds the ternary `cond ? then : else` (spec.md §4.9):
// cond must be bool, then/else must share a type after unification.
func (b *Builder) BuildSelectExpr(rng ast.SyntaxRange, cond, then, els ast.Expr) ast.Expr {
	ct := cond.DeducedType()
	if ct.Kind != ast.KindError && !(ct.Kind == ast.KindScalar && ct.Scalar == ast.Bool) {
		b.errorf(rng, "condition of '?:' must be bool, got '%s'", ct)
	}

	tt, et := then.DeducedType(), els.DeducedType()
	resultType := tt
	if tt != et && tt.Kind != ast.KindError && et.Kind != ast.KindError {
		if _, ok := ast.ImplicitlyConvertibleTo(et, tt); ok {
			els = b.castTo(tt, els)
		} else if _, ok := ast.ImplicitlyConvertibleTo(tt, et); ok {
			then = b.castTo(et, then)
			resultType = et
		} else {
			b.errorf(rng, "branches of '?:' have incompatible types '%s' and '%s'", tt, et)
			resultType = ast.ErrorType
		}
	}

	e := ast.NewSelectExpr(rng, cond, then, els)
	e.SetDeducedType(resultType)

	cv, cok := cond.ConstValue()
	tv, tok := then.ConstValue()
	ev, eok := els.ConstValue()
	if cok && tok && eok && resultType.Kind != ast.KindError {
		if cv.Elements[0].AsBool() {
			e.SetConstValue(tv)
		} else {
			e.SetConstValue(ev)
		}
	}
	return e
}

// BuildBinaryExpr type-checks, inserts any needed implicit casts, and
// constant-folds a binary/assignment operator application (spec.md §4.9).
func (b *Builder) BuildBinaryExpr(rng ast.SyntaxRange, op ast.BinaryOp, lhs, rhs ast.Expr) ast.Expr {
	if op.IsAssignment() {
		return b.buildAssignExpr(rng, op, lhs, rhs)
	}

	var resultType *ast.Type
	switch op {
	case ast.BinaryPlus, ast.BinaryMinus, ast.BinaryMul, ast.BinaryDiv:
		t, newLhs, newRhs, ok := unifyArithmetic(b, lhs, rhs)
		if ok && (!isNumericShape(lhs.DeducedType()) || !isNumericShape(rhs.DeducedType())) {
			ok = false // bool operands unify by rank but are not arithmetic
		} else {
			lhs, rhs = newLhs, newRhs
		}
		if !ok {
			if lhs.DeducedType().Kind != ast.KindError && rhs.DeducedType().Kind != ast.KindError {
				b.errorf(rng, "incompatible operand types '%s' and '%s' for '%s'", lhs.DeducedType(), rhs.DeducedType(), op)
			}
			resultType = ast.ErrorType
		} else {
			resultType = t
		}

	case ast.BinaryMod, ast.BinaryBitwiseAnd, ast.BinaryBitwiseOr, ast.BinaryBitwiseXor:
		if !isIntegerShape(lhs.DeducedType()) || !isIntegerShape(rhs.DeducedType()) {
			if lhs.DeducedType().Kind != ast.KindError && rhs.DeducedType().Kind != ast.KindError {
				b.errorf(rng, "operator '%s' requires integer operands", op)
			}
			resultType = ast.ErrorType
		} else {
			t, newLhs, newRhs, ok := unifyArithmetic(b, lhs, rhs)
			lhs, rhs = newLhs, newRhs
			if !ok {
				b.errorf(rng, "incompatible operand types '%s' and '%s' for '%s'", lhs.DeducedType(), rhs.DeducedType(), op)
				resultType = ast.ErrorType
			} else {
				resultType = t
			}
		}

	case ast.BinaryShiftLeft, ast.BinaryShiftRight:
		if !isIntegerShape(lhs.DeducedType()) || !isIntegerShape(rhs.DeducedType()) {
			if lhs.DeducedType().Kind != ast.KindError && rhs.DeducedType().Kind != ast.KindError {
				b.errorf(rng, "operator '%s' requires integer operands", op)
			}
			resultType = ast.ErrorType
		} else {
			resultType = lhs.DeducedType()
		}

	case ast.BinaryLess, ast.BinaryLessEq, ast.BinaryGreater, ast.BinaryGreaterEq:
		if lhs.DeducedType().Kind != ast.KindScalar || rhs.DeducedType().Kind != ast.KindScalar ||
			lhs.DeducedType().Scalar == ast.Bool || rhs.DeducedType().Scalar == ast.Bool {
			if lhs.DeducedType().Kind != ast.KindError && rhs.DeducedType().Kind != ast.KindError {
				b.errorf(rng, "operator '%s' requires scalar numeric operands", op)
			}
			resultType = ast.ErrorType
		} else {
			_, newLhs, newRhs, _ := unifyArithmetic(b, lhs, rhs)
			lhs, rhs = newLhs, newRhs
			resultType = b.Types.Scalar(ast.Bool)
		}

	case ast.BinaryEqual, ast.BinaryNotEqual:
		if lhs.DeducedType() != rhs.DeducedType() &&
			lhs.DeducedType().Kind != ast.KindError && rhs.DeducedType().Kind != ast.KindError {
			if _, ok := ast.ImplicitlyConvertibleTo(rhs.DeducedType(), lhs.DeducedType()); ok {
				rhs = b.castTo(lhs.DeducedType(), rhs)
			} else if _, ok := ast.ImplicitlyConvertibleTo(lhs.DeducedType(), rhs.DeducedType()); ok {
				lhs = b.castTo(rhs.DeducedType(), lhs)
			} else {
				b.errorf(rng, "cannot compare incompatible types '%s' and '%s'", lhs.DeducedType(), rhs.DeducedType())
			}
		}
		resultType = b.Types.Scalar(ast.Bool)

	case ast.BinaryLogicalAnd, ast.BinaryLogicalOr, ast.BinaryLogicalXor:
		boolT := b.Types.Scalar(ast.Bool)
		if lhs.DeducedType() != boolT && lhs.DeducedType().Kind != ast.KindError {
			b.errorf(rng, "left operand of '%s' must be bool", op)
		}
		if rhs.DeducedType() != boolT && rhs.DeducedType().Kind != ast.KindError {
			b.errorf(rng, "right operand of '%s' must be bool", op)
		}
		resultType = boolT

	case ast.BinaryComma:
		resultType = rhs.DeducedType()

	default:
		resultType = ast.ErrorType
	}

	e := ast.NewBinaryExpr(rng, op, lhs, rhs)
	e.SetDeducedType(resultType)

	if op != ast.BinaryComma {
		if lv, lok := lhs.ConstValue(); lok {
			if rv, rok := rhs.ConstValue(); rok {
				folded := ast.FoldBinary(b.Types, op, lv, rv)
				if !folded.IsError() {
					e.SetConstValue(folded)
				}
			}
		}
	}
	return e
}

// buildAssignExpr handles `=` and the compound assignment operators, which
// desugar to `lhs = lhs OP rhs` for type-checking purposes (spec.md §4.9).
// Assignments are never constant expressions.
func (b *Builder) buildAssignExpr(rng ast.SyntaxRange, op ast.BinaryOp, lhs, rhs ast.Expr) ast.Expr {
	if !isLValue(lhs) {
		b.errorf(rng, "left operand of '%s' is not an lvalue", op)
	}

	lt := lhs.DeducedType()
	if plain, ok := op.NonAssignmentEquivalent(); ok {
		rhs = b.BuildBinaryExpr(rng, plain, lhs, rhs)
	}

	rt := rhs.DeducedType()
	if lt.Kind != ast.KindError && rt.Kind != ast.KindError {
		if lt != rt {
			if _, ok := ast.ImplicitlyConvertibleTo(rt, lt); ok {
				rhs = b.castTo(lt, rhs)
			} else {
				b.errorf(rng, "cannot assign '%s' to '%s'", rt, lt)
			}
		}
	}

	e := ast.NewBinaryExpr(rng, op, lhs, rhs)
	if lt.Kind == ast.KindError {
		e.SetDeducedType(ast.ErrorType)
	} else {
		e.SetDeducedType(lt)
	}
	return e
}
