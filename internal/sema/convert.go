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

// castTo wraps e in an ImplicitCastExpr targeting target if e's type isn't
// already target, folding the cast immediately when e is itself constant.
// Callers are expected to have already checked ast.ImplicitlyConvertibleTo.
func (b *Builder) castTo(target *ast.Type, e ast.Expr) ast.Expr {
	if e.DeducedType() == target {
		return e
	}
	cast := ast.NewImplicitCastExpr(target, e)
	if v, ok := e.ConstValue(); ok {
		if folded, ok := foldCast(target, v); ok {
			cast.SetConstValue(folded)
		}
	}
	return cast
}

// foldCast folds a constant elementwise conversion to target's scalar kind,
// used when constant-folding an inserted implicit cast. Only scalar/vector/
// matrix conversions fold; anything else (and any cast wrapping a shape
// change, which ast.ImplicitlyConvertibleTo never permits anyway) fails.
func foldCast(target *ast.Type, v ast.ConstValue) (ast.ConstValue, bool) {
	if target.Kind != ast.KindScalar && target.Kind != ast.KindVector && target.Kind != ast.KindMatrix {
		return ast.ConstValue{}, false
	}
	out := make([]ast.Scalar, len(v.Elements))
	for i, s := range v.Elements {
		out[i] = convertScalar(target.Scalar, s)
	}
	return ast.ConstValue{Type: target, Elements: out}, true
}

func convertScalar(k ast.ScalarKind, s ast.Scalar) ast.Scalar {
	switch {
	case k == ast.Bool:
		return ast.Scalar{Kind: k, B: s.AsBool()}
	case k.IsFloat():
		return ast.Scalar{Kind: k, F: s.AsFloat64()}
	case k.IsUnsigned():
		return ast.Scalar{Kind: k, U: uint64(s.AsInt64())}
	default:
		return ast.Scalar{Kind: k, I: s.AsInt64()}
	}
}

// unifyArithmetic computes the result shape of a numeric binary operator
// over lhs/rhs's deduced types, per spec.md §4.9's conversion rank and the
// scalar/vector "splat" rule: implicit conversions are permitted up-rank
// and elementwise across vectors/matrices of matching shape, and a scalar
// operand unifies against a vector/matrix operand's element kind without
// itself becoming a vector/matrix. Returns the unified result type, the
// (possibly cast) operands, and whether a legal shape combination exists.
func unifyArithmetic(b *Builder, lhs, rhs ast.Expr) (*ast.Type, ast.Expr, ast.Expr, bool) {
	lt, rt := lhs.DeducedType(), rhs.DeducedType()
	if lt.Kind == ast.KindError || rt.Kind == ast.KindError {
		return ast.ErrorType, lhs, rhs, false
	}

	switch {
	case lt.Kind == ast.KindScalar && rt.Kind == ast.KindScalar:
		k, ok := higherScalar(lt.Scalar, rt.Scalar)
		if !ok {
			return ast.ErrorType, lhs, rhs, false
		}
		target := b.Types.Scalar(k)
		return target, b.castTo(target, lhs), b.castTo(target, rhs), true

	case lt.Kind == ast.KindScalar && (rt.Kind == ast.KindVector || rt.Kind == ast.KindMatrix):
		k, ok := higherScalar(lt.Scalar, rt.Scalar)
		if !ok {
			return ast.ErrorType, lhs, rhs, false
		}
		newLhs := b.castTo(b.Types.Scalar(k), lhs)
		newRhs := castElemKind(b, rt, k, rhs)
		return resultShape(b, rt, k), newLhs, newRhs, true

	case rt.Kind == ast.KindScalar && (lt.Kind == ast.KindVector || lt.Kind == ast.KindMatrix):
		k, ok := higherScalar(lt.Scalar, rt.Scalar)
		if !ok {
			return ast.ErrorType, lhs, rhs, false
		}
		newRhs := b.castTo(b.Types.Scalar(k), rhs)
		newLhs := castElemKind(b, lt, k, lhs)
		return resultShape(b, lt, k), newLhs, newRhs, true

	case lt.Kind == ast.KindVector && rt.Kind == ast.KindVector && lt.VectorSize == rt.VectorSize:
		k, ok := higherScalar(lt.Scalar, rt.Scalar)
		if !ok {
			return ast.ErrorType, lhs, rhs, false
		}
		target := b.Types.Vector(k, lt.VectorSize)
		return target, b.castTo(target, lhs), b.castTo(target, rhs), true

	case lt.Kind == ast.KindMatrix && rt.Kind == ast.KindMatrix && lt.Cols == rt.Cols && lt.Rows == rt.Rows:
		k, ok := higherScalar(lt.Scalar, rt.Scalar)
		if !ok {
			return ast.ErrorType, lhs, rhs, false
		}
		target := b.Types.Matrix(k, lt.Cols, lt.Rows)
		return target, b.castTo(target, lhs), b.castTo(target, rhs), true

	default:
		return ast.ErrorType, lhs, rhs, false
	}
}

// higherScalar returns whichever of a, b has the higher conversion rank;
// GLSL's scalar ranks are totally ordered (spec.md §4.9), so the lower one
// always converts up to the higher one.
func higherScalar(a, b ast.ScalarKind) (ast.ScalarKind, bool) {
	if ast.Rank(a) >= ast.Rank(b) {
		return a, true
	}
	return b, true
}

func resultShape(b *Builder, shaped *ast.Type, k ast.ScalarKind) *ast.Type {
	if shaped.Kind == ast.KindVector {
		return b.Types.Vector(k, shaped.VectorSize)
	}
	return b.Types.Matrix(k, shaped.Cols, shaped.Rows)
}

func castElemKind(b *Builder, shaped *ast.Type, k ast.ScalarKind, e ast.Expr) ast.Expr {
	if shaped.Scalar == k {
		return e
	}
	return b.castTo(resultShape(b, shaped, k), e)
}
