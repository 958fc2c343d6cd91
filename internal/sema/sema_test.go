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

package sema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/sema"
)

func newBuilder(t *testing.T) (*sema.Builder, *ast.Context, *diag.Sink) {
	t.Helper()
	types := ast.NewContext()
	diags := &diag.Sink{}
	return sema.NewBuilder(types, diags, nil), types, diags
}

func TestBuildNameAccessExprResolvesDeclaredVariable(t *testing.T) {
	b, types, diags := newBuilder(t)
	floatType := types.Scalar(ast.F32)
	decl := ast.NewVariableDecl(ast.SyntaxRange{}, ast.Qualifiers{}, floatType, []ast.Declarator{{Name: "x"}})
	b.DeclareVariable(decl)

	e := b.BuildNameAccessExpr(ast.SyntaxRange{}, "x")
	require.False(t, diags.HasErrors())
	assert.Same(t, floatType, e.DeducedType())
}

func TestBuildNameAccessExprReportsUndeclaredIdentifier(t *testing.T) {
	b, _, diags := newBuilder(t)
	e := b.BuildNameAccessExpr(ast.SyntaxRange{}, "missing")
	assert.True(t, diags.HasErrors())
	assert.Equal(t, ast.ErrorType, e.DeducedType())
}

func TestBuildBinaryExprFoldsIntegerArithmetic(t *testing.T) {
	b, types, diags := newBuilder(t)
	lhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 2))
	rhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 3))

	e := b.BuildBinaryExpr(ast.SyntaxRange{}, ast.BinaryPlus, lhs, rhs)
	require.False(t, diags.HasErrors())

	v, ok := e.ConstValue()
	require.True(t, ok)
	assert.Equal(t, int64(5), v.Elements[0].I)
}

func TestBuildBinaryExprScalarVectorSplatUnifiesShape(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	lhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.ConstValue{
		Type:     vec3,
		Elements: []ast.Scalar{{Kind: ast.F32, F: 1}, {Kind: ast.F32, F: 2}, {Kind: ast.F32, F: 3}},
	})
	rhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 2))

	e := b.BuildBinaryExpr(ast.SyntaxRange{}, ast.BinaryMul, lhs, rhs)
	require.False(t, diags.HasErrors())
	assert.Same(t, vec3, e.DeducedType())

	v, ok := e.ConstValue()
	require.True(t, ok)
	assert.Equal(t, []float64{2, 4, 6}, []float64{v.Elements[0].F, v.Elements[1].F, v.Elements[2].F})
}

func TestBuildBinaryExprRejectsIncompatibleOperands(t *testing.T) {
	b, types, diags := newBuilder(t)
	lhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewBoolScalar(types, true))
	rhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))

	e := b.BuildBinaryExpr(ast.SyntaxRange{}, ast.BinaryPlus, lhs, rhs)
	assert.True(t, diags.HasErrors())
	assert.Equal(t, ast.ErrorType, e.DeducedType())
}

func TestBuildUnaryExprRejectsIncrementOfNonLValue(t *testing.T) {
	b, types, diags := newBuilder(t)
	lit := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))
	b.BuildUnaryExpr(ast.SyntaxRange{}, ast.UnaryPrefixInc, lit)
	assert.True(t, diags.HasErrors())
}

func TestBuildFieldOrSwizzleAccessExprSingleComponent(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec4 := types.Vector(ast.F32, 4)
	base := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.ConstValue{
		Type: vec4,
		Elements: []ast.Scalar{
			{Kind: ast.F32, F: 1}, {Kind: ast.F32, F: 2}, {Kind: ast.F32, F: 3}, {Kind: ast.F32, F: 4},
		},
	})

	e := b.BuildFieldOrSwizzleAccessExpr(ast.SyntaxRange{}, base, "y")
	require.False(t, diags.HasErrors())
	assert.Same(t, types.Scalar(ast.F32), e.DeducedType())
	v, ok := e.ConstValue()
	require.True(t, ok)
	assert.Equal(t, float64(2), v.Elements[0].F)
}

func TestBuildFieldOrSwizzleAccessExprRejectsMixedComponentSets(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	base := ast.NewNameAccessExpr(ast.SyntaxRange{}, "v")
	base.Resolved = ast.NewVariableDecl(ast.SyntaxRange{}, ast.Qualifiers{}, vec3, nil)
	base.SetDeducedType(vec3)

	b.BuildFieldOrSwizzleAccessExpr(ast.SyntaxRange{}, base, "xg")
	assert.True(t, diags.HasErrors())
}

func TestAssigningToRepeatedSwizzleIsRejectedAsNotAnLValue(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	decl := ast.NewVariableDecl(ast.SyntaxRange{}, ast.Qualifiers{}, vec3, []ast.Declarator{{Name: "v"}})
	b.DeclareVariable(decl)

	base := b.BuildNameAccessExpr(ast.SyntaxRange{}, "v")
	repeated := b.BuildFieldOrSwizzleAccessExpr(ast.SyntaxRange{}, base, "xx")
	rhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 1))

	b.BuildBinaryExpr(ast.SyntaxRange{}, ast.BinaryAssign, repeated, rhs)
	assert.True(t, diags.HasErrors())
}

func TestAssigningToDistinctSwizzleComponentsIsAccepted(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	decl := ast.NewVariableDecl(ast.SyntaxRange{}, ast.Qualifiers{}, vec3, []ast.Declarator{{Name: "v"}})
	b.DeclareVariable(decl)

	base := b.BuildNameAccessExpr(ast.SyntaxRange{}, "v")
	lhs := b.BuildFieldOrSwizzleAccessExpr(ast.SyntaxRange{}, base, "xy")
	rhs := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.ConstValue{
		Type:     types.Vector(ast.F32, 2),
		Elements: []ast.Scalar{{Kind: ast.F32, F: 1}, {Kind: ast.F32, F: 2}},
	})

	b.BuildBinaryExpr(ast.SyntaxRange{}, ast.BinaryAssign, lhs, rhs)
	assert.False(t, diags.HasErrors())
}

func TestDeclareStructFlattensMultiDeclaratorFields(t *testing.T) {
	b, types, diags := newBuilder(t)
	floatType := types.Scalar(ast.F32)
	field := ast.NewStructFieldDecl(ast.SyntaxRange{}, floatType, []ast.Declarator{{Name: "a"}, {Name: "b"}})
	decl := ast.NewStructDecl(ast.SyntaxRange{}, "Pair", []*ast.StructFieldDecl{field})

	st := b.DeclareStruct(decl)
	require.False(t, diags.HasErrors())
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "a", st.Fields[0].Name)
	assert.Equal(t, "b", st.Fields[1].Name)
	assert.True(t, b.IsStructName("Pair"))
}

func TestBuildConstructorCallExprFoldsVectorConstructor(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	args := []ast.Expr{
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 1)),
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 2)),
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 3)),
	}

	e := b.BuildConstructorCallExpr(ast.SyntaxRange{}, vec3, args)
	require.False(t, diags.HasErrors())
	v, ok := e.ConstValue()
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Elements[0].F)
	assert.Equal(t, float64(2), v.Elements[1].F)
	assert.Equal(t, float64(3), v.Elements[2].F)
}

func TestBuildConstructorCallExprReportsInsufficientComponents(t *testing.T) {
	b, types, diags := newBuilder(t)
	vec3 := types.Vector(ast.F32, 3)
	args := []ast.Expr{b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 1))}

	b.BuildConstructorCallExpr(ast.SyntaxRange{}, vec3, args)
	assert.True(t, diags.HasErrors())
}

func TestCheckInitializerAgainstTypeValidatesArrayElementCount(t *testing.T) {
	b, types, diags := newBuilder(t)
	floatType := types.Scalar(ast.F32)
	arr := types.Array(floatType, 3)

	list := b.BuildInitializerListExpr(ast.SyntaxRange{}, []ast.Expr{
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 1)),
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewFloatScalar(types, ast.F32, 2)),
	})

	b.CheckInitializerAgainstType(ast.SyntaxRange{}, arr, list)
	assert.True(t, diags.HasErrors())
}

func TestDeclareFunctionRejectsDuplicateSignature(t *testing.T) {
	b, types, diags := newBuilder(t)
	floatType := types.Scalar(ast.F32)
	param := ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, floatType, "x", nil)
	decl1 := ast.NewFunctionDecl(ast.SyntaxRange{}, "foo", floatType, []*ast.ParamDecl{param}, nil)
	decl2 := ast.NewFunctionDecl(ast.SyntaxRange{}, "foo", floatType, []*ast.ParamDecl{param}, nil)

	b.DeclareFunction(decl1)
	require.False(t, diags.HasErrors())
	b.DeclareFunction(decl2)
	assert.True(t, diags.HasErrors())
}

func TestBuildFunctionCallExprResolvesOverloadByImplicitConversion(t *testing.T) {
	b, types, diags := newBuilder(t)
	f32 := types.Scalar(ast.F32)
	param := ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, f32, "x", nil)
	decl := ast.NewFunctionDecl(ast.SyntaxRange{}, "identity", f32, []*ast.ParamDecl{param}, nil)
	b.DeclareFunction(decl)

	arg := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))
	e := b.BuildFunctionCallExpr(ast.SyntaxRange{}, "identity", []ast.Expr{arg})
	require.False(t, diags.HasErrors())
	assert.Same(t, f32, e.DeducedType())
}

// Neither (f32,i32) nor (i32,f32) dominates the other once both arguments
// are i32 literals: each is strictly better at one position and worse at
// the other, so resolution must report an ambiguity rather than guess.
func TestBuildFunctionCallExprReportsAmbiguousOverload(t *testing.T) {
	b, types, diags := newBuilder(t)
	f32 := types.Scalar(ast.F32)
	i32 := types.Scalar(ast.I32)

	paramFI := []*ast.ParamDecl{
		ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, f32, "a", nil),
		ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, i32, "b", nil),
	}
	paramIF := []*ast.ParamDecl{
		ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, i32, "a", nil),
		ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, f32, "b", nil),
	}
	b.DeclareFunction(ast.NewFunctionDecl(ast.SyntaxRange{}, "f", f32, paramFI, nil))
	b.DeclareFunction(ast.NewFunctionDecl(ast.SyntaxRange{}, "f", f32, paramIF, nil))

	args := []ast.Expr{
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1)),
		b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 2)),
	}
	b.BuildFunctionCallExpr(ast.SyntaxRange{}, "f", args)
	assert.True(t, diags.HasErrors())
}

func TestBuildIfStmtRejectsNonBoolCondition(t *testing.T) {
	b, types, diags := newBuilder(t)
	cond := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))
	then := ast.NewEmptyStmt(ast.SyntaxRange{})

	b.BuildIfStmt(ast.SyntaxRange{}, cond, then, nil)
	assert.True(t, diags.HasErrors())
}

func TestBuildJumpStmtRejectsBreakOutsideLoopOrSwitch(t *testing.T) {
	b, _, diags := newBuilder(t)
	b.BuildJumpStmt(ast.SyntaxRange{}, ast.JumpBreak)
	assert.True(t, diags.HasErrors())
}

func TestBuildJumpStmtAcceptsBreakInsideLoop(t *testing.T) {
	b, _, diags := newBuilder(t)
	b.EnterLoop()
	b.BuildJumpStmt(ast.SyntaxRange{}, ast.JumpBreak)
	b.LeaveLoop()
	assert.False(t, diags.HasErrors())
}

func TestBuildJumpStmtRejectsContinueInsideSwitchOnly(t *testing.T) {
	b, _, diags := newBuilder(t)
	b.EnterSwitchBody()
	b.BuildJumpStmt(ast.SyntaxRange{}, ast.JumpContinue)
	b.LeaveSwitchBody()
	assert.True(t, diags.HasErrors())
}

func TestBuildReturnStmtRejectsValueInVoidFunction(t *testing.T) {
	b, types, diags := newBuilder(t)
	b.EnterFunctionScope(&ast.Type{Kind: ast.KindVoid})
	value := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))
	b.BuildReturnStmt(ast.SyntaxRange{}, value)
	b.LeaveFunctionScope()
	assert.True(t, diags.HasErrors())
}

func TestBuildReturnStmtInsertsImplicitCastToDeclaredReturnType(t *testing.T) {
	b, types, diags := newBuilder(t)
	f32 := types.Scalar(ast.F32)
	b.EnterFunctionScope(f32)
	value := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewIntScalar(types, ast.I32, 1))
	ret := b.BuildReturnStmt(ast.SyntaxRange{}, value)
	b.LeaveFunctionScope()

	require.False(t, diags.HasErrors())
	assert.Same(t, f32, ret.Value.DeducedType())
}

func TestBuildSwitchStmtRequiresIntTest(t *testing.T) {
	b, types, diags := newBuilder(t)
	test := b.BuildLiteralExpr(ast.SyntaxRange{}, ast.NewBoolScalar(types, true))
	body := ast.NewCompoundStmt(ast.SyntaxRange{}, nil)

	b.BuildSwitchStmt(ast.SyntaxRange{}, test, body)
	assert.True(t, diags.HasErrors())
}
