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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/macro"
	"github.com/daiyousei-qz/glsld-sub001/internal/parser"
	"github.com/daiyousei-qz/glsld-sub001/internal/preprocessor"
	"github.com/daiyousei-qz/glsld-sub001/internal/sema"
	"github.com/daiyousei-qz/glsld-sub001/internal/source"
)

// parse runs the full C3-C10 pipeline over src and returns the resulting
// translation unit alongside the diagnostics collected along the way.
func parse(t *testing.T, src string) (*parser.TranslationUnit, *diag.Sink) {
	t.Helper()
	atoms := atom.NewTable()
	diags := &diag.Sink{}
	macros := macro.New()
	mgr := source.NewManager()
	mgr.OpenFromBufferAt(source.MainFile, src)

	pp := preprocessor.Run(atoms, diags, macros, mgr, source.MainFile, preprocessor.Config{})
	types := ast.NewContext()
	sb := sema.NewBuilder(types, diags, pp.Stream)
	p := parser.New(pp.Stream, sb, diags)
	return p.ParseTranslationUnit(), diags
}

func TestEmptyMain(t *testing.T) {
	u, diags := parse(t, "")
	require.False(t, diags.HasErrors())
	assert.Empty(t, u.Decls)
}

func TestObjectMacroInitializer(t *testing.T) {
	u, diags := parse(t, "#define N 42\nint x = N;")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 1)

	decl, ok := u.Decls[0].(*ast.VariableDecl)
	require.True(t, ok)
	require.Len(t, decl.Declarators, 1)
	assert.Equal(t, "x", decl.Declarators[0].Name)

	v, ok := decl.Declarators[0].Initializer.ConstValue()
	require.True(t, ok)
	assert.Equal(t, int64(42), v.Elements[0].I)
}

func TestFunctionMacroTokenPasting(t *testing.T) {
	u, diags := parse(t, "#define CAT(a,b) a##b\nint CAT(foo,42) = 0;")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 1)

	decl := u.Decls[0].(*ast.VariableDecl)
	require.Len(t, decl.Declarators, 1)
	assert.Equal(t, "foo42", decl.Declarators[0].Name)
}

func TestConditionalSkip(t *testing.T) {
	u, diags := parse(t, "#if 0\n  this is garbage !!! @@@\n#endif\nint y;")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 1)
	decl := u.Decls[0].(*ast.VariableDecl)
	assert.Equal(t, "y", decl.Declarators[0].Name)
}

func TestOverloadResolutionExactMatchWins(t *testing.T) {
	u, diags := parse(t, "void f(int);\nvoid f(float);\nvoid f(uint);\nvoid g() { f(1); }")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 4)

	g := u.Decls[3].(*ast.FunctionDecl)
	require.NotNil(t, g.Body)
	require.Len(t, g.Body.Stmts, 1)

	call := g.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.FunctionCallExpr)
	require.NotNil(t, call.Resolved)
	require.Len(t, call.Resolved.Params, 1)
	assert.Equal(t, ast.I32, call.Resolved.Params[0].ElemType.Scalar)
}

func TestSwizzleTyping(t *testing.T) {
	u, diags := parse(t, "vec3 v;\nfloat a = v.x;\nvec2 b = v.xy;\nvec4 c = v.xyzw;")
	require.Len(t, u.Decls, 4)

	aDecl := u.Decls[1].(*ast.VariableDecl)
	assert.Equal(t, ast.F32, aDecl.Declarators[0].Initializer.DeducedType().Scalar)

	bDecl := u.Decls[2].(*ast.VariableDecl)
	assert.Equal(t, ast.KindVector, bDecl.Declarators[0].Initializer.DeducedType().Kind)
	assert.Equal(t, 2, bDecl.Declarators[0].Initializer.DeducedType().VectorSize)

	cDecl := u.Decls[3].(*ast.VariableDecl)
	assert.Equal(t, ast.KindError, cDecl.Declarators[0].Initializer.DeducedType().Kind)
	assert.True(t, diags.HasErrors())
}

func TestRecoveryAtUnclosedParen(t *testing.T) {
	u, diags := parse(t, "void foo((((((\n;\nvoid bar();")
	assert.True(t, diags.HasErrors())

	var names []string
	for _, d := range u.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name)
		}
	}
	assert.Contains(t, names, "foo")
	assert.Contains(t, names, "bar")

	for _, d := range u.Decls {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "bar" {
			assert.Nil(t, fn.Body)
		}
	}
}

func TestStructDeclAndFieldAccess(t *testing.T) {
	u, diags := parse(t, "struct Light { vec3 color; float intensity; };\nLight l;\nfloat i = l.intensity;")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 3)

	iDecl := u.Decls[2].(*ast.VariableDecl)
	assert.Equal(t, ast.F32, iDecl.Declarators[0].Initializer.DeducedType().Scalar)
}

func TestInterfaceBlockNamedInstance(t *testing.T) {
	u, diags := parse(t, "uniform Params { float scale; } params;\nfloat s = params.scale;")
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 2)

	sDecl := u.Decls[1].(*ast.VariableDecl)
	assert.Equal(t, ast.F32, sDecl.Declarators[0].Initializer.DeducedType().Scalar)
}

func TestIfWhileForControlFlow(t *testing.T) {
	u, diags := parse(t, `
void main() {
  int i = 0;
  while (i < 10) {
    if (i == 5) {
      break;
    }
    i = i + 1;
  }
  for (int j = 0; j < 4; j = j + 1) {
    continue;
  }
}
`)
	require.False(t, diags.HasErrors())
	require.Len(t, u.Decls, 1)
	fn := u.Decls[0].(*ast.FunctionDecl)
	require.NotNil(t, fn.Body)
	assert.Len(t, fn.Body.Stmts, 3)
}

func TestBreakOutsideLoopOrSwitchReportsError(t *testing.T) {
	_, diags := parse(t, "void main() { break; }")
	assert.True(t, diags.HasErrors())
}

func TestConstructorCallExprStatement(t *testing.T) {
	u, diags := parse(t, "void main() { vec4(1.0, 0.0, 0.0, 1.0); }")
	require.False(t, diags.HasErrors())
	fn := u.Decls[0].(*ast.FunctionDecl)
	require.Len(t, fn.Body.Stmts, 1)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	call, ok := stmt.Expr.(*ast.ConstructorCallExpr)
	require.True(t, ok)
	assert.Equal(t, ast.KindVector, call.DeducedType().Kind)
}
