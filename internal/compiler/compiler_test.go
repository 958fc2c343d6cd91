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

package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/compiler"
)

func TestCompileSourceFullMode(t *testing.T) {
	c := compiler.New(nil)
	lang := compiler.NewLanguageConfig(compiler.WithStage(compiler.StageFragment))
	cfg := compiler.NewCompilerConfig()

	res := c.CompileSource(`
void main() {
  vec4 color = vec4(1.0, 0.0, 0.0, 1.0);
  gl_FragColor = color;
}
`, lang, cfg, compiler.ModeFull)

	require.False(t, res.Diagnostics.HasErrors())
	require.NotNil(t, res.AST)
	require.Len(t, res.AST.Decls, 1)

	fn, ok := res.AST.Decls[0].(*ast.FunctionDecl)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	require.NotNil(t, fn.Body)
	assert.Len(t, fn.Body.Stmts, 2)

	var sawPreprocess, sawParse bool
	for _, s := range res.Stats {
		switch s.Phase {
		case "preprocess":
			sawPreprocess = true
		case "parse":
			sawParse = true
		}
	}
	assert.True(t, sawPreprocess)
	assert.True(t, sawParse)
}

func TestCompileSourcePreprocessOnlySkipsParsing(t *testing.T) {
	c := compiler.New(nil)
	lang := compiler.NewLanguageConfig()
	cfg := compiler.NewCompilerConfig()

	res := c.CompileSource("int x = 1;", lang, cfg, compiler.ModePreprocessOnly)

	assert.Nil(t, res.AST)
	require.NotNil(t, res.Stream)
	assert.Greater(t, res.Stream.Len(), 0)
}

func TestCompileSourceNoStdlibLeavesBuiltinsUndeclared(t *testing.T) {
	c := compiler.New(nil)
	lang := compiler.NewLanguageConfig(compiler.WithNoStdlib())
	cfg := compiler.NewCompilerConfig()

	res := c.CompileSource("void main() { float x = sin(1.0); }", lang, cfg, compiler.ModeFull)

	assert.True(t, res.Diagnostics.HasErrors())
}

func TestPreambleCachedAcrossInvocations(t *testing.T) {
	c := compiler.New(nil)
	lang := compiler.NewLanguageConfig(compiler.WithStage(compiler.StageVertex))
	cfg := compiler.NewCompilerConfig()

	res1 := c.CompileSource("void main() { gl_Position = vec4(0.0); }", lang, cfg, compiler.ModeFull)
	res2 := c.CompileSource("void main() { gl_Position = vec4(1.0); }", lang, cfg, compiler.ModeFull)

	require.False(t, res1.Diagnostics.HasErrors())
	require.False(t, res2.Diagnostics.HasErrors())

	fn1 := res1.AST.Decls[0].(*ast.FunctionDecl)
	fn2 := res2.AST.Decls[0].(*ast.FunctionDecl)
	assign1 := fn1.Body.Stmts[0].(*ast.ExprStmt).Expr
	assign2 := fn2.Body.Stmts[0].(*ast.ExprStmt).Expr

	assert.True(t, ast.Equal(assign1.DeducedType(), assign2.DeducedType()))
}

func TestLanguageConfigDerivesEsProfileFromVersion(t *testing.T) {
	lang := compiler.NewLanguageConfig(compiler.WithVersion(300))
	assert.Equal(t, compiler.ProfileEs, lang.Profile)
}
