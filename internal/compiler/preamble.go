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

package compiler

import (
	"fmt"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/sema"
)

// buildSystemPreamble predeclares a representative subset of GLSL's builtin
// functions and variables, grounded on the name/signature inventory in
// builtins.go (elementwise math, geometric, and common `gl_*` stage
// variables). Full conformance to the complete GLSL builtin overload matrix
// is out of scope (spec.md §1 Non-goals: "Full conformance to every corner
// of the GLSL spec"); this set is enough to type-check ordinary shaders.
func buildSystemPreamble(types *ast.Context, lang LanguageConfig) ([]sema.BuiltinVar, []*ast.FunctionDecl) {
	var funcs []*ast.FunctionDecl
	funcs = append(funcs, unaryElementwise(types, "abs", "sign", "floor", "trunc", "round",
		"roundEven", "ceil", "fract", "sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh", "asinh", "acosh", "atanh", "exp", "log", "exp2", "log2",
		"sqrt", "inversesqrt", "radians", "degrees")...)
	funcs = append(funcs, binaryElementwise(types, "min", "max", "mod", "pow", "step",
		"matrixCompMult")...)
	funcs = append(funcs, ternaryElementwise(types, "clamp", "mix", "smoothstep", "faceforward",
		"refract")...)
	funcs = append(funcs, geometricFuncs(types)...)
	funcs = append(funcs, declFn("dot", types.Scalar(ast.F32), types.Vector(ast.F32, 2), types.Vector(ast.F32, 2)))

	vars := stageVars(types, lang.Stage)
	return vars, funcs
}

func declFn(name string, ret *ast.Type, params ...*ast.Type) *ast.FunctionDecl {
	pds := make([]*ast.ParamDecl, len(params))
	for i, t := range params {
		pds[i] = ast.NewParamDecl(ast.SyntaxRange{}, ast.Qualifiers{}, t, fmt.Sprintf("arg%d", i), nil)
	}
	return ast.NewFunctionDecl(ast.SyntaxRange{}, name, ret, pds, nil)
}

// floatLikeTypes is GLSL's genType set: float plus its vec2/vec3/vec4 forms,
// the shapes most elementwise builtins overload over.
func floatLikeTypes(types *ast.Context) []*ast.Type {
	return []*ast.Type{
		types.Scalar(ast.F32),
		types.Vector(ast.F32, 2),
		types.Vector(ast.F32, 3),
		types.Vector(ast.F32, 4),
	}
}

func unaryElementwise(types *ast.Context, names ...string) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, t := range floatLikeTypes(types) {
		for _, name := range names {
			out = append(out, declFn(name, t, t))
		}
	}
	return out
}

func binaryElementwise(types *ast.Context, names ...string) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, t := range floatLikeTypes(types) {
		for _, name := range names {
			out = append(out, declFn(name, t, t, t))
		}
	}
	return out
}

func ternaryElementwise(types *ast.Context, names ...string) []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for _, t := range floatLikeTypes(types) {
		for _, name := range names {
			out = append(out, declFn(name, t, t, t, t))
		}
	}
	return out
}

// geometricFuncs builds the vector-shaped-only geometric builtins that
// don't fit the elementwise genType pattern: length/normalize/distance keep
// their argument shape but fix (or drop) the return shape, and cross is
// vec3-only.
func geometricFuncs(types *ast.Context) []*ast.FunctionDecl {
	floatType := types.Scalar(ast.F32)
	vec3 := types.Vector(ast.F32, 3)

	var out []*ast.FunctionDecl
	for _, t := range floatLikeTypes(types) {
		out = append(out,
			declFn("length", floatType, t),
			declFn("normalize", t, t),
			declFn("distance", floatType, t, t),
			declFn("reflect", t, t, t),
		)
	}
	out = append(out, declFn("cross", vec3, vec3, vec3))
	return out
}

// stageVars predeclares the handful of `gl_*` interface variables relevant
// to stage, matching the original implementation's shader_symbols.go intent
// without reproducing its whole table.
func stageVars(types *ast.Context, stage Stage) []sema.BuiltinVar {
	vec4 := types.Vector(ast.F32, 4)
	floatType := types.Scalar(ast.F32)
	intType := types.Scalar(ast.I32)

	switch stage {
	case StageVertex:
		return []sema.BuiltinVar{
			{Name: "gl_Position", Type: vec4},
			{Name: "gl_PointSize", Type: floatType},
			{Name: "gl_VertexID", Type: intType},
			{Name: "gl_InstanceID", Type: intType},
		}
	case StageFragment:
		return []sema.BuiltinVar{
			{Name: "gl_FragCoord", Type: vec4},
			{Name: "gl_FragColor", Type: vec4},
			{Name: "gl_FragDepth", Type: floatType},
		}
	default:
		return nil
	}
}
