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

// Package compiler implements the compiler invocation orchestrator (C12):
// it wires the scanner/preprocessor/parser/AST-builder pipeline together,
// caches the system preamble (builtin declarations) per dialect between
// invocations, and returns a
// single CompilerResult (spec.md §2, §6).
package compiler

// Profile is one of GLSL's three shading-language profiles.
type Profile int

const (
	ProfileCore Profile = iota
	ProfileCompatibility
	ProfileEs
)

func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	case ProfileEs:
		return "es"
	default:
		return "unknown"
	}
}

// Stage is the shader pipeline stage a translation unit targets, used only
// to decide which stage-specific builtin variables (gl_Position, and so on)
// the system preamble predeclares.
type Stage int

const (
	StageUnknown Stage = iota
	StageVertex
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
	StageRayGeneration
	StageRayAnyHit
	StageRayClosestHit
	StageRayMiss
	StageRayIntersection
	StageRayCallable
	StageTask
	StageMesh
)

// esVersions is the subset of the version enum that defaults to ProfileEs
// when LanguageConfig.Profile isn't given explicitly.
var esVersions = map[int]bool{100: true, 300: true, 310: true, 320: true}

// LanguageConfig selects the GLSL dialect a translation unit is compiled
// against (spec.md §6).
type LanguageConfig struct {
	Version    int
	Profile    Profile
	Stage      Stage
	Extensions map[string]bool
	NoStdlib   bool
}

// LanguageOption configures a LanguageConfig built by NewLanguageConfig.
type LanguageOption func(*LanguageConfig)

// WithVersion sets the declared GLSL version, e.g. 450.
func WithVersion(v int) LanguageOption { return func(c *LanguageConfig) { c.Version = v } }

// WithProfile overrides the profile that would otherwise be derived from
// the version.
func WithProfile(p Profile) LanguageOption { return func(c *LanguageConfig) { c.Profile = p } }

// WithStage sets the shader pipeline stage.
func WithStage(s Stage) LanguageOption { return func(c *LanguageConfig) { c.Stage = s } }

// WithExtension enables one GLSL extension by name, e.g. "GL_OES_standard_derivatives".
func WithExtension(name string) LanguageOption {
	return func(c *LanguageConfig) {
		if c.Extensions == nil {
			c.Extensions = make(map[string]bool)
		}
		c.Extensions[name] = true
	}
}

// WithNoStdlib skips the system preamble: no builtin functions or variables
// are predeclared, useful for testing the front end in isolation.
func WithNoStdlib() LanguageOption { return func(c *LanguageConfig) { c.NoStdlib = true } }

// NewLanguageConfig builds a LanguageConfig from options, deriving Profile
// from Version when the caller didn't set one explicitly.
func NewLanguageConfig(opts ...LanguageOption) LanguageConfig {
	const unset Profile = -1
	c := LanguageConfig{Version: 460, Profile: unset}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Profile == unset {
		c.Profile = ProfileCore
		if esVersions[c.Version] {
			c.Profile = ProfileEs
		}
	}
	return c
}

const defaultMaxIncludeDepth = 16

// CompilerConfig controls the mechanics of one invocation, independent of
// the GLSL dialect being compiled (spec.md §6).
type CompilerConfig struct {
	IncludePaths         []string
	CountUTF16Character  bool
	MaxIncludeDepth      int
	DumpTokens, DumpAST  bool
	Callback             PreprocessorCallback
}

// CompilerOption configures a CompilerConfig built by NewCompilerConfig.
type CompilerOption func(*CompilerConfig)

// WithIncludePaths sets the ordered list of directories consulted for
// `#include`.
func WithIncludePaths(paths ...string) CompilerOption {
	return func(c *CompilerConfig) { c.IncludePaths = paths }
}

// WithUTF16Columns selects UTF-16 code-unit column counting instead of the
// default byte counting (spec.md §6 `countUtf16Character`).
func WithUTF16Columns() CompilerOption { return func(c *CompilerConfig) { c.CountUTF16Character = true } }

// WithMaxIncludeDepth overrides the default include-recursion limit.
func WithMaxIncludeDepth(n int) CompilerOption { return func(c *CompilerConfig) { c.MaxIncludeDepth = n } }

// WithDumpTokens enables a debug dump of the post-PP token stream to the
// invocation's logger.
func WithDumpTokens() CompilerOption { return func(c *CompilerConfig) { c.DumpTokens = true } }

// WithDumpAST enables a debug dump of the parsed translation unit's
// top-level declaration shapes to the invocation's logger.
func WithDumpAST() CompilerOption { return func(c *CompilerConfig) { c.DumpAST = true } }

// WithCallback registers a host callback invoked for preprocessing events
// (spec.md §6).
func WithCallback(cb PreprocessorCallback) CompilerOption {
	return func(c *CompilerConfig) { c.Callback = cb }
}

// NewCompilerConfig builds a CompilerConfig from options, applying the
// documented default MaxIncludeDepth when unset.
func NewCompilerConfig(opts ...CompilerOption) CompilerConfig {
	c := CompilerConfig{MaxIncludeDepth: defaultMaxIncludeDepth}
	for _, opt := range opts {
		opt(&c)
	}
	if c.MaxIncludeDepth <= 0 {
		c.MaxIncludeDepth = defaultMaxIncludeDepth
	}
	return c
}

// Mode selects how far CompileFile/CompileSource carries an invocation.
type Mode int

const (
	// ModeFull runs preprocessing, parsing and AST construction.
	ModeFull Mode = iota
	// ModePreprocessOnly stops after the token stream, skipping parser/sema
	// entirely; CompilerResult.AST is nil.
	ModePreprocessOnly
	// ModeParseOnly is retained for API symmetry with ModePreprocessOnly; this
	// front end's parser calls directly into the AST builder as it recognizes
	// each production (spec.md §2's "parser ... producing AST via C9"), so
	// there is no untyped parse tree distinct from the typed AST to stop at.
	// ModeParseOnly therefore behaves identically to ModeFull (documented
	// simplification).
	ModeParseOnly
)
