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
	"sync"
	"time"

	"github.com/daiyousei-qz/glsld-sub001/internal/ast"
	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/macro"
	"github.com/daiyousei-qz/glsld-sub001/internal/parser"
	"github.com/daiyousei-qz/glsld-sub001/internal/preprocessor"
	"github.com/daiyousei-qz/glsld-sub001/internal/sema"
	"github.com/daiyousei-qz/glsld-sub001/internal/source"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
	"github.com/daiyousei-qz/glsld-sub001/internal/tokstream"
	"github.com/daiyousei-qz/glsld-sub001/internal/xlog"
)

// preambleKey identifies a cached system preamble: two invocations with the
// same dialect settings share one *ast.Context plus its builtin tables, so
// ast.Type's pointer-identity equality holds across them.
type preambleKey struct {
	version  int
	profile  Profile
	stage    Stage
	noStdlib bool
	exts     string // sorted, comma-joined extension names
}

type cachedPreamble struct {
	types *ast.Context
	vars  []sema.BuiltinVar
	funcs []*ast.FunctionDecl
}

// Compiler owns the preamble cache for a sequence of invocations against
// possibly-varying LanguageConfigs (spec.md §6). The zero value is not
// usable; construct with New.
type Compiler struct {
	log *xlog.Logger

	mu        sync.Mutex
	preambles map[preambleKey]*cachedPreamble
}

// New constructs a Compiler. A nil logger discards all log output.
func New(log *xlog.Logger) *Compiler {
	if log == nil {
		log = xlog.Discard()
	}
	return &Compiler{log: log, preambles: make(map[preambleKey]*cachedPreamble)}
}

func keyFor(lang LanguageConfig) preambleKey {
	names := make([]string, 0, len(lang.Extensions))
	for name, enabled := range lang.Extensions {
		if enabled {
			names = append(names, name)
		}
	}
	sortStrings(names)
	joined := ""
	for i, n := range names {
		if i > 0 {
			joined += ","
		}
		joined += n
	}
	return preambleKey{
		version:  lang.Version,
		profile:  lang.Profile,
		stage:    lang.Stage,
		noStdlib: lang.NoStdlib,
		exts:     joined,
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// preambleFor returns the cached preamble for lang, building and caching one
// on first use. NoStdlib configs get an empty, uncached preamble: there is
// nothing worth sharing.
func (c *Compiler) preambleFor(lang LanguageConfig) *cachedPreamble {
	if lang.NoStdlib {
		return &cachedPreamble{types: ast.NewContext()}
	}

	key := keyFor(lang)
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.preambles[key]; ok {
		return p
	}

	types := ast.NewContext()
	vars, funcs := buildSystemPreamble(types, lang)
	p := &cachedPreamble{types: types, vars: vars, funcs: funcs}
	c.preambles[key] = p
	return p
}

// PhaseStat records how long one pipeline phase took during an invocation
// (spec.md §6's invocation statistics).
type PhaseStat struct {
	Phase    string
	Duration time.Duration
}

// CompilerResult is the outcome of one CompileSource/CompileFile call. AST is
// nil only when mode is ModePreprocessOnly; otherwise the parser always runs
// over whatever token stream preprocessing produced. A non-empty Diagnostics.Errors()
// marks the invocation a failure; the core never aborts early on its own
// (spec.md §7).
type CompilerResult struct {
	AST         *parser.TranslationUnit
	Stream      *tokstream.Stream
	Diagnostics *diag.Sink
	Version     int
	Profile     string
	Extensions  []preprocessor.Extension
	Stats       []PhaseStat
}

func (c *Compiler) CompileSource(src string, lang LanguageConfig, cfg CompilerConfig, mode Mode) *CompilerResult {
	mgr := source.NewManager()
	mgr.OpenFromBufferAt(source.MainFile, src)
	return c.compile(mgr, source.MainFile, lang, cfg, mode)
}

func (c *Compiler) CompileFile(path string, lang LanguageConfig, cfg CompilerConfig, mode Mode) (*CompilerResult, error) {
	mgr := source.NewManager()
	id, err := mgr.OpenFromFile(path)
	if err != nil {
		return nil, err
	}
	return c.compile(mgr, id, lang, cfg, mode), nil
}

func (c *Compiler) compile(mgr *source.Manager, fileID source.ID, lang LanguageConfig, cfg CompilerConfig, mode Mode) *CompilerResult {
	diags := &diag.Sink{}
	atoms := atom.NewTable()
	macros := macro.New()

	var onPragma func(string)
	if cfg.Callback != nil {
		onPragma = func(text string) { cfg.Callback.Pragma([]string{text}) }
	}

	var stats []PhaseStat

	ppStart := time.Now()
	pp := preprocessor.Run(atoms, diags, macros, mgr, fileID, preprocessor.Config{
		IncludePaths:    cfg.IncludePaths,
		MaxIncludeDepth: cfg.MaxIncludeDepth,
		UTF16Columns:    cfg.CountUTF16Character,
		OnPragma:        onPragma,
	})
	stats = append(stats, PhaseStat{Phase: "preprocess", Duration: time.Since(ppStart)})

	if cfg.DumpTokens {
		c.dumpTokens(pp)
	}

	result := &CompilerResult{
		Stream:      pp.Stream,
		Diagnostics: diags,
		Version:     pp.Version,
		Profile:     pp.Profile,
		Extensions:  pp.Extensions,
	}

	if mode == ModePreprocessOnly {
		result.Stats = stats
		return result
	}

	preamble := c.preambleFor(lang)

	parseStart := time.Now()
	sb := sema.NewBuilder(preamble.types, diags, pp.Stream)
	sb.ImportBuiltins(preamble.vars, preamble.funcs)
	p := parser.New(pp.Stream, sb, diags)
	unit := p.ParseTranslationUnit()
	stats = append(stats, PhaseStat{Phase: "parse", Duration: time.Since(parseStart)})

	if cfg.DumpAST {
		c.dumpAST(unit)
	}

	result.AST = unit
	result.Stats = stats
	return result
}

func (c *Compiler) dumpTokens(pp *preprocessor.Result) {
	for i := 0; i < pp.Stream.Len(); i++ {
		tok := pp.Stream.At(token.ID(i))
		c.log.Debug("token %d: %s %q", i, tok.Klass, tok.Text.Text())
	}
}

func (c *Compiler) dumpAST(unit *parser.TranslationUnit) {
	for _, d := range unit.Decls {
		c.log.Debug("decl: %T", d)
	}
}
