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

// Package ppexpand implements the macro expansion processor (C6): it
// rescans a stream of PP-tokens fed one at a time, substituting macro
// invocations (with `##` token pasting and parameter substitution) and
// yielding the result via a callback (spec.md §4.6).
//
// The hide-set bookkeeping is adapted from the teacher's
// preprocessorImpl.go (processMacro/parseMacroCallArgs/readMacroArgs),
// generalized from its single-pass list-based rescanning into the
// streaming feed/callback shape spec.md requires, since callers here
// (the preprocessor state machine, C7) need to push tokens one at a time
// rather than handing the whole file to the expander up front.
package ppexpand

import (
	"strconv"

	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/macro"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// hideSet is the set of macro names a token must not be re-expanded by,
// per the classic Dave Prosser algorithm the teacher's preprocessorImpl.go
// also implements.
type hideSet map[string]struct{}

func (h hideSet) contains(name string) bool { _, ok := h[name]; return ok }

func intersect(a, b hideSet) hideSet {
	out := make(hideSet)
	for k := range a {
		if b.contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

func with(h hideSet, name string) hideSet {
	out := make(hideSet, len(h)+1)
	for k := range h {
		out[k] = struct{}{}
	}
	out[name] = struct{}{}
	return out
}

// taggedToken carries a token, the hide set accumulated for it so far, and
// whether it is a product of macro substitution rather than a direct
// pass-through -- the preprocessor state machine (C7) uses that to decide
// whether a token's expandedRange is its own spelled range or a zero-width
// pin at the macro-use site (spec.md §3, §4.6).
type taggedToken struct {
	tok      token.PPToken
	hide     hideSet
	expanded bool
}

// Context holds everything one expansion processor needs: the shared macro
// table, atom table (for synthesizing pasted identifiers) and diagnostic
// sink, plus the predefined-macro substitution values (spec.md §4.6).
type Context struct {
	Macros *macro.Table
	Atoms  *atom.Table
	Diags  *diag.Sink

	Line    func() int   // current source line, for __LINE__
	File    func() int32 // current numeric file id, for __FILE__ -- a func, not a fixed value, since it must track #include descent
	Version func() int   // active language version, for __VERSION__ -- a func since #version may appear after earlier macro expansion has already run
}

// Emit is the callback a Processor invokes once per output token. expanded
// is true when tok is a product of macro substitution (its spelled
// position has been rewritten to the invocation site) rather than a direct
// pass-through of the fed token.
type Emit func(tok token.PPToken, expanded bool)

// Processor is a streaming macro expander: callers push source tokens one
// at a time via Feed; it calls back into emit with zero or more expanded
// tokens as soon as it can determine them (spec.md §4.6's "No context" /
// "Argument collection" state pair).
type Processor struct {
	ctx  *Context
	emit Emit

	// withheld is a function-like macro name token seen in "No context"
	// state, waiting to see whether '(' follows.
	withheld *taggedToken

	// collecting is non-nil while gathering arguments for withheld.
	collecting *argCollector
}

type argCollector struct {
	macroTok taggedToken
	def      *macro.Definition
	depth    int
	args     [][]taggedToken
	cur      []taggedToken
}

// New constructs a Processor that calls emit for each fully expanded
// output token.
func New(ctx *Context, emit Emit) *Processor {
	return &Processor{ctx: ctx, emit: emit}
}

// Feed pushes one source token into the processor.
func (p *Processor) Feed(tok token.PPToken) {
	p.feedTagged(taggedToken{tok: tok, hide: nil})
}

// Finalize flushes any withheld identifier (treated as a non-invocation)
// and reports an unterminated argument list, per spec.md §4.6.
func (p *Processor) Finalize() {
	if p.collecting != nil {
		p.ctx.Diags.Errorf(token.Zero(tok2pos(p.collecting.macroTok.tok)), "unterminated argument list invoking macro '%s'", p.collecting.macroTok.tok.Text.Text())
		p.collecting = nil
	}
	if p.withheld != nil {
		p.emitOne(*p.withheld)
		p.withheld = nil
	}
}

func tok2pos(t token.PPToken) token.Position { return t.SpelledRange.Start }

func (p *Processor) feedTagged(tt taggedToken) {
	if p.collecting != nil {
		p.feedArgCollection(tt)
		return
	}

	if p.withheld != nil {
		w := *p.withheld
		p.withheld = nil
		if tt.tok.Klass == token.LParen {
			def, _ := p.ctx.Macros.FindEnabled(w.tok.Text.Text())
			p.collecting = &argCollector{macroTok: w, def: def, depth: 1}
			return
		}
		// Not a call after all: emit the withheld identifier, then
		// reprocess tt from scratch.
		p.emitOne(w)
	}

	p.processNoContext(tt)
}

func (p *Processor) processNoContext(tt taggedToken) {
	if tt.tok.Klass == token.Eof {
		p.emitOne(tt)
		return
	}

	if tt.tok.Klass != token.Identifier {
		p.emitOne(tt)
		return
	}

	name := tt.tok.Text.Text()
	if tt.hide.contains(name) {
		p.emitOne(tt)
		return
	}

	if v, ok := p.predefined(tt.tok); ok {
		p.emitOne(taggedToken{tok: v, hide: with(tt.hide, name), expanded: true})
		return
	}

	def, ok := p.ctx.Macros.FindEnabled(name)
	if !ok {
		p.emitOne(tt)
		return
	}

	if !def.Function {
		p.expandObjectLike(tt, def)
		return
	}

	// Function-like: withhold until we see whether '(' follows.
	p.withheld = &tt
}

func (p *Processor) predefined(tok token.PPToken) (token.PPToken, bool) {
	switch tok.Text.Text() {
	case "__LINE__":
		line := 0
		if p.ctx.Line != nil {
			line = p.ctx.Line()
		}
		return p.syntheticInt(tok, strconv.Itoa(line)), true
	case "__FILE__":
		file := int32(0)
		if p.ctx.File != nil {
			file = p.ctx.File()
		}
		return p.syntheticInt(tok, strconv.Itoa(int(file))), true
	case "__VERSION__":
		version := 0
		if p.ctx.Version != nil {
			version = p.ctx.Version()
		}
		return p.syntheticInt(tok, strconv.Itoa(version)), true
	default:
		return token.PPToken{}, false
	}
}

func (p *Processor) syntheticInt(site token.PPToken, text string) token.PPToken {
	return token.PPToken{
		Klass:        token.IntegerConstant,
		SpelledFile:  site.SpelledFile,
		SpelledRange: site.SpelledRange,
		Text:         p.ctx.Atoms.GetAtom(text),
	}
}

func (p *Processor) expandObjectLike(tt taggedToken, def *macro.Definition) {
	newHide := with(tt.hide, def.Name)
	list := p.substitute(def, argSet{}, newHide, tt.tok)
	p.rescan(list)
}

func (p *Processor) feedArgCollection(tt taggedToken) {
	c := p.collecting
	if tt.tok.Klass == token.Eof {
		p.ctx.Diags.Errorf(token.Zero(tok2pos(tt.tok)), "unterminated argument list invoking macro '%s'", c.macroTok.tok.Text.Text())
		p.collecting = nil
		p.emitOne(c.macroTok)
		p.emitOne(tt)
		return
	}

	switch tt.tok.Klass {
	case token.LParen:
		c.depth++
		c.cur = append(c.cur, tt)
	case token.RParen:
		c.depth--
		if c.depth == 0 {
			c.args = append(c.args, c.cur)
			p.finishArgCollection(tt)
			return
		}
		c.cur = append(c.cur, tt)
	case token.Comma:
		if c.depth == 1 {
			c.args = append(c.args, c.cur)
			c.cur = nil
		} else {
			c.cur = append(c.cur, tt)
		}
	default:
		c.cur = append(c.cur, tt)
	}
}

func (p *Processor) finishArgCollection(closeParen taggedToken) {
	c := p.collecting
	p.collecting = nil

	if c.def == nil {
		// Macro was disabled between withholding and now; treat as a
		// literal call to an unexpanded identifier.
		p.emitOne(c.macroTok)
		for _, arg := range c.args {
			for _, t := range arg {
				p.emitOne(t)
			}
		}
		p.emitOne(closeParen)
		return
	}

	args := c.args
	if len(args) == 1 && len(args[0]) == 0 && len(c.def.Params) == 0 {
		args = nil
	}
	if len(args) != len(c.def.Params) {
		p.ctx.Diags.Errorf(token.Zero(tok2pos(c.macroTok.tok)),
			"macro '%s' invoked with %d argument(s), expected %d", c.def.Name, len(args), len(c.def.Params))
		for len(args) < len(c.def.Params) {
			args = append(args, nil)
		}
	}

	// Pre-expand each argument (spec.md §4.6 item 3: "the parameter's
	// *expanded* argument sequence").
	expandedArgs := make([][]taggedToken, len(args))
	for i, arg := range args {
		expandedArgs[i] = p.expandList(arg)
	}

	hide := intersect(c.macroTok.hide, closeParen.hide)
	hide = with(hide, c.def.Name)

	list := p.substitute(c.def, argSet{raw: args, expanded: expandedArgs}, hide, c.macroTok.tok)
	p.rescan(list)
}

type argSet struct {
	raw      [][]taggedToken
	expanded [][]taggedToken
}

// substitute builds the replacement-list token sequence for one macro
// invocation: parameter references are swapped for their expanded argument
// tokens, `##` pastes adjacent operands (using the *unexpanded* argument
// token when exactly one was supplied, per spec.md §4.6 item 2), and every
// resulting token's spelled position is rewritten to site, the macro-use
// site (spec.md §4.6: "All emitted tokens are rewritten so their spelled
// position is the macro-use site").
func (p *Processor) substitute(def *macro.Definition, args argSet, hide hideSet, site token.PPToken) []taggedToken {
	var expanded []taggedToken
	body := def.Body
	mk := func(tok token.PPToken, h hideSet) taggedToken {
		return taggedToken{tok: rewriteSite(tok, site), hide: h, expanded: true}
	}

	for i := 0; i < len(body); i++ {
		tokText := body[i].Text.Text()

		if tokText == "#" {
			// Stringification is unsupported in GLSL (spec.md §4.6 item 1).
			p.ctx.Diags.Errorf(token.Zero(body[i].SpelledRange.Start), "'#' stringification operator is not supported")
			continue
		}

		if i+1 < len(body) && body[i+1].Klass == token.HashHash {
			lhsToks := p.pasteOperand(def, args, body[i])
			j := i + 1
			pasted := lastOrSelf(lhsToks, taggedToken{tok: body[i], hide: hide})
			for j < len(body) && body[j].Klass == token.HashHash {
				rhsIdx := j + 1
				if rhsIdx >= len(body) {
					break
				}
				rhsToks := p.pasteOperand(def, args, body[rhsIdx])
				rhsFirst := firstOrSelf(rhsToks, taggedToken{tok: body[rhsIdx], hide: hide})
				pasted = p.pasteTokens(pasted, rhsFirst)
				j = rhsIdx + 1
			}
			expanded = append(expanded, mk(pasted.tok, pasted.hide))
			i = j - 1
			continue
		}

		if idx := def.ParamIndex(tokText); idx >= 0 && args.expanded != nil {
			for _, a := range args.expanded[idx] {
				expanded = append(expanded, mk(a.tok, a.hide))
			}
			continue
		}

		expanded = append(expanded, mk(body[i], hide))
	}
	return expanded
}

// pasteOperand returns the token list a `##` operand resolves to before
// pasting: for a parameter name with exactly one unexpanded argument token,
// that one raw token; for a parameter with zero or >1 tokens, all of them
// (only the first/last participate in the actual paste); for anything
// else, the literal token itself.
func (p *Processor) pasteOperand(def *macro.Definition, args argSet, bodyTok token.PPToken) []taggedToken {
	idx := def.ParamIndex(bodyTok.Text.Text())
	if idx < 0 || args.raw == nil {
		return nil
	}
	return args.raw[idx]
}

func lastOrSelf(list []taggedToken, self taggedToken) taggedToken {
	if len(list) == 0 {
		return self
	}
	return list[len(list)-1]
}
func firstOrSelf(list []taggedToken, self taggedToken) taggedToken {
	if len(list) == 0 {
		return self
	}
	return list[0]
}

// rewriteSite attributes an expansion-produced token to the macro-use site:
// its spelledRange is an empty range pinned at the site's start, not the
// site's full width (RawSyntaxTokenEntry's spelledRange is documented as
// empty for a macro-created token).
func rewriteSite(t token.PPToken, site token.PPToken) token.PPToken {
	t.SpelledFile = site.SpelledFile
	t.SpelledRange = token.Zero(site.SpelledRange.Start)
	return t
}

// pasteTokens concatenates the text of lhs and rhs and retokenizes once;
// a paste that yields zero or multiple tokens is diagnosed and the lhs is
// kept unchanged (spec.md §4.6 item 2).
func (p *Processor) pasteTokens(lhs, rhs taggedToken) taggedToken {
	combinedText := lhs.tok.Text.Text() + rhs.tok.Text.Text()
	klass, ok := retokenizeOne(combinedText)
	if !ok {
		p.ctx.Diags.Errorf(token.Zero(lhs.tok.SpelledRange.Start), "pasting '%s' and '%s' does not form a valid token", lhs.tok.Text.Text(), rhs.tok.Text.Text())
		return lhs
	}
	merged := lhs.tok
	merged.Klass = klass
	merged.Text = p.ctx.Atoms.GetAtom(combinedText)
	return taggedToken{tok: merged, hide: intersect(lhs.hide, rhs.hide)}
}

// retokenizeOne classifies combined as a single token, if it is one. This
// mirrors the scanner's own identifier/number/punctuation rules at a
// narrow scope sufficient for `##` results (identifiers, keywords and
// numbers are the only realistic paste targets in GLSL macros).
func retokenizeOne(combined string) (token.Klass, bool) {
	if combined == "" {
		return token.Invalid, false
	}
	if isIdentStart(combined[0]) {
		for i := 1; i < len(combined); i++ {
			if !isIdentCont(combined[i]) {
				return token.Invalid, false
			}
		}
		if k, ok := token.LookupKeyword(combined); ok {
			return k, ok
		}
		return token.Identifier, true
	}
	if isDigit(combined[0]) {
		for i := 1; i < len(combined); i++ {
			if !isDigit(combined[i]) && combined[i] != '.' {
				return token.Invalid, false
			}
		}
		return token.IntegerConstant, true
	}
	if k, ok := token.LookupKeyword(combined); ok {
		return k, ok
	}
	return token.Invalid, false
}

func isIdentStart(b byte) bool { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentCont(b byte) bool  { return isIdentStart(b) || isDigit(b) }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }

// expandList runs a nested Processor over a fully materialized argument
// token list and returns its fully expanded output (spec.md §4.6's
// "macro argument pre-expansion").
func (p *Processor) expandList(list []taggedToken) []taggedToken {
	var out []taggedToken
	nested := New(p.ctx, func(t token.PPToken, expanded bool) {
		if t.Klass != token.Eof {
			out = append(out, taggedToken{tok: t, hide: nil, expanded: expanded})
		}
	})
	for _, tt := range list {
		nested.feedTagged(tt)
	}
	nested.Finalize()
	return out
}

// rescan feeds a macro's substituted replacement list back through this
// same processor's "No context" state so any macros it still names get
// expanded (spec.md §4.6: "fed into a fresh nested processor to perform
// rescan-and-further-expansion").
func (p *Processor) rescan(list []taggedToken) {
	for _, tt := range list {
		p.feedTagged(tt)
	}
}

func (p *Processor) emitOne(tt taggedToken) {
	p.emit(tt.tok, tt.expanded)
}
