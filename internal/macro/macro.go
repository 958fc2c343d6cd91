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

// Package macro implements the macro table (C4): a mapping from an
// interned macro name to its definition, with an enable/disable flag that
// FindEnabled respects. The expansion processor (C6) does not toggle that
// flag; it suppresses recursive self-expansion with per-token hide sets.
package macro

import "github.com/daiyousei-qz/glsld-sub001/internal/token"

// Definition is one macro's replacement list, grounded on the teacher's
// macroDefinition (preprocessorImpl.go): name, function-like flag, formal
// parameter count, and the replacement-list tokens.
type Definition struct {
	Name       string
	Function   bool
	Params     []string // formal parameter names, in order; len(Params) is the parameter count
	Body       []token.PPToken
	Predefined bool // __LINE__, __FILE__, __VERSION__, GL_ES, ...: can't be #undef-ed

	enabled bool
}

// NewObjectLike builds an object-like macro definition.
func NewObjectLike(name string, body []token.PPToken) *Definition {
	return &Definition{Name: name, Body: body, enabled: true}
}

// NewFunctionLike builds a function-like macro definition.
func NewFunctionLike(name string, params []string, body []token.PPToken) *Definition {
	return &Definition{Name: name, Function: true, Params: params, Body: body, enabled: true}
}

// ParamIndex returns the position of name among the formal parameters, or
// -1 if name is not a parameter of this definition.
func (d *Definition) ParamIndex(name string) int {
	for i, p := range d.Params {
		if p == name {
			return i
		}
	}
	return -1
}

// Enabled reports whether this macro may currently be expanded. Definitions
// start enabled and only Disable clears the flag; ppexpand never calls
// Disable, so during expansion a macro stays enabled and its self-recursion
// is stopped by hide sets instead.
func (d *Definition) Enabled() bool { return d.enabled }

// Disable suppresses further expansion of this macro through FindEnabled
// until Enable is called. The flag does not nest: one Enable undoes any
// number of Disable calls.
func (d *Definition) Disable() { d.enabled = false }

// Enable re-permits expansion of this macro.
func (d *Definition) Enable() { d.enabled = true }

// Table is the macro name -> Definition map owned by one preprocessor
// instance (or shared read-only from a precompiled preamble).
type Table struct {
	entries map[string]*Definition
}

// New constructs an empty Table seeded with the language's predefined
// macros (spec.md §4.6, §4.12): __LINE__, __FILE__ and __VERSION__ are
// substituted specially by ppexpand rather than from Body, so they're
// registered here only so isDefined/#ifdef/#undef see them.
func New() *Table {
	t := &Table{entries: make(map[string]*Definition)}
	for _, name := range []string{"__LINE__", "__FILE__", "__VERSION__"} {
		t.entries[name] = &Definition{Name: name, Predefined: true, enabled: true}
	}
	return t
}

// DefineObjectLike installs an object-like macro, returning true if the name
// already had a definition, identical or not — the caller reports that as
// a diagnostic (spec.md §4.4: "Redefinition is permitted but reported").
func (t *Table) DefineObjectLike(name string, body []token.PPToken) bool {
	_, redefined := t.entries[name]
	t.entries[name] = NewObjectLike(name, body)
	return redefined
}

// DefineFunctionLike installs a function-like macro.
func (t *Table) DefineFunctionLike(name string, params []string, body []token.PPToken) bool {
	_, redefined := t.entries[name]
	t.entries[name] = NewFunctionLike(name, params, body)
	return redefined
}

// Undef removes a macro definition. It reports (via its bool result) an
// attempt to #undef a predefined macro, in which case the table is left
// unchanged.
func (t *Table) Undef(name string) (protected bool) {
	d, ok := t.entries[name]
	if !ok {
		return false
	}
	if d.Predefined {
		return true
	}
	delete(t.entries, name)
	return false
}

// IsDefined reports whether name currently has a definition.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Find looks up name regardless of its enabled state.
func (t *Table) Find(name string) (*Definition, bool) {
	d, ok := t.entries[name]
	return d, ok
}

// FindEnabled looks up name, returning ok=false if it is undefined or
// currently disabled by Disable.
func (t *Table) FindEnabled(name string) (*Definition, bool) {
	d, ok := t.entries[name]
	if !ok || !d.Enabled() {
		return nil, false
	}
	return d, true
}

// Import merges entries from a read-only preamble table into t, without
// overwriting any name t already defines (spec.md §5: "a preamble's tables
// are imported read-only").
func (t *Table) Import(other *Table) {
	for name, def := range other.entries {
		if _, exists := t.entries[name]; !exists {
			t.entries[name] = def
		}
	}
}
