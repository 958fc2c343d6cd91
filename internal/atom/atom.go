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

// Package atom implements string interning for token and identifier text.
//
// An AtomString is a pointer-comparable handle into a Table's arena; two
// atoms obtained from the same Table are equal iff their text is equal, so
// identifier comparisons on the hot parsing/macro-expansion path reduce to a
// pointer compare instead of a string compare.
package atom

// String is an interned, immutable piece of text. The zero value holds the
// empty text (IsEmpty and Text treat it so), but it is a separate handle:
// it does not compare Equal to the "" atom every Table pre-interns.
type String struct {
	entry *entry
}

type entry struct {
	text string
}

// IsEmpty reports whether the atom holds the empty string, including the
// zero-value String.
func (s String) IsEmpty() bool { return s.entry == nil || s.entry.text == "" }

// Text returns the interned string.
func (s String) Text() string {
	if s.entry == nil {
		return ""
	}
	return s.entry.text
}

func (s String) String() string { return s.Text() }

// Equal compares two atoms by pointer identity. Atoms minted from different
// tables never compare equal unless one table has Import-ed the other.
func (s String) Equal(other String) bool { return s.entry == other.entry }

// Table interns text and returns pointer-comparable handles.
type Table struct {
	entries map[string]*entry
	empty   String
}

// NewTable constructs an empty Table and interns the empty atom.
func NewTable() *Table {
	t := &Table{entries: make(map[string]*entry, 1024)}
	t.empty = t.GetAtom("")
	return t
}

// GetAtom returns the existing handle for text, interning a new one on miss.
func (t *Table) GetAtom(text string) String {
	if e, ok := t.entries[text]; ok {
		return String{e}
	}
	e := &entry{text: text}
	t.entries[text] = e
	return String{e}
}

// GetAtomReadonly performs a lookup without interning; it returns the empty
// atom on miss.
func (t *Table) GetAtomReadonly(text string) String {
	if e, ok := t.entries[text]; ok {
		return String{e}
	}
	return t.empty
}

// Import bulk-adds every entry of other into t. The caller must ensure other
// outlives t, since the resulting atoms share entry pointers with it.
func (t *Table) Import(other *Table) {
	for text, e := range other.entries {
		if _, ok := t.entries[text]; !ok {
			t.entries[text] = e
		}
	}
}

// Len returns the number of distinct interned strings, including "".
func (t *Table) Len() int { return len(t.entries) }
