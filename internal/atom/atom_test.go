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

package atom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
)

func TestGetAtomIsIdempotent(t *testing.T) {
	table := atom.NewTable()

	a := table.GetAtom("foobar")
	b := table.GetAtom("foobar")

	assert.True(t, a.Equal(b), "interning the same text twice must yield pointer-equal atoms")
	assert.Equal(t, "foobar", a.Text())
}

func TestEmptyAtomIsNotNullHandle(t *testing.T) {
	table := atom.NewTable()

	empty := table.GetAtom("")
	require.True(t, empty.IsEmpty())
	assert.Equal(t, "", empty.Text())

	var zero atom.String
	assert.True(t, zero.IsEmpty())
}

func TestGetAtomReadonlyMissReturnsEmpty(t *testing.T) {
	table := atom.NewTable()

	got := table.GetAtomReadonly("never-defined")
	assert.True(t, got.IsEmpty())
}

func TestDistinctTablesDoNotCompareEqual(t *testing.T) {
	t1 := atom.NewTable()
	t2 := atom.NewTable()

	a := t1.GetAtom("shared")
	b := t2.GetAtom("shared")
	assert.False(t, a.Equal(b), "atoms from unrelated tables must not compare equal")

	only := t1.GetAtom("only-in-t1")
	t2.Import(t1)
	c := t2.GetAtom("only-in-t1")
	assert.True(t, only.Equal(c), "after Import, atoms from the imported table compare equal")
}
