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

package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/scanner"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.PPToken, *diag.Sink) {
	t.Helper()
	atoms := atom.NewTable()
	diags := &diag.Sink{}
	sc := scanner.New(atoms, diags, token.FileRef(0), src, false)

	var toks []token.PPToken
	for {
		tok := sc.Next()
		toks = append(toks, tok)
		if tok.Klass == token.Eof {
			break
		}
	}
	return toks, diags
}

func TestScanIdentifiersAndKeywordsStayIdentifierAtThisStage(t *testing.T) {
	toks, diags := scanAll(t, "int x = foo;")
	require.False(t, diags.HasErrors())

	// Per spec.md §3/§4.3, keyword classification happens at emission into
	// the token stream (C7), not in the scanner (C3): every word here is an
	// Identifier as far as the scanner is concerned.
	var kinds []token.Klass
	for _, tok := range toks {
		kinds = append(kinds, tok.Klass)
	}
	assert.Equal(t, []token.Klass{
		token.Identifier, token.Identifier, token.Assign, token.Identifier, token.Semicolon, token.Eof,
	}, kinds)
}

func TestScanNumericLiterals(t *testing.T) {
	toks, diags := scanAll(t, "42 0x2A 010 3.14 1e5 1.0f 2u")
	require.False(t, diags.HasErrors())

	want := []struct {
		klass token.Klass
		text  string
	}{
		{token.IntegerConstant, "42"},
		{token.IntegerConstant, "0x2A"},
		{token.IntegerConstant, "010"},
		{token.FloatConstant, "3.14"},
		{token.FloatConstant, "1e5"},
		{token.FloatConstant, "1.0"},
		{token.IntegerConstant, "2u"},
	}
	for i, w := range want {
		assert.Equalf(t, w.klass, toks[i].Klass, "token %d (%q)", i, toks[i].Text.Text())
	}
}

func TestUnterminatedBlockCommentIsDiagnosedButStillLexes(t *testing.T) {
	toks, diags := scanAll(t, "/* never closed")
	require.True(t, diags.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, token.Eof, toks[0].Klass)
}

func TestNonAsciiIdentifierIsUnknown(t *testing.T) {
	toks, _ := scanAll(t, "int café;")
	var sawUnknown bool
	for _, tok := range toks {
		if tok.Klass == token.Unknown {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown)
}

func TestHeaderNameModeLexesAngleAndQuotedStrings(t *testing.T) {
	atoms := atom.NewTable()
	diags := &diag.Sink{}
	sc := scanner.New(atoms, diags, token.FileRef(0), `<foo.glsl> "bar.glsl"`, false)

	sc.SetHeaderNameMode(scanner.ExpectHeaderName)
	first := sc.Next()
	assert.Equal(t, token.AngleString, first.Klass)
	assert.Equal(t, "foo.glsl", first.Text.Text())

	sc.SetHeaderNameMode(scanner.ExpectHeaderName)
	second := sc.Next()
	assert.Equal(t, token.QuotedString, second.Klass)
	assert.Equal(t, "bar.glsl", second.Text.Text())
}

func TestHaltFuncForcesEarlyEof(t *testing.T) {
	atoms := atom.NewTable()
	diags := &diag.Sink{}
	sc := scanner.New(atoms, diags, token.FileRef(0), "int x; int y;", false)

	seen := 0
	sc.SetHaltFunc(func() bool {
		seen++
		return seen >= 2
	})

	var kinds []token.Klass
	for {
		tok := sc.Next()
		kinds = append(kinds, tok.Klass)
		if tok.Klass == token.Eof {
			break
		}
	}
	assert.Equal(t, []token.Klass{token.Identifier, token.Identifier, token.Eof}, kinds)
}
