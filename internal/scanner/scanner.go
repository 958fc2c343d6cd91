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

// Package scanner implements the scanner (C3): a byte stream -> PP-token
// transducer that tracks spelled (line, column) ranges and classifies
// numeric/identifier/punctuator lexemes, in the spirit of the teacher's
// preprocessor.lexer but without depending on its CST-preserving reader
// (core/text/parse), which this module does not carry forward -- see
// DESIGN.md for why.
package scanner

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/daiyousei-qz/glsld-sub001/internal/atom"
	"github.com/daiyousei-qz/glsld-sub001/internal/diag"
	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// HeaderNameMode tells the scanner how to lex a leading `"` or `<`: as a
// QuotedString/AngleString (during #include's tail) or as ordinary
// punctuation/Unknown (everywhere else). The preprocessor state machine
// arms this before asking for the token following `#include`.
type HeaderNameMode int

const (
	NoHeaderName HeaderNameMode = iota
	ExpectHeaderName
)

// HaltFunc is consulted after each produced token; if it returns true the
// scanner emits Eof immediately, supporting "version scan only" mode
// (spec.md §4.3, "Halt").
type HaltFunc func() bool

// Scanner turns one source buffer into PP-tokens.
type Scanner struct {
	atoms *atom.Table
	file  token.FileRef
	src   string
	diags *diag.Sink

	pos  int // byte offset
	line int
	col  int
	utf16Columns bool

	headerMode HeaderNameMode
	halt       HaltFunc

	atLineStart bool
	pendingEOF  bool

	pendingComments []RawComment
}

// RawComment is a comment lexed between two tokens, not yet attached to the
// stream position of its following token (the preprocessor fills that in
// once it knows the RawSyntaxToken ID the comment precedes).
type RawComment struct {
	SpelledRange token.Range
	Text         string
}

// New constructs a Scanner over src, whose characters belong to file. Line
// continuations (`\` immediately before a newline, optionally `\`+`\r\n`)
// are consumed transparently during scanning rather than spliced out of
// src up front, so every token's reported line/column still reflects its
// true physical location (spec.md §4.3).
func New(atoms *atom.Table, diags *diag.Sink, file token.FileRef, src string, utf16Columns bool) *Scanner {
	return &Scanner{
		atoms:        atoms,
		file:         file,
		src:          src,
		diags:        diags,
		line:         0,
		col:          0,
		utf16Columns: utf16Columns,
		atLineStart:  true,
	}
}

// continuationLen reports the byte length of a line continuation
// (backslash, optional '\r', then '\n') starting at byte offset pos, or 0
// if none starts there.
func (s *Scanner) continuationLen(pos int) int {
	if pos >= len(s.src) || s.src[pos] != '\\' {
		return 0
	}
	j := pos + 1
	if j < len(s.src) && s.src[j] == '\r' {
		j++
	}
	if j < len(s.src) && s.src[j] == '\n' {
		return j + 1 - pos
	}
	return 0
}

// skipContinuations advances past any run of line continuations starting
// at the scanner's current position, bumping line/col bookkeeping as if
// the skipped newline(s) had been scanned normally. Called from every
// position-reading primitive so a continuation can never split a token,
// while still leaving line/col correct for whatever follows it.
func (s *Scanner) skipContinuations() {
	for {
		n := s.continuationLen(s.pos)
		if n == 0 {
			return
		}
		s.pos += n
		s.line++
		s.col = 0
	}
}

// byteAt returns the byte `ahead` logical positions after the scanner's
// current position (ahead == 0 is what peekByte would return), skipping
// over continuations between each logical byte so a fixed-width lookahead
// can't be fooled by one either.
func (s *Scanner) byteAt(ahead int) byte {
	pos := s.pos
	for {
		pos += s.continuationLen(pos)
		if pos >= len(s.src) {
			return 0
		}
		if ahead == 0 {
			return s.src[pos]
		}
		_, sz := utf8.DecodeRuneInString(s.src[pos:])
		if sz == 0 {
			return 0
		}
		pos += sz
		ahead--
	}
}

// hasPrefixAt reports whether text appears starting at the scanner's
// current logical position, with continuations transparently skipped
// between each compared byte.
func (s *Scanner) hasPrefixAt(text string) bool {
	for i := 0; i < len(text); i++ {
		if s.byteAt(i) != text[i] {
			return false
		}
	}
	return true
}

// stripContinuations removes any line continuations embedded in a raw
// source slice, for building a token's logical text after its spelled
// range has already been computed from continuation-aware line/col
// bookkeeping; a continuation inside an identifier or number must vanish
// from the text the same way it would if it had been spliced out up
// front, without the position drift that doing the splice up front causes.
func stripContinuations(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '\\' {
			j := i + 1
			if j < len(s) && s[j] == '\r' {
				j++
			}
			if j < len(s) && s[j] == '\n' {
				i = j + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// SetHeaderNameMode arms or disarms header-name lexing for the very next
// token only; the scanner itself disarms it again after producing that token.
func (s *Scanner) SetHeaderNameMode(mode HeaderNameMode) { s.headerMode = mode }

// SetHaltFunc installs the callback consulted after each token.
func (s *Scanner) SetHaltFunc(f HaltFunc) { s.halt = f }

func (s *Scanner) here() token.Position { return token.Position{Line: s.line, Column: s.col} }

func (s *Scanner) eof() bool {
	s.skipContinuations()
	return s.pos >= len(s.src)
}

func (s *Scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) peekRune() (rune, int) {
	if s.eof() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

// advance consumes one rune, updating line/column bookkeeping. A
// continuation at the current position is skipped first (skipContinuations,
// called via peekRune/eof), so it never itself counts as the consumed rune.
func (s *Scanner) advance() rune {
	r, sz := s.peekRune()
	if sz == 0 {
		return 0
	}
	s.pos += sz
	if r == '\n' {
		s.line++
		s.col = 0
	} else if s.utf16Columns {
		s.col += utf16Width(r)
	} else {
		s.col += sz
	}
	return r
}

func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// skipTrivia consumes whitespace and comments, returning whether any
// whitespace/comment was seen and whether a newline was crossed.
func (s *Scanner) skipTrivia() (sawWhitespace, sawNewline bool) {
	for !s.eof() {
		switch {
		case s.peekByte() == ' ' || s.peekByte() == '\t' || s.peekByte() == '\r':
			s.advance()
			sawWhitespace = true
		case s.peekByte() == '\n':
			s.advance()
			sawWhitespace = true
			sawNewline = true
		case s.hasPrefixAt("//"):
			sawWhitespace = true
			s.recordComment(s.skipLineComment)
		case s.hasPrefixAt("/*"):
			sawWhitespace = true
			s.recordComment(s.skipBlockComment)
		default:
			return
		}
	}
	return
}

// recordComment wraps a skip*Comment call, capturing the skipped text as a
// RawComment. Comments are extracted into a side channel rather than the
// main PP-token stream so the scanner/expander pipeline never has to treat
// them as syntactically significant.
func (s *Scanner) recordComment(skip func()) {
	start := s.here()
	startByte := s.pos
	skip()
	s.pendingComments = append(s.pendingComments, RawComment{
		SpelledRange: token.Range{Start: start, End: s.here()},
		Text:         stripContinuations(s.src[startByte:s.pos]),
	})
}

// TakeComments returns and clears every comment lexed since the last call,
// for the caller to attach to the token it is about to emit.
func (s *Scanner) TakeComments() []RawComment {
	if len(s.pendingComments) == 0 {
		return nil
	}
	out := s.pendingComments
	s.pendingComments = nil
	return out
}

func (s *Scanner) skipLineComment() {
	for !s.eof() && s.peekByte() != '\n' {
		s.advance()
	}
}

func (s *Scanner) skipBlockComment() {
	startPos := s.here()
	s.advance() // '/'
	s.advance() // '*'
	for {
		if s.eof() {
			s.diags.Errorf(token.Range{Start: startPos, End: s.here()}, "unterminated block comment")
			return
		}
		if s.hasPrefixAt("*/") {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

// Next produces the next PP token.
func (s *Scanner) Next() token.PPToken {
	if s.pendingEOF {
		return s.emit(token.Eof, s.here(), s.here(), false, false)
	}

	sawWS, sawNL := s.skipTrivia()
	firstOfLine := s.atLineStart || sawNL
	start := s.here()

	if s.eof() {
		tok := s.emit(token.Eof, start, start, firstOfLine, sawWS)
		return tok
	}

	var tok token.PPToken
	switch {
	case s.headerMode == ExpectHeaderName && s.peekByte() == '<':
		tok = s.readAngleString(start, firstOfLine, sawWS)
	case s.headerMode == ExpectHeaderName && s.peekByte() == '"':
		tok = s.readQuotedString(start, firstOfLine, sawWS)
	case isIdentStart(s.peekByte()):
		tok = s.readIdentifier(start, firstOfLine, sawWS)
	case isDigit(s.peekByte()) || (s.peekByte() == '.' && isDigit(s.byteAt(1))):
		tok = s.readNumber(start, firstOfLine, sawWS)
	case s.peekByte() == '"':
		s.advance()
		tok = s.emit(token.Unknown, start, s.here(), firstOfLine, sawWS)
	default:
		tok = s.readPunctuation(start, firstOfLine, sawWS)
	}

	s.headerMode = NoHeaderName
	s.atLineStart = false
	if s.halt != nil && s.halt() {
		s.pendingEOF = true
	}
	return tok
}

func (s *Scanner) emit(k token.Klass, start, end token.Position, firstOfLine, ws bool) token.PPToken {
	return token.PPToken{
		Klass:                k,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: end},
		Text:                 s.atoms.GetAtom(""),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (s *Scanner) readIdentifier(start token.Position, firstOfLine, ws bool) token.PPToken {
	startByte := s.pos
	for !s.eof() && isIdentCont(s.peekByte()) {
		s.advance()
	}
	// Guard against non-ASCII text in an identifier. isIdentStart and
	// isIdentCont are ASCII-only, so the loop above stops at the first
	// non-ASCII byte and this check does not fire; a non-ASCII rune after
	// the identifier is lexed as a separate Unknown token.
	text := stripContinuations(s.src[startByte:s.pos])
	if !isASCII(text) {
		return s.emit(token.Unknown, start, s.here(), firstOfLine, ws)
	}
	return token.PPToken{
		Klass:                token.Identifier,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: s.here()},
		Text:                 s.atoms.GetAtom(text),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func (s *Scanner) readNumber(start token.Position, firstOfLine, ws bool) token.PPToken {
	startByte := s.pos
	isFloat := false

	if s.peekByte() == '0' && (s.byteAt(1) == 'x' || s.byteAt(1) == 'X') {
		s.advance()
		s.advance()
		for !s.eof() && isHex(s.peekByte()) {
			s.advance()
		}
	} else {
		for !s.eof() && isDigit(s.peekByte()) {
			s.advance()
		}
		if !s.eof() && s.peekByte() == '.' {
			isFloat = true
			s.advance()
			for !s.eof() && isDigit(s.peekByte()) {
				s.advance()
			}
		}
		if !s.eof() && (s.peekByte() == 'e' || s.peekByte() == 'E') {
			save := s.pos
			saveLine, saveCol := s.line, s.col
			s.advance()
			if !s.eof() && (s.peekByte() == '+' || s.peekByte() == '-') {
				s.advance()
			}
			if !s.eof() && isDigit(s.peekByte()) {
				isFloat = true
				for !s.eof() && isDigit(s.peekByte()) {
					s.advance()
				}
			} else {
				s.pos, s.line, s.col = save, saveLine, saveCol
			}
		}
	}

	// suffixes
	for !s.eof() && isSuffixByte(s.peekByte()) {
		if s.peekByte() == 'f' || s.peekByte() == 'F' {
			isFloat = true
		}
		s.advance()
	}

	text := stripContinuations(s.src[startByte:s.pos])
	klass := token.IntegerConstant
	normalized := text

	if isFloat {
		klass = token.FloatConstant
		trimmed := strings.TrimRight(text, "fFlL")
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			klass = token.Unknown
		}
		normalized = strings.TrimRight(text, "fF") // keep l/L: it marks a double literal
	} else {
		trimmed := strings.TrimRight(text, "uU")
		if _, err := strconv.ParseInt(normalizeIntLiteral(trimmed), 0, 64); err != nil {
			if _, err := strconv.ParseUint(normalizeIntLiteral(trimmed), 0, 64); err != nil {
				klass = token.Unknown
			}
		}
	}

	return token.PPToken{
		Klass:                klass,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: s.here()},
		Text:                 s.atoms.GetAtom(normalized),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

// normalizeIntLiteral rewrites a legacy-octal literal ("0755") into Go's
// "0o755" so strconv.ParseInt(..., 0, ...) agrees with GLSL's C-style octal.
func normalizeIntLiteral(s string) string {
	if len(s) > 1 && s[0] == '0' && s[1] != 'x' && s[1] != 'X' && s[1] != 'o' && s[1] != 'O' {
		return "0o" + s[1:]
	}
	return s
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isSuffixByte(b byte) bool {
	return b == 'u' || b == 'U' || b == 'f' || b == 'F' || b == 'l' || b == 'L'
}

func (s *Scanner) readPunctuation(start token.Position, firstOfLine, ws bool) token.PPToken {
	for _, p := range token.AllPunctuation() {
		if s.hasPrefixAt(p.Text) {
			for range p.Text {
				s.advance()
			}
			return token.PPToken{
				Klass:                p.Klass,
				SpelledFile:          s.file,
				SpelledRange:         token.Range{Start: start, End: s.here()},
				Text:                 s.atoms.GetAtom(p.Text),
				IsFirstTokenOfLine:    firstOfLine,
				HasLeadingWhitespace: ws,
			}
		}
	}
	bad := string(s.peekByte())
	s.diags.Errorf(token.Range{Start: start, End: start}, "unknown token in input: %q", bad)
	s.advance()
	return token.PPToken{
		Klass:                token.Unknown,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: s.here()},
		Text:                 s.atoms.GetAtom(bad),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

func (s *Scanner) readAngleString(start token.Position, firstOfLine, ws bool) token.PPToken {
	startByte := s.pos
	s.advance() // '<'
	for !s.eof() && s.peekByte() != '>' && s.peekByte() != '\n' {
		s.advance()
	}
	ok := !s.eof() && s.peekByte() == '>'
	if ok {
		s.advance()
	} else {
		s.diags.Errorf(token.Range{Start: start, End: s.here()}, "unterminated header name")
	}
	text := stripContinuations(s.src[startByte+1 : s.pos-boolToInt(ok)])
	klass := token.AngleString
	if !ok {
		klass = token.Unknown
	}
	return token.PPToken{
		Klass:                klass,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: s.here()},
		Text:                 s.atoms.GetAtom(text),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

func (s *Scanner) readQuotedString(start token.Position, firstOfLine, ws bool) token.PPToken {
	startByte := s.pos
	s.advance() // '"'
	for !s.eof() && s.peekByte() != '"' && s.peekByte() != '\n' {
		s.advance()
	}
	ok := !s.eof() && s.peekByte() == '"'
	if ok {
		s.advance()
	} else {
		s.diags.Errorf(token.Range{Start: start, End: s.here()}, "unterminated header name")
	}
	text := stripContinuations(s.src[startByte+1 : s.pos-boolToInt(ok)])
	klass := token.QuotedString
	if !ok {
		klass = token.Unknown
	}
	return token.PPToken{
		Klass:                klass,
		SpelledFile:          s.file,
		SpelledRange:         token.Range{Start: start, End: s.here()},
		Text:                 s.atoms.GetAtom(text),
		IsFirstTokenOfLine:    firstOfLine,
		HasLeadingWhitespace: ws,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
