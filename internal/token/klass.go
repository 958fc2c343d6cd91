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

package token

// Klass is the closed TokenKlass enum from spec.md §6. Keywords, built-in
// types and punctuators each occupy their own numeric band so membership
// tests (IsKeyword, IsBuiltinType, IsPunctuation) are simple range checks,
// mirroring the generated ".inc" tables the original C++ implementation
// drives this enum from (see SPEC_FULL.md, SUPPLEMENTED FEATURES #2).
type Klass int

const (
	Invalid Klass = iota
	Unknown
	Eof
	CommentToken
	Hash
	HashHash
	AngleString
	QuotedString
	IntegerConstant
	FloatConstant
	Identifier
)

// Reserved-word tokens. Band [100, 300).
const (
	K_attribute Klass = 100 + iota
	K_const
	K_uniform
	K_varying
	K_buffer
	K_shared
	K_coherent
	K_volatile
	K_restrict
	K_readonly
	K_writeonly
	K_layout
	K_centroid
	K_flat
	K_smooth
	K_noperspective
	K_patch
	K_sample
	K_invariant
	K_precise
	K_break
	K_continue
	K_do
	K_for
	K_while
	K_switch
	K_case
	K_default
	K_if
	K_else
	K_subroutine
	K_in
	K_out
	K_inout
	K_void
	K_true
	K_false
	K_discard
	K_return
	K_precision
	K_highp
	K_mediump
	K_lowp
	K_struct
	K_common
	K_partition
	K_active
	K_asm
	K_class
	K_union
	K_enum
	K_typedef
	K_template
	K_this
	K_resource
	K_goto
	K_inline
	K_noinline
	K_public
	K_static
	K_extern
	K_external
	K_interface
	K_long
	K_short
	K_half
	K_fixed
	K_unsigned
	K_superp
	K_input
	K_output
	K_filter
	K_sizeof
	K_cast
	K_namespace
	K_using
)

// Built-in GLSL scalar/vector/matrix/sampler type tokens. These are
// classified as keywords at emission time per spec.md §4.3/§4.7, but are
// listed separately so the parser/sema layer can test "is this a type
// token" without a second table lookup. Band [300, 500).
const (
	K_float Klass = 300 + iota
	K_int
	K_uint
	K_bool
	K_vec2
	K_vec3
	K_vec4
	K_ivec2
	K_ivec3
	K_ivec4
	K_uvec2
	K_uvec3
	K_uvec4
	K_bvec2
	K_bvec3
	K_bvec4
	K_mat2
	K_mat3
	K_mat4
	K_mat2x2
	K_mat2x3
	K_mat2x4
	K_mat3x2
	K_mat3x3
	K_mat3x4
	K_mat4x2
	K_mat4x3
	K_mat4x4
	K_sampler2D
	K_sampler3D
	K_samplerCube
	K_sampler2DShadow
	K_samplerCubeShadow
	K_sampler2DArray
	K_sampler2DArrayShadow
	K_samplerExternalOES
	K_isampler2D
	K_isampler3D
	K_isamplerCube
	K_isampler2DArray
	K_usampler2D
	K_usampler3D
	K_usamplerCube
	K_usampler2DArray
)

// Fixed punctuator tokens. Band [500, ...).
const (
	LParen Klass = 500 + iota
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Dot
	Colon
	Question
	Assign
	MulAssign
	DivAssign
	ModAssign
	AddAssign
	SubAssign
	LShiftAssign
	RShiftAssign
	AndAssign
	XorAssign
	OrAssign
	Plus
	Minus
	Star
	Slash
	Percent
	Increment
	Decrement
	And
	Or
	Xor
	Bang
	Tilde
	Ampersand
	VerticalBar
	Caret
	LAngle
	RAngle
	LessEq
	GreaterEq
	Equal
	NotEqual
	LShift
	RShift
)

const (
	keywordBandStart     = 100
	keywordBandEnd       = 300
	builtinTypeBandEnd   = 500
	punctuationBandStart = 500
)

// IsKeyword reports whether k is one of the reserved-word tokens (including
// built-in type tokens, which are classified as keywords per spec.md §4.3).
func IsKeyword(k Klass) bool { return k >= keywordBandStart && k < builtinTypeBandEnd }

// IsBuiltinType reports whether k names a GLSL built-in scalar, vector,
// matrix or sampler type.
func IsBuiltinType(k Klass) bool { return k >= keywordBandEnd && k < builtinTypeBandEnd }

// IsPunctuation reports whether k is one of the fixed punctuator tokens.
func IsPunctuation(k Klass) bool { return k >= punctuationBandStart }

// IsIdentifierLike reports whether k is an Identifier or any keyword: these
// are the token classes that carry an atom whose text names something.
func IsIdentifierLike(k Klass) bool { return k == Identifier || IsKeyword(k) }

var klassNames = map[Klass]string{
	Invalid: "Invalid", Unknown: "Unknown", Eof: "Eof", CommentToken: "Comment",
	Hash: "Hash", HashHash: "HashHash", AngleString: "AngleString",
	QuotedString: "QuotedString", IntegerConstant: "IntegerConstant",
	FloatConstant: "FloatConstant", Identifier: "Identifier",
}

func (k Klass) String() string {
	if name, ok := klassNames[k]; ok {
		return name
	}
	if name, ok := keywordNames[k]; ok {
		return name
	}
	if name, ok := punctNames[k]; ok {
		return name
	}
	return "Klass(?)"
}
