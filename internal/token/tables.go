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

// keywordNames and punctNames back Klass.String(); keywordLookup drives
// LookupKeyword, the scanner's and macro-pasting retokenizer's text->Klass
// lookup. All three are built once at init from the same
// literal pairs, mirroring the original's single ".inc" source of truth for
// both the enum and its string table (SPEC_FULL.md, SUPPLEMENTED FEATURES #2).
var keywordPairs = []struct {
	Klass Klass
	Text  string
}{
	{K_attribute, "attribute"}, {K_const, "const"}, {K_uniform, "uniform"},
	{K_varying, "varying"}, {K_buffer, "buffer"}, {K_shared, "shared"},
	{K_coherent, "coherent"}, {K_volatile, "volatile"}, {K_restrict, "restrict"},
	{K_readonly, "readonly"}, {K_writeonly, "writeonly"}, {K_layout, "layout"},
	{K_centroid, "centroid"}, {K_flat, "flat"}, {K_smooth, "smooth"},
	{K_noperspective, "noperspective"}, {K_patch, "patch"}, {K_sample, "sample"},
	{K_invariant, "invariant"}, {K_precise, "precise"}, {K_break, "break"},
	{K_continue, "continue"}, {K_do, "do"}, {K_for, "for"}, {K_while, "while"},
	{K_switch, "switch"}, {K_case, "case"}, {K_default, "default"}, {K_if, "if"},
	{K_else, "else"}, {K_subroutine, "subroutine"}, {K_in, "in"}, {K_out, "out"},
	{K_inout, "inout"}, {K_void, "void"}, {K_true, "true"}, {K_false, "false"},
	{K_discard, "discard"}, {K_return, "return"}, {K_precision, "precision"},
	{K_highp, "highp"}, {K_mediump, "mediump"}, {K_lowp, "lowp"}, {K_struct, "struct"},
	{K_common, "common"}, {K_partition, "partition"}, {K_active, "active"},
	{K_asm, "asm"}, {K_class, "class"}, {K_union, "union"}, {K_enum, "enum"},
	{K_typedef, "typedef"}, {K_template, "template"}, {K_this, "this"},
	{K_resource, "resource"}, {K_goto, "goto"}, {K_inline, "inline"},
	{K_noinline, "noinline"}, {K_public, "public"}, {K_static, "static"},
	{K_extern, "extern"}, {K_external, "external"}, {K_interface, "interface"},
	{K_long, "long"}, {K_short, "short"}, {K_half, "half"}, {K_fixed, "fixed"},
	{K_unsigned, "unsigned"}, {K_superp, "superp"}, {K_input, "input"},
	{K_output, "output"}, {K_filter, "filter"}, {K_sizeof, "sizeof"},
	{K_cast, "cast"}, {K_namespace, "namespace"}, {K_using, "using"},

	{K_float, "float"}, {K_int, "int"}, {K_uint, "uint"}, {K_bool, "bool"},
	{K_vec2, "vec2"}, {K_vec3, "vec3"}, {K_vec4, "vec4"},
	{K_ivec2, "ivec2"}, {K_ivec3, "ivec3"}, {K_ivec4, "ivec4"},
	{K_uvec2, "uvec2"}, {K_uvec3, "uvec3"}, {K_uvec4, "uvec4"},
	{K_bvec2, "bvec2"}, {K_bvec3, "bvec3"}, {K_bvec4, "bvec4"},
	{K_mat2, "mat2"}, {K_mat3, "mat3"}, {K_mat4, "mat4"},
	{K_mat2x2, "mat2x2"}, {K_mat2x3, "mat2x3"}, {K_mat2x4, "mat2x4"},
	{K_mat3x2, "mat3x2"}, {K_mat3x3, "mat3x3"}, {K_mat3x4, "mat3x4"},
	{K_mat4x2, "mat4x2"}, {K_mat4x3, "mat4x3"}, {K_mat4x4, "mat4x4"},
	{K_sampler2D, "sampler2D"}, {K_sampler3D, "sampler3D"}, {K_samplerCube, "samplerCube"},
	{K_sampler2DShadow, "sampler2DShadow"}, {K_samplerCubeShadow, "samplerCubeShadow"},
	{K_sampler2DArray, "sampler2DArray"}, {K_sampler2DArrayShadow, "sampler2DArrayShadow"},
	{K_samplerExternalOES, "samplerExternalOES"},
	{K_isampler2D, "isampler2D"}, {K_isampler3D, "isampler3D"}, {K_isamplerCube, "isamplerCube"},
	{K_isampler2DArray, "isampler2DArray"},
	{K_usampler2D, "usampler2D"}, {K_usampler3D, "usampler3D"}, {K_usamplerCube, "usamplerCube"},
	{K_usampler2DArray, "usampler2DArray"},
}

// punctPairs is ordered longest-text-first so the scanner's greedy match
// (try each in order, take the first that matches) never shadows a longer
// operator with a shorter prefix of it (e.g. "<<=" before "<<" before "<").
var punctPairs = []struct {
	Klass Klass
	Text  string
}{
	{LShiftAssign, "<<="}, {RShiftAssign, ">>="},
	{LShift, "<<"}, {RShift, ">>"},
	{LessEq, "<="}, {GreaterEq, ">="}, {Equal, "=="}, {NotEqual, "!="},
	{MulAssign, "*="}, {DivAssign, "/="}, {ModAssign, "%="},
	{AddAssign, "+="}, {SubAssign, "-="},
	{AndAssign, "&="}, {XorAssign, "^="}, {OrAssign, "|="},
	{Increment, "++"}, {Decrement, "--"}, {And, "&&"}, {Or, "||"}, {Xor, "^^"},
	{HashHash, "##"},
	{LParen, "("}, {RParen, ")"}, {LBrace, "{"}, {RBrace, "}"},
	{LBracket, "["}, {RBracket, "]"},
	{Semicolon, ";"}, {Comma, ","}, {Dot, "."}, {Colon, ":"}, {Question, "?"},
	{Assign, "="}, {Plus, "+"}, {Minus, "-"}, {Star, "*"}, {Slash, "/"}, {Percent, "%"},
	{Bang, "!"}, {Tilde, "~"}, {Ampersand, "&"}, {VerticalBar, "|"}, {Caret, "^"},
	{LAngle, "<"}, {RAngle, ">"}, {Hash, "#"},
}

var (
	keywordNames  = map[Klass]string{}
	keywordLookup = map[string]Klass{}
	punctNames    = map[Klass]string{}
)

func init() {
	for _, p := range keywordPairs {
		keywordNames[p.Klass] = p.Text
		keywordLookup[p.Text] = p.Klass
	}
	for _, p := range punctPairs {
		punctNames[p.Klass] = p.Text
	}
}

// AllKeywords returns every (Klass, spelling) pair, keywords and built-in
// types included, in declaration order.
func AllKeywords() []struct {
	Klass Klass
	Text  string
} {
	out := make([]struct {
		Klass Klass
		Text  string
	}, len(keywordPairs))
	copy(out, keywordPairs)
	return out
}

// AllPunctuation returns every (Klass, spelling) pair for fixed punctuators,
// longest-spelling-first -- the order the scanner must try them in.
func AllPunctuation() []struct {
	Klass Klass
	Text  string
} {
	out := make([]struct {
		Klass Klass
		Text  string
	}, len(punctPairs))
	copy(out, punctPairs)
	return out
}

// LookupKeyword classifies ident as a keyword/built-in-type Klass if it
// names one, otherwise it returns (Identifier, false).
func LookupKeyword(ident string) (Klass, bool) {
	k, ok := keywordLookup[ident]
	if !ok {
		return Identifier, false
	}
	return k, true
}
