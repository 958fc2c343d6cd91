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

package ast

import (
	"fmt"
	"strings"
)

// ScalarKind enumerates the scalar base kinds, in the implicit-conversion
// rank order fixed by spec.md §4.9:
// bool < i8 < i16 < i32 < i64 < u8 < u16 < u32 < u64 < f16 < f32 < f64.
type ScalarKind int

const (
	Bool ScalarKind = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
)

var scalarNames = [...]string{"bool", "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f16", "f32", "f64"}

func (k ScalarKind) String() string {
	if int(k) >= 0 && int(k) < len(scalarNames) {
		return scalarNames[k]
	}
	return "ScalarKind(?)"
}

// IsFloat reports whether k is one of the floating-point kinds.
func (k ScalarKind) IsFloat() bool { return k >= F16 }

// IsSigned reports whether k is a signed integer kind.
func (k ScalarKind) IsSigned() bool { return k >= I8 && k <= I64 }

// IsUnsigned reports whether k is an unsigned integer kind.
func (k ScalarKind) IsUnsigned() bool { return k >= U8 && k <= U64 }

// Kind discriminates the shape of a Type.
type Kind int

const (
	KindError Kind = iota // sentinel: equality-distinct from every real type
	KindVoid
	KindScalar
	KindVector
	KindMatrix
	KindArray
	KindStruct
	KindOpaque // samplers and other opaque handles
	KindFunction
)

// StructField is one member of a struct type.
type StructField struct {
	Name string
	Type *Type
}

// Type is a resolved GLSL type. Types are interned by a Context: identical
// structure always yields the same *Type pointer, so type equality is
// pointer equality (spec.md §3, §9).
type Type struct {
	Kind Kind

	Scalar ScalarKind // KindScalar, KindVector, KindMatrix element kind

	VectorSize int // KindVector: 2..4
	Cols, Rows int // KindMatrix: 2..4 each

	Elem      *Type // KindArray: element type
	ArraySize int   // KindArray: -1 means unsized/implicit

	StructName string        // KindStruct: "" for anonymous
	Fields     []StructField // KindStruct

	OpaqueName string // KindOpaque, e.g. "sampler2D"

	// KindFunction: used only transiently by overload resolution, never
	// interned or appearing as an expression's deduced type.
	Params []*Type
	Return *Type
}

// ErrorType is the one shared error-type sentinel: equality-distinct from
// every real type, attached to expressions whose type could not be
// determined (spec.md §7).
var ErrorType = &Type{Kind: KindError}

// VoidType is the one shared void type.
var VoidType = &Type{Kind: KindVoid}

func (t *Type) String() string {
	switch t.Kind {
	case KindError:
		return "<error>"
	case KindVoid:
		return "void"
	case KindScalar:
		return t.Scalar.String()
	case KindVector:
		return fmt.Sprintf("vec%d<%s>", t.VectorSize, t.Scalar)
	case KindMatrix:
		return fmt.Sprintf("mat%dx%d<%s>", t.Cols, t.Rows, t.Scalar)
	case KindArray:
		if t.ArraySize < 0 {
			return t.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", t.Elem.String(), t.ArraySize)
	case KindStruct:
		if t.StructName != "" {
			return t.StructName
		}
		return "<anonymous struct>"
	case KindOpaque:
		return t.OpaqueName
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s)->%s", strings.Join(parts, ","), t.Return)
	default:
		return "<?>"
	}
}

// IsScalarLike reports whether t is a bare scalar.
func (t *Type) IsScalarLike() bool { return t.Kind == KindScalar }

// Rank returns the conversion rank of a scalar type's base kind, used to
// decide implicit up-conversion legality.
func Rank(k ScalarKind) int { return int(k) }

// conversionRank reports whether `from` converts implicitly to `to`
// (up-rank only, per spec.md §4.9), and the rank distance (0 = identity).
func conversionRank(from, to ScalarKind) (distance int, ok bool) {
	if from == to {
		return 0, true
	}
	if to > from {
		return int(to) - int(from), true
	}
	return 0, false
}

// Context interns Types: structurally identical requests return the same
// pointer. Array types are interned keyed on element type pointer + extent,
// per spec.md §3.
type Context struct {
	vectors map[vectorKey]*Type
	matrices map[matrixKey]*Type
	arrays  map[arrayKey]*Type
	opaques map[string]*Type
	structs map[string]*Type // keyed by a canonical field signature
}

type vectorKey struct {
	scalar ScalarKind
	size   int
}
type matrixKey struct {
	scalar   ScalarKind
	cols, rows int
}
type arrayKey struct {
	elem *Type
	size int
}

// NewContext constructs an empty interning Context.
func NewContext() *Context {
	return &Context{
		vectors:  make(map[vectorKey]*Type),
		matrices: make(map[matrixKey]*Type),
		arrays:   make(map[arrayKey]*Type),
		opaques:  make(map[string]*Type),
		structs:  make(map[string]*Type),
	}
}

// Scalar returns the (non-interned, but globally unique per kind) scalar
// Type for k.
func (c *Context) Scalar(k ScalarKind) *Type { return scalarTypes[k] }

var scalarTypes = func() [12]*Type {
	var arr [12]*Type
	for k := Bool; k <= F64; k++ {
		arr[k] = &Type{Kind: KindScalar, Scalar: k}
	}
	return arr
}()

// Vector interns and returns a vector type of size elements of scalar kind k.
func (c *Context) Vector(k ScalarKind, size int) *Type {
	key := vectorKey{k, size}
	if t, ok := c.vectors[key]; ok {
		return t
	}
	t := &Type{Kind: KindVector, Scalar: k, VectorSize: size}
	c.vectors[key] = t
	return t
}

// Matrix interns and returns a cols x rows matrix type over float scalars
// (GLSL matrices are always floating-point).
func (c *Context) Matrix(k ScalarKind, cols, rows int) *Type {
	key := matrixKey{k, cols, rows}
	if t, ok := c.matrices[key]; ok {
		return t
	}
	t := &Type{Kind: KindMatrix, Scalar: k, Cols: cols, Rows: rows}
	c.matrices[key] = t
	return t
}

// Array interns and returns an array type. size < 0 denotes an unsized
// array.
func (c *Context) Array(elem *Type, size int) *Type {
	key := arrayKey{elem, size}
	if t, ok := c.arrays[key]; ok {
		return t
	}
	t := &Type{Kind: KindArray, Elem: elem, ArraySize: size}
	c.arrays[key] = t
	return t
}

// Opaque interns and returns an opaque (sampler, etc.) type named name.
func (c *Context) Opaque(name string) *Type {
	if t, ok := c.opaques[name]; ok {
		return t
	}
	t := &Type{Kind: KindOpaque, OpaqueName: name}
	c.opaques[name] = t
	return t
}

// Struct interns and returns a struct type. Two structs with the same name
// and fields in the same order intern to the same pointer (structural
// equality, per spec.md §4.9/§9's exact-match overload resolution rule).
func (c *Context) Struct(name string, fields []StructField) *Type {
	key := structSignature(name, fields)
	if t, ok := c.structs[key]; ok {
		return t
	}
	t := &Type{Kind: KindStruct, StructName: name, Fields: fields}
	c.structs[key] = t
	return t
}

func structSignature(name string, fields []StructField) string {
	var b strings.Builder
	b.WriteString(name)
	for _, f := range fields {
		b.WriteByte('|')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Type.String())
	}
	return b.String()
}

// Equal reports structural equality; since types are interned, this is
// pointer equality for any two Types produced by the same Context.
func Equal(a, b *Type) bool { return a == b }

// ImplicitlyConvertibleTo reports whether a value of type from can be
// implicitly converted to type to, and the conversion "distance" used by
// overload resolution's partial order (spec.md §4.9). Conversions are
// permitted up-rank, elementwise across vectors/matrices of matching shape.
func ImplicitlyConvertibleTo(from, to *Type) (distance int, ok bool) {
	if from == to {
		return 0, true
	}
	if from == nil || to == nil || from.Kind == KindError || to.Kind == KindError {
		return 0, false
	}
	switch {
	case from.Kind == KindScalar && to.Kind == KindScalar:
		return conversionRank(from.Scalar, to.Scalar)
	case from.Kind == KindVector && to.Kind == KindVector && from.VectorSize == to.VectorSize:
		return conversionRank(from.Scalar, to.Scalar)
	case from.Kind == KindMatrix && to.Kind == KindMatrix && from.Cols == to.Cols && from.Rows == to.Rows:
		return conversionRank(from.Scalar, to.Scalar)
	default:
		return 0, false
	}
}
