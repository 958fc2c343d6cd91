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

// Decl is implemented by every declaration node variant: variables,
// struct/interface-block members, structs, interface blocks, function
// parameters and functions themselves.
type Decl interface {
	Node
	Range() SyntaxRange
}

type declBase struct {
	SyntaxRange SyntaxRange
}

func (d *declBase) Range() SyntaxRange { return d.SyntaxRange }

// Qualifiers captures the storage/precision/layout qualifiers a declarator
// can carry. Layout qualifiers are kept as a raw id->value map rather than
// named fields: GLSL's layout qualifier set is large, version-dependent and
// mostly opaque to the front-end core (spec.md Non-goals: no codegen).
type Qualifiers struct {
	Storage    StorageQualifier
	Precision  PrecisionQualifier
	Interp     InterpolationQualifier
	Invariant  bool
	Precise    bool
	Layout     map[string]string
}

// StorageQualifier enumerates the GLSL storage qualifiers relevant to
// front-end validation (full set per spec.md §2's keyword inventory).
type StorageQualifier int

const (
	StorageNone StorageQualifier = iota
	StorageConst
	StorageIn
	StorageOut
	StorageInOut
	StorageUniform
	StorageBuffer
	StorageShared
	StorageAttribute
	StorageVarying
)

// PrecisionQualifier enumerates the GLSL ES precision qualifiers.
type PrecisionQualifier int

const (
	PrecisionUnspecified PrecisionQualifier = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// InterpolationQualifier enumerates the GLSL interpolation qualifiers.
type InterpolationQualifier int

const (
	InterpolationSmooth InterpolationQualifier = iota
	InterpolationFlat
	InterpolationNoperspective
)

// Declarator is one `name[array-spec][= initializer]` unit within a
// declaration statement that can introduce several at once, e.g.
// `float a, b[4], c = 1.0;`.
type Declarator struct {
	Name        string
	ArraySizes  []Expr // one entry per `[]`/`[N]`, outermost first; nil if not an array
	Initializer Expr   // nil if absent
}

// EmptyDecl is a declaration statement with no declarators, e.g. a bare
// `struct Foo { ... };` used only to introduce a type.
type EmptyDecl struct {
	declBase
	ElemType *Type
}

func NewEmptyDecl(rng SyntaxRange, elemType *Type) *EmptyDecl {
	return &EmptyDecl{declBase{rng}, elemType}
}

// ErrorDecl stands in for a declaration the parser could not make sense of.
type ErrorDecl struct {
	declBase
}

func NewErrorDecl(rng SyntaxRange) *ErrorDecl { return &ErrorDecl{declBase{rng}} }

// PrecisionDecl is a `precision highp float;` statement.
type PrecisionDecl struct {
	declBase
	Precision PrecisionQualifier
	ElemType  *Type
}

func NewPrecisionDecl(rng SyntaxRange, p PrecisionQualifier, t *Type) *PrecisionDecl {
	return &PrecisionDecl{declBase{rng}, p, t}
}

// VariableDecl declares one or more variables of a shared ElemType and
// Qualifiers.
type VariableDecl struct {
	declBase
	Qualifiers  Qualifiers
	ElemType    *Type
	Declarators []Declarator
}

func NewVariableDecl(rng SyntaxRange, q Qualifiers, elemType *Type, decls []Declarator) *VariableDecl {
	return &VariableDecl{declBase{rng}, q, elemType, decls}
}

// StructFieldDecl is one member declaration inside a struct body.
type StructFieldDecl struct {
	declBase
	ElemType    *Type
	Declarators []Declarator
}

func NewStructFieldDecl(rng SyntaxRange, elemType *Type, decls []Declarator) *StructFieldDecl {
	return &StructFieldDecl{declBase{rng}, elemType, decls}
}

// StructDecl is `struct Name { fields... }`.
type StructDecl struct {
	declBase
	Name     string // "" for anonymous
	Fields   []*StructFieldDecl
	Resolved *Type // filled in by the builder once interned
}

func NewStructDecl(rng SyntaxRange, name string, fields []*StructFieldDecl) *StructDecl {
	return &StructDecl{declBase: declBase{rng}, Name: name, Fields: fields}
}

// BlockFieldDecl is one member declaration inside an interface block body.
type BlockFieldDecl struct {
	declBase
	ElemType    *Type
	Declarators []Declarator
}

func NewBlockFieldDecl(rng SyntaxRange, elemType *Type, decls []Declarator) *BlockFieldDecl {
	return &BlockFieldDecl{declBase{rng}, elemType, decls}
}

// InterfaceBlockDecl is a `uniform Name { fields... } instanceName[N];`
// style declaration (uniform/buffer/in/out interface blocks).
type InterfaceBlockDecl struct {
	declBase
	Qualifiers   Qualifiers
	BlockName    string
	Fields       []*BlockFieldDecl
	InstanceName string // "" if the block fields are accessed unqualified
	ArraySizes   []Expr
}

func NewInterfaceBlockDecl(rng SyntaxRange, q Qualifiers, blockName string, fields []*BlockFieldDecl, instanceName string, arraySizes []Expr) *InterfaceBlockDecl {
	return &InterfaceBlockDecl{declBase{rng}, q, blockName, fields, instanceName, arraySizes}
}

// ParamDecl is one function parameter.
type ParamDecl struct {
	declBase
	Qualifiers Qualifiers
	ElemType   *Type
	Name       string // "" for an unnamed parameter (legal in a prototype)
	ArraySizes []Expr
}

func NewParamDecl(rng SyntaxRange, q Qualifiers, elemType *Type, name string, arraySizes []Expr) *ParamDecl {
	return &ParamDecl{declBase{rng}, q, elemType, name, arraySizes}
}

// FunctionDecl is a function prototype or definition; Body is nil for a
// prototype-only declaration.
type FunctionDecl struct {
	declBase
	Name       string
	ReturnType *Type
	Params     []*ParamDecl
	Body       *CompoundStmt // nil for a prototype
}

func NewFunctionDecl(rng SyntaxRange, name string, returnType *Type, params []*ParamDecl, body *CompoundStmt) *FunctionDecl {
	return &FunctionDecl{declBase{rng}, name, returnType, params, body}
}

// Signature derives the KindFunction Type used during overload resolution.
func (f *FunctionDecl) Signature() *Type {
	params := make([]*Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.ElemType
	}
	return &Type{Kind: KindFunction, Params: params, Return: f.ReturnType}
}

func (d *EmptyDecl) isNode()           {}
func (d *ErrorDecl) isNode()           {}
func (d *PrecisionDecl) isNode()       {}
func (d *VariableDecl) isNode()        {}
func (d *StructFieldDecl) isNode()     {}
func (d *StructDecl) isNode()          {}
func (d *BlockFieldDecl) isNode()      {}
func (d *InterfaceBlockDecl) isNode()  {}
func (d *ParamDecl) isNode()           {}
func (d *FunctionDecl) isNode()        {}

func (d *EmptyDecl) Children() []Node     { return nil }
func (d *ErrorDecl) Children() []Node     { return nil }
func (d *PrecisionDecl) Children() []Node { return nil }

func declaratorChildren(decls []Declarator) []Node {
	var out []Node
	for _, d := range decls {
		for _, sz := range d.ArraySizes {
			if sz != nil {
				out = append(out, sz)
			}
		}
		if d.Initializer != nil {
			out = append(out, d.Initializer)
		}
	}
	return out
}

func (d *VariableDecl) Children() []Node    { return declaratorChildren(d.Declarators) }
func (d *StructFieldDecl) Children() []Node { return declaratorChildren(d.Declarators) }
func (d *StructDecl) Children() []Node {
	out := make([]Node, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = f
	}
	return out
}
func (d *BlockFieldDecl) Children() []Node { return declaratorChildren(d.Declarators) }
func (d *InterfaceBlockDecl) Children() []Node {
	out := make([]Node, 0, len(d.Fields)+len(d.ArraySizes))
	for _, f := range d.Fields {
		out = append(out, f)
	}
	for _, sz := range d.ArraySizes {
		if sz != nil {
			out = append(out, sz)
		}
	}
	return out
}
func (d *ParamDecl) Children() []Node {
	var out []Node
	for _, sz := range d.ArraySizes {
		if sz != nil {
			out = append(out, sz)
		}
	}
	return out
}
func (d *FunctionDecl) Children() []Node {
	out := make([]Node, 0, len(d.Params)+1)
	for _, p := range d.Params {
		out = append(out, p)
	}
	if d.Body != nil {
		out = append(out, d.Body)
	}
	return out
}
