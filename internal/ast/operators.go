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

// UnaryOp enumerates unary operators, named the way the original
// Semantic.h/ast/operators.go do (Identity is the explicit `+x`).
type UnaryOp int

const (
	UnaryIdentity UnaryOp = iota
	UnaryNegate
	UnaryBitwiseNot
	UnaryLogicalNot
	UnaryPrefixInc
	UnaryPrefixDec
	UnaryPostfixInc
	UnaryPostfixDec
	UnaryLength
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryIdentity:
		return "Identity"
	case UnaryNegate:
		return "Negate"
	case UnaryBitwiseNot:
		return "BitwiseNot"
	case UnaryLogicalNot:
		return "LogicalNot"
	case UnaryPrefixInc:
		return "PrefixInc"
	case UnaryPrefixDec:
		return "PrefixDec"
	case UnaryPostfixInc:
		return "PostfixInc"
	case UnaryPostfixDec:
		return "PostfixDec"
	case UnaryLength:
		return "Length"
	default:
		return "UnaryOp(?)"
	}
}

// BinaryOp enumerates binary and assignment operators.
type BinaryOp int

const (
	BinaryComma BinaryOp = iota
	BinaryAssign
	BinaryMulAssign
	BinaryDivAssign
	BinaryModAssign
	BinaryAddAssign
	BinarySubAssign
	BinaryLShiftAssign
	BinaryRShiftAssign
	BinaryAndAssign
	BinaryXorAssign
	BinaryOrAssign
	BinaryPlus
	BinaryMinus
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryLessEq
	BinaryGreater
	BinaryGreaterEq
	BinaryBitwiseAnd
	BinaryBitwiseOr
	BinaryBitwiseXor
	BinaryLogicalAnd
	BinaryLogicalOr
	BinaryLogicalXor
	BinaryShiftLeft
	BinaryShiftRight
)

var binaryOpNames = map[BinaryOp]string{
	BinaryComma: "Comma", BinaryAssign: "Assign", BinaryMulAssign: "MulAssign",
	BinaryDivAssign: "DivAssign", BinaryModAssign: "ModAssign", BinaryAddAssign: "AddAssign",
	BinarySubAssign: "SubAssign", BinaryLShiftAssign: "LShiftAssign", BinaryRShiftAssign: "RShiftAssign",
	BinaryAndAssign: "AndAssign", BinaryXorAssign: "XorAssign", BinaryOrAssign: "OrAssign",
	BinaryPlus: "Plus", BinaryMinus: "Minus", BinaryMul: "Mul", BinaryDiv: "Div", BinaryMod: "Modulo",
	BinaryEqual: "Equal", BinaryNotEqual: "NotEqual", BinaryLess: "Less", BinaryLessEq: "LessEq",
	BinaryGreater: "Greater", BinaryGreaterEq: "GreaterEq", BinaryBitwiseAnd: "BitwiseAnd",
	BinaryBitwiseOr: "BitwiseOr", BinaryBitwiseXor: "BitwiseXor", BinaryLogicalAnd: "LogicalAnd",
	BinaryLogicalOr: "LogicalOr", BinaryLogicalXor: "LogicalXor", BinaryShiftLeft: "ShiftLeft",
	BinaryShiftRight: "ShiftRight",
}

func (op BinaryOp) String() string {
	if name, ok := binaryOpNames[op]; ok {
		return name
	}
	return "BinaryOp(?)"
}

// IsAssignment reports whether op is one of the (compound) assignment
// operators.
func (op BinaryOp) IsAssignment() bool {
	return op >= BinaryAssign && op <= BinaryOrAssign
}

// NonAssignmentEquivalent returns the plain binary operator a compound
// assignment desugars to (e.g. AddAssign -> Plus), used by the builder when
// type-checking `a += b` as `a = a + b`.
func (op BinaryOp) NonAssignmentEquivalent() (BinaryOp, bool) {
	switch op {
	case BinaryMulAssign:
		return BinaryMul, true
	case BinaryDivAssign:
		return BinaryDiv, true
	case BinaryModAssign:
		return BinaryMod, true
	case BinaryAddAssign:
		return BinaryPlus, true
	case BinarySubAssign:
		return BinaryMinus, true
	case BinaryLShiftAssign:
		return BinaryShiftLeft, true
	case BinaryRShiftAssign:
		return BinaryShiftRight, true
	case BinaryAndAssign:
		return BinaryBitwiseAnd, true
	case BinaryXorAssign:
		return BinaryBitwiseXor, true
	case BinaryOrAssign:
		return BinaryBitwiseOr, true
	default:
		return 0, false
	}
}
