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

package sema

import "github.com/daiyousei-qz/glsld-sub001/internal/ast"

// loopDepth/switchDepth track how many enclosing loop/switch bodies the
// builder is currently inside, so BuildJumpStmt can reject a stray
// break/continue the way the teacher's builder rejects invalid jumps, without
// a separate control-flow analysis pass.
func (b *Builder) enterLoop() { b.loopDepth++ }
func (b *Builder) leaveLoop() { b.loopDepth-- }

func (b *Builder) enterSwitch() { b.switchDepth++ }
func (b *Builder) leaveSwitch() { b.switchDepth-- }

// BuildCompoundStmt wraps stmts in a CompoundStmt. Scope bracketing is the
// caller's responsibility (EnterLexicalBlockScope/LeaveLexicalBlockScope),
// since a function body's compound statement shares the function's scope
// rather than opening a nested one (spec.md §4.9).
func (b *Builder) BuildCompoundStmt(rng ast.SyntaxRange, stmts []ast.Stmt) *ast.CompoundStmt {
	return ast.NewCompoundStmt(rng, stmts)
}

// BuildIfStmt requires a bool condition, implicitly converting a
// convertible-to-bool condition the way spec.md §4.9 treats any other
// condition position.
func (b *Builder) BuildIfStmt(rng ast.SyntaxRange, cond ast.Expr, then, els ast.Stmt) *ast.IfStmt {
	cond = b.checkBoolCond(cond)
	return ast.NewIfStmt(rng, cond, then, els)
}

func (b *Builder) checkBoolCond(cond ast.Expr) ast.Expr {
	boolType := b.Types.Scalar(ast.Bool)
	if cond.DeducedType().Kind == ast.KindError {
		return cond
	}
	if ast.Equal(cond.DeducedType(), boolType) {
		return cond
	}
	if _, ok := ast.ImplicitlyConvertibleTo(cond.DeducedType(), boolType); ok {
		return b.castTo(boolType, cond)
	}
	b.errorf(cond.Range(), "condition must be a bool, got '%s'", cond.DeducedType())
	return cond
}

// BuildWhileStmt builds `while (cond) body`. The caller is expected to have
// bracketed cond/body with EnterLoop/LeaveLoop around the recursive descent
// into body so BuildJumpStmt sees the right nesting.
func (b *Builder) BuildWhileStmt(rng ast.SyntaxRange, cond ast.Expr, body ast.Stmt) *ast.WhileStmt {
	cond = b.checkBoolCond(cond)
	return ast.NewWhileStmt(rng, cond, body)
}

func (b *Builder) BuildDoWhileStmt(rng ast.SyntaxRange, body ast.Stmt, cond ast.Expr) *ast.DoWhileStmt {
	cond = b.checkBoolCond(cond)
	return ast.NewDoWhileStmt(rng, body, cond)
}

// BuildForStmt builds `for (init; cond; loop) body`; cond is nil-safe since
// a missing for-condition means "always true" and needs no conversion.
func (b *Builder) BuildForStmt(rng ast.SyntaxRange, init ast.Stmt, cond, loop ast.Expr, body ast.Stmt) *ast.ForStmt {
	if cond != nil {
		cond = b.checkBoolCond(cond)
	}
	return ast.NewForStmt(rng, init, cond, loop, body)
}

// EnterLoop/LeaveLoop bracket a while/do-while/for body so BuildJumpStmt
// can tell a break/continue apart from one outside any loop.
func (b *Builder) EnterLoop() { b.enterLoop() }
func (b *Builder) LeaveLoop() { b.leaveLoop() }

// EnterSwitchBody/LeaveSwitchBody bracket a switch's body, independently of
// loop nesting: `break` is legal in either, `continue` only in a loop.
func (b *Builder) EnterSwitchBody() { b.enterSwitch() }
func (b *Builder) LeaveSwitchBody() { b.leaveSwitch() }

// BuildSwitchStmt requires an integer-ish scalar test expression (spec.md
// §4.9; GLSL restricts switch to int).
func (b *Builder) BuildSwitchStmt(rng ast.SyntaxRange, test ast.Expr, body ast.Stmt) *ast.SwitchStmt {
	if test.DeducedType().Kind != ast.KindError {
		if test.DeducedType().Kind != ast.KindScalar || test.DeducedType().Scalar != ast.I32 {
			if _, ok := ast.ImplicitlyConvertibleTo(test.DeducedType(), b.Types.Scalar(ast.I32)); ok && test.DeducedType().Scalar != ast.Bool {
				test = b.castTo(b.Types.Scalar(ast.I32), test)
			} else {
				b.errorf(test.Range(), "switch expression must be an int, got '%s'", test.DeducedType())
			}
		}
	}
	return ast.NewSwitchStmt(rng, test, body)
}

// BuildLabelStmt builds a `case value:` or `default:` marker. A case value
// must be a constant integer expression (spec.md §4.9); it is otherwise
// unchecked against the enclosing switch's test type here, matching GLSL's
// own lack of a declared switch-test/case-label type-unification rule beyond
// "both int".
func (b *Builder) BuildLabelStmt(rng ast.SyntaxRange, kind ast.LabelKind, value ast.Expr) *ast.LabelStmt {
	if value != nil {
		if _, ok := value.ConstValue(); !ok {
			b.errorf(value.Range(), "case label must be a constant expression")
		}
	}
	return ast.NewLabelStmt(rng, kind, value)
}

// BuildJumpStmt validates break/continue/discard against the builder's
// current loop/switch nesting before constructing the node. discard is
// legal anywhere a statement can appear in this front end: staging it to
// fragment-shader-only would need a shader-stage parameter nothing upstream
// of sema currently threads through, so it is accepted unconditionally
// (documented simplification).
func (b *Builder) BuildJumpStmt(rng ast.SyntaxRange, kind ast.JumpKind) *ast.JumpStmt {
	switch kind {
	case ast.JumpBreak:
		if b.loopDepth == 0 && b.switchDepth == 0 {
			b.errorf(rng, "'break' outside a loop or switch")
		}
	case ast.JumpContinue:
		if b.loopDepth == 0 {
			b.errorf(rng, "'continue' outside a loop")
		}
	}
	return ast.NewJumpStmt(rng, kind)
}

// BuildReturnStmt checks value (if any) against the innermost open
// function's declared return type, inserting an implicit cast where one
// applies. A void function must not return a value and vice versa.
func (b *Builder) BuildReturnStmt(rng ast.SyntaxRange, value ast.Expr) *ast.ReturnStmt {
	ret := b.ReturnType()
	if ret == nil {
		if value != nil {
			b.errorf(rng, "'return' with a value outside a function body")
		}
		return ast.NewReturnStmt(rng, value)
	}

	isVoid := ret.Kind == ast.KindVoid
	switch {
	case isVoid && value != nil:
		b.errorf(rng, "function returning void cannot return a value")
	case !isVoid && value == nil:
		b.errorf(rng, "non-void function must return a value")
	case !isVoid && value != nil:
		if value.DeducedType().Kind != ast.KindError {
			if ast.Equal(value.DeducedType(), ret) {
				// already the right type
			} else if _, ok := ast.ImplicitlyConvertibleTo(value.DeducedType(), ret); ok {
				value = b.castTo(ret, value)
			} else {
				b.errorf(value.Range(), "cannot return '%s' from a function returning '%s'", value.DeducedType(), ret)
			}
		}
	}
	return ast.NewReturnStmt(rng, value)
}
