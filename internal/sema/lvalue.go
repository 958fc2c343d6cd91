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

// isLValue reports whether e can appear on the left of an assignment or as
// the operand of `++`/`--`. ast's Expr variants don't carry an explicit
// lvalue flag, so this walks the node shape directly: names, field access
// and non-repeating swizzles are lvalues exactly when their base is (array
// indexing never breaks lvalue-ness; constructor/call results and literals
// never are).
func isLValue(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.NameAccessExpr:
		return n.Resolved != nil
	case *ast.FieldAccessExpr:
		return isLValue(n.Base)
	case *ast.SwizzleAccessExpr:
		return isLValue(n.Base) && swizzleIsLValue(n.Components)
	case *ast.IndexAccessExpr:
		return isLValue(n.Base)
	default:
		return false
	}
}
