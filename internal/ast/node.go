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

// Node is implemented by every AST node: expressions, statements and
// declarations alike. It is a closed sum in spirit — callers type-switch
// over the concrete *Expr/*Stmt/*Decl variants defined in this package,
// there is no plugin mechanism for new node kinds (spec.md §9 Design
// Notes).
type Node interface {
	isNode()
	Children() []Node
}

// VisitAction tells Traverse whether to descend into a node's children and
// whether to keep walking the tree at all.
type VisitAction int

const (
	Continue VisitAction = iota // descend into children
	SkipChildren
	StopTraversal
)

// Visitor is called once per node on the way down (Enter) and once on the
// way back up (Leave). Either may be nil.
type Visitor struct {
	Enter func(Node) VisitAction
	Leave func(Node)
}

// Traverse walks n and its descendants pre-order, calling v.Enter before
// visiting children and v.Leave after. It honors SkipChildren and
// StopTraversal as returned from Enter.
func Traverse(n Node, v Visitor) {
	if n == nil {
		return
	}
	traverse(n, v)
}

// traverse returns false to propagate a StopTraversal up the call stack.
func traverse(n Node, v Visitor) bool {
	action := Continue
	if v.Enter != nil {
		action = v.Enter(n)
	}
	if action == StopTraversal {
		return false
	}
	if action != SkipChildren {
		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			if !traverse(child, v) {
				return false
			}
		}
	}
	if v.Leave != nil {
		v.Leave(n)
	}
	return true
}
