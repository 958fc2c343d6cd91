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

// Package diag is the diagnostic sink (C11): a pair of append-only lists of
// errors and warnings, each carrying the token range it applies to. Unlike
// a Go `error`, appending to a Sink never aborts the producing pass -- it is
// the core's "we recovered, but here's what went wrong" channel, kept
// distinct from the `error` returns used at I/O boundaries.
package diag

import (
	"fmt"

	"github.com/daiyousei-qz/glsld-sub001/internal/token"
)

// Entry is a single diagnostic: a message attached to a (spelled or
// expanded, caller's choice) token range.
type Entry struct {
	Range   token.Range
	Message string
}

// Sink collects diagnostics in production order. There is no severity
// hierarchy beyond the Errors/Warnings split and no deduplication.
type Sink struct {
	errors   []Entry
	warnings []Entry
}

// Errorf appends a new error entry.
func (s *Sink) Errorf(rng token.Range, format string, args ...interface{}) {
	s.errors = append(s.errors, Entry{Range: rng, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a new warning entry.
func (s *Sink) Warnf(rng token.Range, format string, args ...interface{}) {
	s.warnings = append(s.warnings, Entry{Range: rng, Message: fmt.Sprintf(format, args...)})
}

// Errors returns every error entry in production order.
func (s *Sink) Errors() []Entry { return s.errors }

// Warnings returns every warning entry in production order.
func (s *Sink) Warnings() []Entry { return s.warnings }

// HasErrors reports whether any error was recorded; per spec.md §7, a
// non-empty error list is the invocation's only failure signal.
func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

// Merge appends every entry of other to s, preserving relative order.
func (s *Sink) Merge(other *Sink) {
	if other == nil {
		return
	}
	s.errors = append(s.errors, other.errors...)
	s.warnings = append(s.warnings, other.warnings...)
}
