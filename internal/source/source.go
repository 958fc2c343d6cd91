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

// Package source implements the source manager (C2): it owns source buffers
// keyed by FileID and resolves #include paths against a canonical-path
// cache, the way the teacher's gapid.core/text/parse readers are handed a
// filename+buffer pair but centralized here so #include descent can share
// one cache across an invocation.
package source

import (
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
)

// ID is an opaque identifier for a source unit.
type ID int32

// Distinguished FileIDs, allocated once per Manager.
const (
	SystemPreamble ID = iota
	UserPreamble
	MainFile
	firstDynamicID
)

// File is one loaded source unit: either buffer-only, or backed by a
// canonical path on disk.
type File struct {
	ID   ID
	Path string // empty if buffer-only
	Text string
}

// Manager owns every File loaded during one compiler invocation.
type Manager struct {
	files      []*File
	byPath     map[string]ID
	nextID     ID
}

// NewManager constructs an empty Manager. The three distinguished IDs are
// reserved but not yet populated; callers load them with OpenFromBuffer or
// OpenFromFile before use.
func NewManager() *Manager {
	return &Manager{
		byPath: make(map[string]ID),
		nextID: firstDynamicID,
	}
}

func (m *Manager) put(id ID, f *File) {
	for int(id) >= len(m.files) {
		m.files = append(m.files, nil)
	}
	m.files[id] = f
}

// OpenFromBuffer creates a new File backed by in-memory text, with no path,
// and returns its ID. Used for the system/user preambles and for hosts that
// don't have the main file on disk.
func (m *Manager) OpenFromBuffer(text string) ID {
	id := m.nextID
	m.nextID++
	m.put(id, &File{ID: id, Text: text})
	return id
}

// OpenFromBufferAt is like OpenFromBuffer but stores the result at one of
// the three distinguished IDs instead of allocating a fresh one.
func (m *Manager) OpenFromBufferAt(id ID, text string) {
	m.put(id, &File{ID: id, Text: text})
}

// OpenFromFile resolves path to its canonical form, returning the cached ID
// if the same canonical path was already loaded. Otherwise it reads the
// file's bytes and allocates a new ID. Fails with an IoError-wrapped error
// when the path cannot be read.
func (m *Manager) OpenFromFile(path string) (ID, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return 0, errors.Wrapf(err, "resolving path %q", path)
	}
	if id, ok := m.byPath[canonical]; ok {
		return id, nil
	}

	bytes, err := ioutil.ReadFile(canonical)
	if err != nil {
		return 0, errors.Wrapf(err, "IoError: reading %q", canonical)
	}

	id := m.nextID
	m.nextID++
	m.put(id, &File{ID: id, Path: canonical, Text: string(bytes)})
	m.byPath[canonical] = id
	return id, nil
}

// Get returns the File for id, or nil if it hasn't been loaded.
func (m *Manager) Get(id ID) *File {
	if int(id) < 0 || int(id) >= len(m.files) {
		return nil
	}
	return m.files[id]
}

// ResolveInclude searches includePaths, in order, for name (either relative
// to fromDir first when quoted, or purely via includePaths when angled),
// returning the resolved ID on the first hit.
func (m *Manager) ResolveInclude(name string, angled bool, fromDir string, includePaths []string) (ID, error) {
	candidates := make([]string, 0, len(includePaths)+1)
	if !angled && fromDir != "" {
		candidates = append(candidates, filepath.Join(fromDir, name))
	}
	for _, dir := range includePaths {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	var lastErr error
	for _, candidate := range candidates {
		id, err := m.OpenFromFile(candidate)
		if err == nil {
			return id, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.Errorf("no include paths configured")
	}
	return 0, errors.Wrapf(lastErr, "resolving #include %q", name)
}
