// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stacks

import (
	"slices"
)

// Branch is the filter's view of one populated per-OS (or per-platform)
// settings slot.
type Branch struct {
	OS                    OS
	Label                 string
	Hidden                bool
	Deprecated            bool
	Preview               bool
	GitHubActionSupported bool
}

// Settings is implemented by every minor-version settings variant. A variant
// holds at most one settings record per OS.
type Settings[S any] interface {
	// Branch returns the populated slot for os, if any.
	Branch(os OS) (Branch, bool)
	// Clear empties the slot for os.
	Clear(os OS)
	// DeepCopy returns an independent copy of the settings.
	DeepCopy() S
}

// Stack is the root of a three-level stack tree.
type Stack[S Settings[S]] struct {
	DisplayText   string            `json:"displayText" yaml:"displayText" validate:"required"`
	Value         string            `json:"value" yaml:"value" validate:"required"`
	PreferredOS   OS                `json:"preferredOs,omitempty" yaml:"preferredOs,omitempty" validate:"omitempty,oneof=linux windows"`
	MajorVersions []MajorVersion[S] `json:"majorVersions" yaml:"majorVersions" validate:"required,min=1,unique=Value,dive"`
}

// MajorVersion groups the minor versions of a stack, e.g. "Python 3".
type MajorVersion[S Settings[S]] struct {
	DisplayText   string            `json:"displayText" yaml:"displayText" validate:"required"`
	Value         string            `json:"value" yaml:"value" validate:"required"`
	MinorVersions []MinorVersion[S] `json:"minorVersions" yaml:"minorVersions" validate:"required,min=1,unique=Value,dive"`
}

// MinorVersion is a leaf of the stack tree carrying the per-OS settings.
type MinorVersion[S Settings[S]] struct {
	DisplayText   string `json:"displayText" yaml:"displayText" validate:"required"`
	Value         string `json:"value" yaml:"value" validate:"required"`
	StackSettings S      `json:"stackSettings" yaml:"stackSettings" validate:"required"`
}

// Stacks is an ordered list of stack trees of one settings variant.
type Stacks[S Settings[S]] []Stack[S]

// DeepCopy returns an independent copy of the stack.
func (s Stack[S]) DeepCopy() Stack[S] {
	out := s
	out.MajorVersions = make([]MajorVersion[S], 0, len(s.MajorVersions))
	for _, major := range s.MajorVersions {
		out.MajorVersions = append(out.MajorVersions, major.DeepCopy())
	}
	return out
}

// DeepCopy returns an independent copy of the major version.
func (m MajorVersion[S]) DeepCopy() MajorVersion[S] {
	out := m
	out.MinorVersions = make([]MinorVersion[S], 0, len(m.MinorVersions))
	for _, minor := range m.MinorVersions {
		minor.StackSettings = minor.StackSettings.DeepCopy()
		out.MinorVersions = append(out.MinorVersions, minor)
	}
	return out
}

// DeepCopy returns an independent copy of every stack in the list. A nil
// list stays nil.
func (s Stacks[S]) DeepCopy() Stacks[S] {
	if s == nil {
		return nil
	}
	out := make(Stacks[S], 0, len(s))
	for _, st := range s {
		out = append(out, st.DeepCopy())
	}
	return out
}

// Find returns the stack with the given value.
func (s Stacks[S]) Find(value string) (Stack[S], bool) {
	i := slices.IndexFunc(s, func(st Stack[S]) bool { return st.Value == value })
	if i < 0 {
		return Stack[S]{}, false
	}
	return s[i], true
}

// Values returns the stack identifiers in catalog order.
func (s Stacks[S]) Values() []string {
	out := make([]string, 0, len(s))
	for _, st := range s {
		out = append(out, st.Value)
	}
	return out
}

// MinorVersionCount returns the number of minor versions across all stacks.
func (s Stacks[S]) MinorVersionCount() int {
	n := 0
	for _, st := range s {
		for _, major := range st.MajorVersions {
			n += len(major.MinorVersions)
		}
	}
	return n
}

// Branches returns the populated branches of the settings in SupportedOS order.
func Branches[S Settings[S]](settings S) []Branch {
	var out []Branch
	for _, o := range SupportedOS {
		if b, ok := settings.Branch(o); ok {
			out = append(out, b)
		}
	}
	return out
}

func populated[S Settings[S]](settings S) bool {
	for _, o := range SupportedOS {
		if _, ok := settings.Branch(o); ok {
			return true
		}
	}
	return false
}
