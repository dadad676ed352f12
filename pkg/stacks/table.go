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
	"strings"
)

var (
	stackTableHeader    = []string{"STACK", "MAJOR", "MINOR", "OS", "RUNTIME", "FLAGS"}
	platformTableHeader = []string{"STACK", "VERSION", "OS", "RUNTIME", "FLAGS"}
)

// flags returns the lifecycle flags of the branch as a comma separated list.
func (b Branch) flags() string {
	var out []string
	if b.Preview {
		out = append(out, "preview")
	}
	if b.Deprecated {
		out = append(out, "deprecated")
	}
	if b.Hidden {
		out = append(out, "hidden")
	}
	if b.GitHubActionSupported {
		out = append(out, "github-actions")
	}
	return strings.Join(out, ",")
}

// TableHeader returns the column names of the stack table.
func (s Stacks[S]) TableHeader() []string {
	return stackTableHeader
}

// TableRows returns one row per populated branch.
func (s Stacks[S]) TableRows() [][]string {
	var rows [][]string
	for _, st := range s {
		for _, major := range st.MajorVersions {
			for _, minor := range major.MinorVersions {
				for _, b := range Branches(minor.StackSettings) {
					rows = append(rows, []string{st.Value, major.Value, minor.Value, b.OS.String(), b.Label, b.flags()})
				}
			}
		}
	}
	return rows
}

// TableHeader returns the column names of the platform table.
func (s PlatformStacks[P]) TableHeader() []string {
	return platformTableHeader
}

// TableRows returns one row per platform record.
func (s PlatformStacks[P]) TableRows() [][]string {
	var rows [][]string
	for _, st := range s {
		for _, v := range st.Versions {
			for _, p := range v.SupportedPlatforms {
				b, ok := p.Branch()
				if !ok {
					continue
				}
				rows = append(rows, []string{st.Value, v.Value, b.OS.String(), b.Label, b.flags()})
			}
		}
	}
	return rows
}

// TableHeader returns the column names of the stack table.
func (w WebAppStacks) TableHeader() []string {
	return stackTableHeader
}

// TableRows returns the runtime rows followed by the container rows.
func (w WebAppStacks) TableRows() [][]string {
	return append(w.Runtimes.TableRows(), w.Containers.TableRows()...)
}
