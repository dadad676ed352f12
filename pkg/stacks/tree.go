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
	"fmt"
	"io"
	"strings"

	"github.com/ddddddO/gtree"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const treeRoot = "stacks"

// titleCase upper-cases the first letter of each word. A new Caser is
// created per call as Casers are not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// String renders the branch as "<OS>: <label>" followed by its flags.
func (b Branch) String() string {
	var flags []string
	if b.Preview {
		flags = append(flags, "preview")
	}
	if b.Deprecated {
		flags = append(flags, "deprecated")
	}
	if b.Hidden {
		flags = append(flags, "hidden")
	}
	if b.GitHubActionSupported {
		flags = append(flags, "github-actions")
	}
	s := fmt.Sprintf("%s: %s", b.OS.Title(), b.Label)
	if len(flags) > 0 {
		s += " [" + strings.Join(flags, ", ") + "]"
	}
	return s
}

func nodeLabel(displayText, value string) string {
	return fmt.Sprintf("%s (%s)", displayText, value)
}

// RenderTree writes the stacks as an indented tree.
func (s Stacks[S]) RenderTree(w io.Writer) error {
	root := gtree.NewRoot(treeRoot)
	s.addTo(root)
	return gtree.OutputFromRoot(w, root)
}

func (s Stacks[S]) addTo(root *gtree.Node) {
	for _, st := range s {
		stackNode := root.Add(nodeLabel(st.DisplayText, st.Value))
		for _, major := range st.MajorVersions {
			majorNode := stackNode.Add(nodeLabel(major.DisplayText, major.Value))
			for _, minor := range major.MinorVersions {
				minorNode := majorNode.Add(nodeLabel(minor.DisplayText, minor.Value))
				for _, b := range Branches(minor.StackSettings) {
					minorNode.Add(b.String())
				}
			}
		}
	}
}

// RenderTree writes the platform stacks as an indented tree.
func (s PlatformStacks[P]) RenderTree(w io.Writer) error {
	root := gtree.NewRoot(treeRoot)
	for _, st := range s {
		stackNode := root.Add(nodeLabel(st.DisplayText, st.Value))
		for _, v := range st.Versions {
			versionNode := stackNode.Add(nodeLabel(v.DisplayText, v.Value))
			for _, p := range v.SupportedPlatforms {
				if b, ok := p.Branch(); ok {
					versionNode.Add(b.String())
				}
			}
		}
	}
	return gtree.OutputFromRoot(w, root)
}

// RenderTree writes the runtime and container stacks as one tree.
func (w WebAppStacks) RenderTree(out io.Writer) error {
	root := gtree.NewRoot(treeRoot)
	w.Runtimes.addTo(root)
	w.Containers.addTo(root)
	return gtree.OutputFromRoot(out, root)
}
