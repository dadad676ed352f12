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
	"slices"
)

// Filter selects the part of a stack tree a caller asked for. The zero
// value keeps everything. Active predicates compose as logical AND.
type Filter struct {
	// OS keeps only the branches of this OS when set.
	OS OS
	// StackValue keeps only the stack with this identifier when set.
	StackValue string
	// RemoveHidden drops branches flagged as hidden.
	RemoveHidden bool
	// GitHubActionsOnly drops branches without GitHub Actions support.
	GitHubActionsOnly bool
}

// Keep reports whether a branch passes every active predicate.
func (f Filter) Keep(b Branch) bool {
	if f.OS != "" && b.OS != f.OS {
		return false
	}
	if f.RemoveHidden && b.Hidden {
		return false
	}
	if f.GitHubActionsOnly && !b.GitHubActionSupported {
		return false
	}
	return true
}

// String returns a compact description of the active predicates.
func (f Filter) String() string {
	return fmt.Sprintf("OS: %s, Stack: %s, RemoveHidden: %t, GitHubActionsOnly: %t",
		valueOrAny(f.OS.String()), valueOrAny(f.StackValue), f.RemoveHidden, f.GitHubActionsOnly)
}

func valueOrAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// Prune removes from stacks every settings branch failing the filter, then
// every minor version left without branches, every major version left
// without minor versions and every stack left without major versions.
//
// The list is modified in place and must be owned by the caller. Sibling
// order is preserved, the operation is idempotent and the result is never nil.
func Prune[S Settings[S]](stacks Stacks[S], f Filter) Stacks[S] {
	if f.StackValue != "" {
		st, ok := stacks.Find(f.StackValue)
		if !ok {
			return Stacks[S]{}
		}
		stacks = Stacks[S]{st}
	}

	for i := range stacks {
		majors := stacks[i].MajorVersions
		for j := range majors {
			minors := majors[j].MinorVersions
			for k := range minors {
				for _, o := range SupportedOS {
					if b, ok := minors[k].StackSettings.Branch(o); ok && !f.Keep(b) {
						minors[k].StackSettings.Clear(o)
					}
				}
			}
			majors[j].MinorVersions = slices.DeleteFunc(minors, func(m MinorVersion[S]) bool {
				return !populated(m.StackSettings)
			})
		}
		stacks[i].MajorVersions = slices.DeleteFunc(majors, func(m MajorVersion[S]) bool {
			return len(m.MinorVersions) == 0
		})
	}

	stacks = slices.DeleteFunc(stacks, func(s Stack[S]) bool {
		return len(s.MajorVersions) == 0
	})
	if stacks == nil {
		return Stacks[S]{}
	}
	return stacks
}

// PruneWebApp applies Prune to the runtime and container lists of w, which
// must be owned by the caller. Both lists of the result are non-nil.
func PruneWebApp(w WebAppStacks, f Filter) WebAppStacks {
	return WebAppStacks{
		Runtimes:   Prune(w.Runtimes, f),
		Containers: Prune(w.Containers, f),
	}
}

// PrunePlatforms is Prune for the 2020-05-01 platform trees: platforms
// failing the filter are removed, then versions left without platforms and
// stacks left without versions.
func PrunePlatforms[P Platform[P]](stacks PlatformStacks[P], f Filter) PlatformStacks[P] {
	if f.StackValue != "" {
		stacks = selectStack(stacks, func(s PlatformStack[P]) bool { return s.Value == f.StackValue })
	}

	for i := range stacks {
		versions := stacks[i].Versions
		for j := range versions {
			versions[j].SupportedPlatforms = slices.DeleteFunc(versions[j].SupportedPlatforms, func(p P) bool {
				b, ok := p.Branch()
				return !ok || !f.Keep(b)
			})
		}
		stacks[i].Versions = slices.DeleteFunc(versions, func(v PlatformVersion[P]) bool {
			return len(v.SupportedPlatforms) == 0
		})
	}

	stacks = slices.DeleteFunc(stacks, func(s PlatformStack[P]) bool {
		return len(s.Versions) == 0
	})
	if stacks == nil {
		return PlatformStacks[P]{}
	}
	return stacks
}

// selectStack keeps at most the first element matching match.
func selectStack[L ~[]E, E any](list L, match func(E) bool) L {
	i := slices.IndexFunc(list, match)
	if i < 0 {
		return list[:0]
	}
	return list[i : i+1]
}
