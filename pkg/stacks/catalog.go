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
	"encoding/json"
	"slices"

	"github.com/stefanushinardi/azure-functions-ux/pkg/header"
)

// API versions served by the catalog. Field names and nesting of a
// generation never change; new fields require a new version.
const (
	APIVersion20200501 = "2020-05-01"
	APIVersion20200601 = "2020-06-01"
)

// SupportedAPIVersions lists every API version in release order.
var SupportedAPIVersions = []string{APIVersion20200501, APIVersion20200601}

// Generation20200501 holds the platform-shaped trees of API version 2020-05-01.
type Generation20200501 struct {
	WebAppCreateStacks PlatformStacks[*WebAppCreatePlatform] `json:"webAppCreateStacks" yaml:"webAppCreateStacks" validate:"required,min=1,unique=Value,dive"`
	WebAppConfigStacks ConfigStacks                          `json:"webAppConfigStacks" yaml:"webAppConfigStacks"`
	FunctionAppStacks  PlatformStacks[*FunctionAppPlatform]  `json:"functionAppStacks" yaml:"functionAppStacks" validate:"required,min=1,unique=Value,dive"`
}

// DeepCopy returns an independent copy.
func (g *Generation20200501) DeepCopy() *Generation20200501 {
	if g == nil {
		return nil
	}
	return &Generation20200501{
		WebAppCreateStacks: g.WebAppCreateStacks.DeepCopy(),
		WebAppConfigStacks: g.WebAppConfigStacks.DeepCopy(),
		FunctionAppStacks:  g.FunctionAppStacks.DeepCopy(),
	}
}

// Generation20200601 holds the three-level trees of API version 2020-06-01.
type Generation20200601 struct {
	WebAppRuntimeStacks   Stacks[*WebAppRuntimes]      `json:"webAppRuntimeStacks" yaml:"webAppRuntimeStacks" validate:"required,min=1,unique=Value,dive"`
	WebAppContainerStacks Stacks[*JavaContainers]      `json:"webAppContainerStacks" yaml:"webAppContainerStacks" validate:"required,min=1,unique=Value,dive"`
	FunctionAppStacks     Stacks[*FunctionAppRuntimes] `json:"functionAppStacks" yaml:"functionAppStacks" validate:"required,min=1,unique=Value,dive"`
}

// DeepCopy returns an independent copy.
func (g *Generation20200601) DeepCopy() *Generation20200601 {
	if g == nil {
		return nil
	}
	return &Generation20200601{
		WebAppRuntimeStacks:   g.WebAppRuntimeStacks.DeepCopy(),
		WebAppContainerStacks: g.WebAppContainerStacks.DeepCopy(),
		FunctionAppStacks:     g.FunctionAppStacks.DeepCopy(),
	}
}

// WebAppStacks returns the runtime stacks followed by the container stacks.
func (g *Generation20200601) WebAppStacks() WebAppStacks {
	return WebAppStacks{
		Runtimes:   g.WebAppRuntimeStacks,
		Containers: g.WebAppContainerStacks,
	}
}

// Catalog is the exported document holding every API generation.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	V20200501 *Generation20200501 `json:"2020-05-01,omitempty" yaml:"2020-05-01,omitempty"`
	V20200601 *Generation20200601 `json:"2020-06-01,omitempty" yaml:"2020-06-01,omitempty"`
}

// DeepCopy returns an independent copy.
func (c *Catalog) DeepCopy() *Catalog {
	if c == nil {
		return nil
	}
	out := &Catalog{
		Header:    c.Header,
		V20200501: c.V20200501.DeepCopy(),
		V20200601: c.V20200601.DeepCopy(),
	}
	if c.Metadata != nil {
		out.Metadata = make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// WebAppStacks is the 2020-06-01 web-app response: runtime stacks and Java
// container stacks serialized as one array, runtimes first.
type WebAppStacks struct {
	Runtimes   Stacks[*WebAppRuntimes]
	Containers Stacks[*JavaContainers]
}

// Len returns the total number of stacks.
func (w WebAppStacks) Len() int {
	return len(w.Runtimes) + len(w.Containers)
}

// Values returns the stack identifiers, runtimes first.
func (w WebAppStacks) Values() []string {
	return slices.Concat(w.Runtimes.Values(), w.Containers.Values())
}

// DeepCopy returns an independent copy of both lists.
func (w WebAppStacks) DeepCopy() WebAppStacks {
	return WebAppStacks{
		Runtimes:   w.Runtimes.DeepCopy(),
		Containers: w.Containers.DeepCopy(),
	}
}

func (w WebAppStacks) items() []any {
	out := make([]any, 0, w.Len())
	for _, s := range w.Runtimes {
		out = append(out, s)
	}
	for _, s := range w.Containers {
		out = append(out, s)
	}
	return out
}

// MarshalJSON emits the stacks as a single JSON array.
func (w WebAppStacks) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.items())
}

// MarshalYAML emits the stacks as a single YAML sequence.
func (w WebAppStacks) MarshalYAML() (any, error) {
	return w.items(), nil
}
