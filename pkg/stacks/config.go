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

// ConfigStack is an entry of the 2020-05-01 web-app configuration stacks,
// shaped like the ARM "available stacks" resource.
type ConfigStack struct {
	Name       string                `json:"name" yaml:"name" validate:"required"`
	Type       string                `json:"type" yaml:"type" validate:"required"`
	Properties ConfigStackProperties `json:"properties" yaml:"properties"`
}

// ConfigStackProperties describes a configurable stack and its frameworks.
type ConfigStackProperties struct {
	Name          string                  `json:"name" yaml:"name" validate:"required"`
	Display       string                  `json:"display" yaml:"display" validate:"required"`
	Dependency    string                  `json:"dependency,omitempty" yaml:"dependency,omitempty"`
	MajorVersions []ConfigMajorVersion    `json:"majorVersions" yaml:"majorVersions" validate:"dive"`
	Frameworks    []ConfigStackProperties `json:"frameworks" yaml:"frameworks" validate:"dive"`
	IsDeprecated  bool                    `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
}

// ConfigMajorVersion is a selectable major version of a config stack.
type ConfigMajorVersion struct {
	DisplayVersion      string               `json:"displayVersion" yaml:"displayVersion" validate:"required"`
	RuntimeVersion      string               `json:"runtimeVersion" yaml:"runtimeVersion"`
	IsDefault           bool                 `json:"isDefault" yaml:"isDefault"`
	MinorVersions       []ConfigMinorVersion `json:"minorVersions" yaml:"minorVersions" validate:"dive"`
	ApplicationInsights bool                 `json:"applicationInsights" yaml:"applicationInsights"`
	IsPreview           bool                 `json:"isPreview" yaml:"isPreview"`
	IsDeprecated        bool                 `json:"isDeprecated" yaml:"isDeprecated"`
	IsHidden            bool                 `json:"isHidden" yaml:"isHidden"`
}

// ConfigMinorVersion is a selectable minor version of a config stack.
type ConfigMinorVersion struct {
	DisplayVersion           string `json:"displayVersion" yaml:"displayVersion" validate:"required"`
	RuntimeVersion           string `json:"runtimeVersion" yaml:"runtimeVersion" validate:"required"`
	IsDefault                bool   `json:"isDefault" yaml:"isDefault"`
	IsRemoteDebuggingEnabled bool   `json:"isRemoteDebuggingEnabled" yaml:"isRemoteDebuggingEnabled"`
}

// ConfigStacks holds the config stacks of each OS. Config stacks are
// declared per OS, so OS selection picks a list instead of pruning a tree.
type ConfigStacks struct {
	Windows []ConfigStack `json:"windows" yaml:"windows" validate:"required,min=1,unique=Name,dive"`
	Linux   []ConfigStack `json:"linux" yaml:"linux" validate:"required,min=1,unique=Name,dive"`
}

// List returns a copy of the config stacks for os, or the windows stacks
// followed by the linux stacks when os is empty.
func (c ConfigStacks) List(os OS) []ConfigStack {
	var src []ConfigStack
	switch os {
	case OSLinux:
		src = c.Linux
	case OSWindows:
		src = c.Windows
	default:
		src = slices.Concat(c.Windows, c.Linux)
	}
	return copyConfigStacks(src)
}

// DeepCopy returns an independent copy. Nil lists stay nil.
func (c ConfigStacks) DeepCopy() ConfigStacks {
	out := ConfigStacks{}
	if c.Windows != nil {
		out.Windows = copyConfigStacks(c.Windows)
	}
	if c.Linux != nil {
		out.Linux = copyConfigStacks(c.Linux)
	}
	return out
}

func copyConfigStacks(src []ConfigStack) []ConfigStack {
	out := make([]ConfigStack, 0, len(src))
	for _, s := range src {
		out = append(out, s.DeepCopy())
	}
	return out
}

// DeepCopy returns an independent copy.
func (s ConfigStack) DeepCopy() ConfigStack {
	out := s
	out.Properties = s.Properties.deepCopy()
	return out
}

func (p ConfigStackProperties) deepCopy() ConfigStackProperties {
	out := p
	out.MajorVersions = make([]ConfigMajorVersion, 0, len(p.MajorVersions))
	for _, m := range p.MajorVersions {
		m.MinorVersions = append(make([]ConfigMinorVersion, 0, len(m.MinorVersions)), m.MinorVersions...)
		out.MajorVersions = append(out.MajorVersions, m)
	}
	out.Frameworks = make([]ConfigStackProperties, 0, len(p.Frameworks))
	for _, f := range p.Frameworks {
		out.Frameworks = append(out.Frameworks, f.deepCopy())
	}
	return out
}
