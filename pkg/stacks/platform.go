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

// Platform is implemented by the per-platform leaf records of the
// 2020-05-01 stack trees. Each record describes exactly one OS.
type Platform[P any] interface {
	Branch() (Branch, bool)
	DeepCopy() P
}

// PlatformStack is the root of a 2020-05-01 stack tree.
type PlatformStack[P Platform[P]] struct {
	DisplayText string               `json:"displayText" yaml:"displayText" validate:"required"`
	Value       string               `json:"value" yaml:"value" validate:"required"`
	SortOrder   int                  `json:"sortOrder" yaml:"sortOrder"`
	Versions    []PlatformVersion[P] `json:"versions" yaml:"versions" validate:"required,min=1,unique=Value,dive"`
}

// PlatformVersion lists the platforms a stack version can be created on.
type PlatformVersion[P Platform[P]] struct {
	DisplayText        string `json:"displayText" yaml:"displayText" validate:"required"`
	Value              string `json:"value" yaml:"value" validate:"required"`
	SortOrder          int    `json:"sortOrder" yaml:"sortOrder"`
	IsDefault          bool   `json:"isDefault" yaml:"isDefault"`
	SupportedPlatforms []P    `json:"supportedPlatforms" yaml:"supportedPlatforms" validate:"required,min=1,dive,required"`
}

// PlatformStacks is an ordered list of platform stack trees.
type PlatformStacks[P Platform[P]] []PlatformStack[P]

// DeepCopy returns an independent copy of the stack.
func (s PlatformStack[P]) DeepCopy() PlatformStack[P] {
	out := s
	out.Versions = make([]PlatformVersion[P], 0, len(s.Versions))
	for _, v := range s.Versions {
		platforms := make([]P, 0, len(v.SupportedPlatforms))
		for _, p := range v.SupportedPlatforms {
			platforms = append(platforms, p.DeepCopy())
		}
		v.SupportedPlatforms = platforms
		out.Versions = append(out.Versions, v)
	}
	return out
}

// DeepCopy returns an independent copy of every stack in the list. A nil
// list stays nil.
func (s PlatformStacks[P]) DeepCopy() PlatformStacks[P] {
	if s == nil {
		return nil
	}
	out := make(PlatformStacks[P], 0, len(s))
	for _, st := range s {
		out = append(out, st.DeepCopy())
	}
	return out
}

// PlatformCount returns the number of platform records across all stacks.
func (s PlatformStacks[P]) PlatformCount() int {
	n := 0
	for _, st := range s {
		for _, v := range st.Versions {
			n += len(v.SupportedPlatforms)
		}
	}
	return n
}

// PlatformGitHubActionSettings describes GitHub Actions support of a
// 2020-05-01 web-app platform.
type PlatformGitHubActionSettings struct {
	Supported          bool   `json:"supported" yaml:"supported"`
	RecommendedVersion string `json:"recommendedVersion,omitempty" yaml:"recommendedVersion,omitempty"`
}

// WebAppCreatePlatform is a platform a web-app stack version can be created on.
type WebAppCreatePlatform struct {
	OS                         OS                            `json:"os" yaml:"os" validate:"required,oneof=linux windows"`
	RuntimeVersion             string                        `json:"runtimeVersion" yaml:"runtimeVersion" validate:"required"`
	IsPreview                  bool                          `json:"isPreview" yaml:"isPreview"`
	IsDeprecated               bool                          `json:"isDeprecated" yaml:"isDeprecated"`
	IsHidden                   bool                          `json:"isHidden" yaml:"isHidden"`
	IsDefault                  bool                          `json:"isDefault" yaml:"isDefault"`
	ApplicationInsightsEnabled bool                          `json:"applicationInsightsEnabled" yaml:"applicationInsightsEnabled"`
	GitHubActionSettings       *PlatformGitHubActionSettings `json:"githubActionSettings,omitempty" yaml:"githubActionSettings,omitempty"`
}

// Branch returns the filter view of the platform.
func (p *WebAppCreatePlatform) Branch() (Branch, bool) {
	if p == nil {
		return Branch{}, false
	}
	return Branch{
		OS:                    p.OS,
		Label:                 p.RuntimeVersion,
		Hidden:                p.IsHidden,
		Deprecated:            p.IsDeprecated,
		Preview:               p.IsPreview,
		GitHubActionSupported: p.GitHubActionSettings != nil && p.GitHubActionSettings.Supported,
	}, true
}

// DeepCopy returns an independent copy.
func (p *WebAppCreatePlatform) DeepCopy() *WebAppCreatePlatform {
	if p == nil {
		return nil
	}
	out := *p
	if p.GitHubActionSettings != nil {
		gh := *p.GitHubActionSettings
		out.GitHubActionSettings = &gh
	}
	return &out
}

// FunctionAppPlatform is a platform a 2020-05-01 function-app stack version
// can be created on.
type FunctionAppPlatform struct {
	OS                             OS                             `json:"os" yaml:"os" validate:"required,oneof=linux windows"`
	RuntimeVersion                 string                         `json:"runtimeVersion" yaml:"runtimeVersion" validate:"required"`
	IsPreview                      bool                           `json:"isPreview" yaml:"isPreview"`
	IsDeprecated                   bool                           `json:"isDeprecated" yaml:"isDeprecated"`
	IsHidden                       bool                           `json:"isHidden" yaml:"isHidden"`
	IsDefault                      bool                           `json:"isDefault" yaml:"isDefault"`
	ApplicationInsightsEnabled     bool                           `json:"applicationInsightsEnabled" yaml:"applicationInsightsEnabled"`
	AppSettingsDictionary          AppSettingsDictionary          `json:"appSettingsDictionary" yaml:"appSettingsDictionary"`
	SiteConfigPropertiesDictionary SiteConfigPropertiesDictionary `json:"siteConfigPropertiesDictionary" yaml:"siteConfigPropertiesDictionary"`
}

// Branch returns the filter view of the platform.
func (p *FunctionAppPlatform) Branch() (Branch, bool) {
	if p == nil {
		return Branch{}, false
	}
	return Branch{
		OS:         p.OS,
		Label:      p.RuntimeVersion,
		Hidden:     p.IsHidden,
		Deprecated: p.IsDeprecated,
		Preview:    p.IsPreview,
	}, true
}

// DeepCopy returns an independent copy.
func (p *FunctionAppPlatform) DeepCopy() *FunctionAppPlatform {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
