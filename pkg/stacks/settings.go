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
	"time"

	"k8s.io/utils/ptr"
)

// CommonSettings are the lifecycle flags shared by every settings record.
type CommonSettings struct {
	IsPreview     bool       `json:"isPreview,omitempty" yaml:"isPreview,omitempty"`
	IsDeprecated  bool       `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
	IsHidden      bool       `json:"isHidden,omitempty" yaml:"isHidden,omitempty"`
	EndOfLifeDate *time.Time `json:"endOfLifeDate,omitempty" yaml:"endOfLifeDate,omitempty"`
	IsAutoUpdate  bool       `json:"isAutoUpdate,omitempty" yaml:"isAutoUpdate,omitempty"`
}

func (c CommonSettings) deepCopy() CommonSettings {
	out := c
	if c.EndOfLifeDate != nil {
		out.EndOfLifeDate = ptr.To(*c.EndOfLifeDate)
	}
	return out
}

func (c CommonSettings) branch(os OS, label string) Branch {
	return Branch{
		OS:         os,
		Label:      label,
		Hidden:     c.IsHidden,
		Deprecated: c.IsDeprecated,
		Preview:    c.IsPreview,
	}
}

// AppInsightsSettings describes Application Insights support for a runtime.
type AppInsightsSettings struct {
	IsSupported  bool `json:"isSupported" yaml:"isSupported"`
	IsDefaultOff bool `json:"isDefaultOff,omitempty" yaml:"isDefaultOff,omitempty"`
}

// GitHubActionSettings describes GitHub Actions deployment support for a runtime.
type GitHubActionSettings struct {
	IsSupported      bool   `json:"isSupported" yaml:"isSupported"`
	SupportedVersion string `json:"supportedVersion,omitempty" yaml:"supportedVersion,omitempty"`
}

// RuntimeSettings is the web-app settings record for one OS.
type RuntimeSettings struct {
	RuntimeVersion           string               `json:"runtimeVersion" yaml:"runtimeVersion" validate:"required"`
	RemoteDebuggingSupported bool                 `json:"remoteDebuggingSupported" yaml:"remoteDebuggingSupported"`
	AppInsightsSettings      AppInsightsSettings  `json:"appInsightsSettings" yaml:"appInsightsSettings"`
	GitHubActionSettings     GitHubActionSettings `json:"gitHubActionSettings" yaml:"gitHubActionSettings"`
	CommonSettings           `json:",inline" yaml:",inline"`
}

func (r *RuntimeSettings) deepCopy() *RuntimeSettings {
	if r == nil {
		return nil
	}
	out := *r
	out.CommonSettings = r.CommonSettings.deepCopy()
	return &out
}

func (r *RuntimeSettings) branch(os OS) (Branch, bool) {
	if r == nil {
		return Branch{}, false
	}
	b := r.CommonSettings.branch(os, r.RuntimeVersion)
	b.GitHubActionSupported = r.GitHubActionSettings.IsSupported
	return b, true
}

// WebAppRuntimes is the settings variant of web-app runtime stacks.
type WebAppRuntimes struct {
	LinuxRuntimeSettings   *RuntimeSettings `json:"linuxRuntimeSettings,omitempty" yaml:"linuxRuntimeSettings,omitempty" validate:"required_without=WindowsRuntimeSettings"`
	WindowsRuntimeSettings *RuntimeSettings `json:"windowsRuntimeSettings,omitempty" yaml:"windowsRuntimeSettings,omitempty" validate:"required_without=LinuxRuntimeSettings"`
}

// Branch returns the runtime settings populated for os.
func (w *WebAppRuntimes) Branch(os OS) (Branch, bool) {
	if w == nil {
		return Branch{}, false
	}
	switch os {
	case OSLinux:
		return w.LinuxRuntimeSettings.branch(os)
	case OSWindows:
		return w.WindowsRuntimeSettings.branch(os)
	default:
		return Branch{}, false
	}
}

// Clear removes the runtime settings for os.
func (w *WebAppRuntimes) Clear(os OS) {
	if w == nil {
		return
	}
	switch os {
	case OSLinux:
		w.LinuxRuntimeSettings = nil
	case OSWindows:
		w.WindowsRuntimeSettings = nil
	}
}

// DeepCopy returns an independent copy.
func (w *WebAppRuntimes) DeepCopy() *WebAppRuntimes {
	if w == nil {
		return nil
	}
	return &WebAppRuntimes{
		LinuxRuntimeSettings:   w.LinuxRuntimeSettings.deepCopy(),
		WindowsRuntimeSettings: w.WindowsRuntimeSettings.deepCopy(),
	}
}

// LinuxJavaContainerSettings describes the Java runtimes available for a
// Linux Java container version.
type LinuxJavaContainerSettings struct {
	Java11Runtime  string `json:"java11Runtime,omitempty" yaml:"java11Runtime,omitempty" validate:"required_without=Java8Runtime"`
	Java8Runtime   string `json:"java8Runtime,omitempty" yaml:"java8Runtime,omitempty" validate:"required_without=Java11Runtime"`
	CommonSettings `json:",inline" yaml:",inline"`
}

// WindowsJavaContainerSettings names a Windows Java container and its version.
type WindowsJavaContainerSettings struct {
	JavaContainer        string `json:"javaContainer" yaml:"javaContainer" validate:"required"`
	JavaContainerVersion string `json:"javaContainerVersion" yaml:"javaContainerVersion" validate:"required"`
	CommonSettings       `json:",inline" yaml:",inline"`
}

// JavaContainers is the settings variant of web-app Java container stacks.
type JavaContainers struct {
	LinuxContainerSettings   *LinuxJavaContainerSettings   `json:"linuxContainerSettings,omitempty" yaml:"linuxContainerSettings,omitempty" validate:"required_without=WindowsContainerSettings"`
	WindowsContainerSettings *WindowsJavaContainerSettings `json:"windowsContainerSettings,omitempty" yaml:"windowsContainerSettings,omitempty" validate:"required_without=LinuxContainerSettings"`
}

// Branch returns the container settings populated for os. Containers never
// advertise GitHub Actions support.
func (j *JavaContainers) Branch(os OS) (Branch, bool) {
	if j == nil {
		return Branch{}, false
	}
	switch os {
	case OSLinux:
		s := j.LinuxContainerSettings
		if s == nil {
			return Branch{}, false
		}
		label := s.Java11Runtime
		if label == "" {
			label = s.Java8Runtime
		}
		return s.CommonSettings.branch(os, label), true
	case OSWindows:
		s := j.WindowsContainerSettings
		if s == nil {
			return Branch{}, false
		}
		return s.CommonSettings.branch(os, s.JavaContainer+" "+s.JavaContainerVersion), true
	default:
		return Branch{}, false
	}
}

// Clear removes the container settings for os.
func (j *JavaContainers) Clear(os OS) {
	if j == nil {
		return
	}
	switch os {
	case OSLinux:
		j.LinuxContainerSettings = nil
	case OSWindows:
		j.WindowsContainerSettings = nil
	}
}

// DeepCopy returns an independent copy.
func (j *JavaContainers) DeepCopy() *JavaContainers {
	if j == nil {
		return nil
	}
	out := &JavaContainers{}
	if s := j.LinuxContainerSettings; s != nil {
		c := *s
		c.CommonSettings = s.CommonSettings.deepCopy()
		out.LinuxContainerSettings = &c
	}
	if s := j.WindowsContainerSettings; s != nil {
		c := *s
		c.CommonSettings = s.CommonSettings.deepCopy()
		out.WindowsContainerSettings = &c
	}
	return out
}

// AppSettingsDictionary holds the app settings a function app is created with.
type AppSettingsDictionary struct {
	FunctionsWorkerRuntime    string `json:"FUNCTIONS_WORKER_RUNTIME,omitempty" yaml:"FUNCTIONS_WORKER_RUNTIME,omitempty" validate:"omitempty,oneof=dotnet node python java powershell custom"`
	WebsiteNodeDefaultVersion string `json:"WEBSITE_NODE_DEFAULT_VERSION,omitempty" yaml:"WEBSITE_NODE_DEFAULT_VERSION,omitempty"`
}

// SiteConfigPropertiesDictionary holds the site config a function app is
// created with.
type SiteConfigPropertiesDictionary struct {
	Use32BitWorkerProcess bool   `json:"use32BitWorkerProcess" yaml:"use32BitWorkerProcess"`
	LinuxFxVersion        string `json:"linuxFxVersion,omitempty" yaml:"linuxFxVersion,omitempty"`
	JavaVersion           string `json:"javaVersion,omitempty" yaml:"javaVersion,omitempty"`
	PowerShellVersion     string `json:"powerShellVersion,omitempty" yaml:"powerShellVersion,omitempty"`
}

// FunctionAppRuntimeSettings is the function-app settings record for one OS.
type FunctionAppRuntimeSettings struct {
	RuntimeSettings                     `json:",inline" yaml:",inline"`
	AppSettingsDictionary               AppSettingsDictionary          `json:"appSettingsDictionary" yaml:"appSettingsDictionary"`
	SiteConfigPropertiesDictionary      SiteConfigPropertiesDictionary `json:"siteConfigPropertiesDictionary" yaml:"siteConfigPropertiesDictionary"`
	SupportedFunctionsExtensionVersions []string                       `json:"supportedFunctionsExtensionVersions" yaml:"supportedFunctionsExtensionVersions" validate:"required,min=1,dive,required,startswith=~,extversion"`
}

func (f *FunctionAppRuntimeSettings) deepCopy() *FunctionAppRuntimeSettings {
	if f == nil {
		return nil
	}
	out := *f
	out.CommonSettings = f.CommonSettings.deepCopy()
	out.SupportedFunctionsExtensionVersions = slices.Clone(f.SupportedFunctionsExtensionVersions)
	return &out
}

// FunctionAppRuntimes is the settings variant of function-app stacks.
type FunctionAppRuntimes struct {
	LinuxRuntimeSettings   *FunctionAppRuntimeSettings `json:"linuxRuntimeSettings,omitempty" yaml:"linuxRuntimeSettings,omitempty" validate:"required_without=WindowsRuntimeSettings"`
	WindowsRuntimeSettings *FunctionAppRuntimeSettings `json:"windowsRuntimeSettings,omitempty" yaml:"windowsRuntimeSettings,omitempty" validate:"required_without=LinuxRuntimeSettings"`
}

// Branch returns the runtime settings populated for os.
func (f *FunctionAppRuntimes) Branch(os OS) (Branch, bool) {
	if f == nil {
		return Branch{}, false
	}
	var s *FunctionAppRuntimeSettings
	switch os {
	case OSLinux:
		s = f.LinuxRuntimeSettings
	case OSWindows:
		s = f.WindowsRuntimeSettings
	}
	if s == nil {
		return Branch{}, false
	}
	return s.RuntimeSettings.branch(os)
}

// Clear removes the runtime settings for os.
func (f *FunctionAppRuntimes) Clear(os OS) {
	if f == nil {
		return
	}
	switch os {
	case OSLinux:
		f.LinuxRuntimeSettings = nil
	case OSWindows:
		f.WindowsRuntimeSettings = nil
	}
}

// DeepCopy returns an independent copy.
func (f *FunctionAppRuntimes) DeepCopy() *FunctionAppRuntimes {
	if f == nil {
		return nil
	}
	return &FunctionAppRuntimes{
		LinuxRuntimeSettings:   f.LinuxRuntimeSettings.deepCopy(),
		WindowsRuntimeSettings: f.WindowsRuntimeSettings.deepCopy(),
	}
}
