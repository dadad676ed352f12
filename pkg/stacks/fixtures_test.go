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
	"time"
)

func fnSettings(runtime string, common CommonSettings, extVersions ...string) *FunctionAppRuntimeSettings {
	if len(extVersions) == 0 {
		extVersions = []string{"~4", "~3"}
	}
	return &FunctionAppRuntimeSettings{
		RuntimeSettings: RuntimeSettings{
			RuntimeVersion:       runtime,
			AppInsightsSettings:  AppInsightsSettings{IsSupported: true},
			GitHubActionSettings: GitHubActionSettings{IsSupported: true},
			CommonSettings:       common,
		},
		SupportedFunctionsExtensionVersions: extVersions,
	}
}

func fnMinor(value string, linux, windows *FunctionAppRuntimeSettings) MinorVersion[*FunctionAppRuntimes] {
	return MinorVersion[*FunctionAppRuntimes]{
		DisplayText: value,
		Value:       value,
		StackSettings: &FunctionAppRuntimes{
			LinuxRuntimeSettings:   linux,
			WindowsRuntimeSettings: windows,
		},
	}
}

// functionAppFixture returns a small function-app catalog: python is
// linux-only with a deprecated 3.6, dotnetCore spans both OSes with a hidden
// windows 2.2 and powershell is windows-only and entirely hidden.
func functionAppFixture() Stacks[*FunctionAppRuntimes] {
	eol := time.Date(2022, 1, 23, 0, 0, 0, 0, time.UTC)
	return Stacks[*FunctionAppRuntimes]{
		{
			DisplayText: ".NET Core",
			Value:       "dotnetCore",
			MajorVersions: []MajorVersion[*FunctionAppRuntimes]{
				{
					DisplayText: ".NET Core 3",
					Value:       "3",
					MinorVersions: []MinorVersion[*FunctionAppRuntimes]{
						fnMinor("3.1", fnSettings("dotnet|3.1", CommonSettings{}), fnSettings("3.1", CommonSettings{})),
					},
				},
				{
					DisplayText: ".NET Core 2",
					Value:       "2",
					MinorVersions: []MinorVersion[*FunctionAppRuntimes]{
						fnMinor("2.2", fnSettings("dotnet|2.2", CommonSettings{}), fnSettings("2.2", CommonSettings{IsHidden: true})),
					},
				},
			},
		},
		{
			DisplayText: "Python",
			Value:       "python",
			PreferredOS: OSLinux,
			MajorVersions: []MajorVersion[*FunctionAppRuntimes]{
				{
					DisplayText: "Python 3",
					Value:       "3",
					MinorVersions: []MinorVersion[*FunctionAppRuntimes]{
						fnMinor("3.9", fnSettings("Python|3.9", CommonSettings{}), nil),
						fnMinor("3.8", fnSettings("Python|3.8", CommonSettings{}), nil),
						fnMinor("3.7", fnSettings("Python|3.7", CommonSettings{}, "~4", "~3", "~2"), nil),
						fnMinor("3.6", fnSettings("Python|3.6", CommonSettings{IsDeprecated: true, EndOfLifeDate: &eol}, "~3", "~2"), nil),
					},
				},
			},
		},
		{
			DisplayText: "PowerShell Core",
			Value:       "powershell",
			MajorVersions: []MajorVersion[*FunctionAppRuntimes]{
				{
					DisplayText: "PowerShell 6",
					Value:       "6",
					MinorVersions: []MinorVersion[*FunctionAppRuntimes]{
						fnMinor("6.2", nil, fnSettings("~6", CommonSettings{IsHidden: true})),
					},
				},
			},
		},
	}
}

// containerFixture returns java container stacks where the JBoss stack is
// windows-only.
func containerFixture() Stacks[*JavaContainers] {
	return Stacks[*JavaContainers]{
		{
			DisplayText: "Tomcat",
			Value:       "tomcat",
			MajorVersions: []MajorVersion[*JavaContainers]{
				{
					DisplayText: "Tomcat 9.0",
					Value:       "9.0",
					MinorVersions: []MinorVersion[*JavaContainers]{
						{
							DisplayText: "Tomcat 9.0",
							Value:       "9.0",
							StackSettings: &JavaContainers{
								LinuxContainerSettings:   &LinuxJavaContainerSettings{Java11Runtime: "TOMCAT|9.0-java11", Java8Runtime: "TOMCAT|9.0-jre8"},
								WindowsContainerSettings: &WindowsJavaContainerSettings{JavaContainer: "TOMCAT", JavaContainerVersion: "9.0"},
							},
						},
					},
				},
			},
		},
		{
			DisplayText: "JBoss EAP",
			Value:       "jbosseap",
			MajorVersions: []MajorVersion[*JavaContainers]{
				{
					DisplayText: "JBoss EAP 7",
					Value:       "7",
					MinorVersions: []MinorVersion[*JavaContainers]{
						{
							DisplayText: "JBoss EAP 7.2",
							Value:       "7.2",
							StackSettings: &JavaContainers{
								WindowsContainerSettings: &WindowsJavaContainerSettings{JavaContainer: "JBOSS", JavaContainerVersion: "7.2"},
							},
						},
					},
				},
			},
		},
	}
}

func createPlatform(os OS, runtime string, hidden bool, gh *PlatformGitHubActionSettings) *WebAppCreatePlatform {
	return &WebAppCreatePlatform{
		OS:                   os,
		RuntimeVersion:       runtime,
		IsHidden:             hidden,
		GitHubActionSettings: gh,
	}
}

// createFixture returns 2020-05-01 create stacks: node has GitHub Actions
// on linux only and ruby is linux-only without GitHub Actions.
func createFixture() PlatformStacks[*WebAppCreatePlatform] {
	return PlatformStacks[*WebAppCreatePlatform]{
		{
			DisplayText: "Node.js",
			Value:       "Node.js",
			Versions: []PlatformVersion[*WebAppCreatePlatform]{
				{
					DisplayText: "Node.js 12 LTS",
					Value:       "12-LTS",
					SupportedPlatforms: []*WebAppCreatePlatform{
						createPlatform(OSLinux, "NODE|12-lts", false, &PlatformGitHubActionSettings{Supported: true, RecommendedVersion: "12.x"}),
						createPlatform(OSWindows, "12.13.0", false, nil),
					},
				},
				{
					DisplayText: "Node.js 8 LTS",
					Value:       "8-LTS",
					SupportedPlatforms: []*WebAppCreatePlatform{
						createPlatform(OSWindows, "8.11", true, nil),
					},
				},
			},
		},
		{
			DisplayText: "Ruby",
			Value:       "Ruby",
			Versions: []PlatformVersion[*WebAppCreatePlatform]{
				{
					DisplayText: "Ruby 2.6",
					Value:       "2.6",
					SupportedPlatforms: []*WebAppCreatePlatform{
						createPlatform(OSLinux, "RUBY|2.6", false, &PlatformGitHubActionSettings{Supported: false}),
					},
				},
			},
		},
	}
}

func minorValues[S Settings[S]](s Stacks[S], stack, major string) []string {
	st, ok := s.Find(stack)
	if !ok {
		return nil
	}
	for _, m := range st.MajorVersions {
		if m.Value != major {
			continue
		}
		out := make([]string, 0, len(m.MinorVersions))
		for _, mi := range m.MinorVersions {
			out = append(out, mi.Value)
		}
		return out
	}
	return nil
}
