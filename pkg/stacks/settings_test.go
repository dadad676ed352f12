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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFunctionAppRuntimesDeepCopy(t *testing.T) {
	eol := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	orig := &FunctionAppRuntimes{
		LinuxRuntimeSettings: fnSettings("Python|3.9", CommonSettings{EndOfLifeDate: &eol}),
	}

	cp := orig.DeepCopy()
	require.Equal(t, orig, cp)

	cp.LinuxRuntimeSettings.SupportedFunctionsExtensionVersions[0] = "~1"
	*cp.LinuxRuntimeSettings.EndOfLifeDate = eol.AddDate(1, 0, 0)
	cp.Clear(OSLinux)

	require.NotNil(t, orig.LinuxRuntimeSettings)
	assert.Equal(t, "~4", orig.LinuxRuntimeSettings.SupportedFunctionsExtensionVersions[0])
	assert.Equal(t, eol, *orig.LinuxRuntimeSettings.EndOfLifeDate)
}

func TestSettingsNilSafe(t *testing.T) {
	var w *WebAppRuntimes
	_, ok := w.Branch(OSLinux)
	assert.False(t, ok)
	w.Clear(OSLinux)
	assert.Nil(t, w.DeepCopy())

	var j *JavaContainers
	_, ok = j.Branch(OSWindows)
	assert.False(t, ok)
	assert.Nil(t, j.DeepCopy())

	var f *FunctionAppRuntimes
	_, ok = f.Branch(OSLinux)
	assert.False(t, ok)
	assert.Nil(t, f.DeepCopy())
}

func TestBranchView(t *testing.T) {
	w := &WebAppRuntimes{
		WindowsRuntimeSettings: &RuntimeSettings{
			RuntimeVersion:       "v4.8",
			GitHubActionSettings: GitHubActionSettings{IsSupported: true},
			CommonSettings:       CommonSettings{IsHidden: true, IsPreview: true},
		},
	}

	_, ok := w.Branch(OSLinux)
	assert.False(t, ok)

	b, ok := w.Branch(OSWindows)
	require.True(t, ok)
	assert.Equal(t, Branch{
		OS:                    OSWindows,
		Label:                 "v4.8",
		Hidden:                true,
		Preview:               true,
		GitHubActionSupported: true,
	}, b)

	assert.Len(t, Branches(w), 1)
}

func TestFunctionAppSettingsJSON(t *testing.T) {
	s := &FunctionAppRuntimes{
		LinuxRuntimeSettings: &FunctionAppRuntimeSettings{
			RuntimeSettings: RuntimeSettings{
				RuntimeVersion:      "Python|3.6",
				AppInsightsSettings: AppInsightsSettings{IsSupported: true},
				CommonSettings:      CommonSettings{IsDeprecated: true},
			},
			AppSettingsDictionary:               AppSettingsDictionary{FunctionsWorkerRuntime: "python"},
			SiteConfigPropertiesDictionary:      SiteConfigPropertiesDictionary{LinuxFxVersion: "Python|3.6"},
			SupportedFunctionsExtensionVersions: []string{"~2", "~3"},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	linux := raw["linuxRuntimeSettings"]
	require.NotNil(t, linux)
	assert.NotContains(t, raw, "windowsRuntimeSettings")
	assert.Equal(t, "Python|3.6", linux["runtimeVersion"])
	assert.Equal(t, true, linux["isDeprecated"])
	assert.NotContains(t, linux, "isHidden")
	assert.NotContains(t, linux, "CommonSettings")
	assert.Equal(t, map[string]any{"FUNCTIONS_WORKER_RUNTIME": "python"}, linux["appSettingsDictionary"])
	assert.Equal(t, []any{"~2", "~3"}, linux["supportedFunctionsExtensionVersions"])
}

func TestFunctionAppSettingsYAML(t *testing.T) {
	doc := `
linuxRuntimeSettings:
  runtimeVersion: Python|3.6
  remoteDebuggingSupported: false
  isDeprecated: true
  endOfLifeDate: 2022-01-23T00:00:00Z
  appInsightsSettings:
    isSupported: true
  gitHubActionSettings:
    isSupported: true
    supportedVersion: "3.6"
  appSettingsDictionary:
    FUNCTIONS_WORKER_RUNTIME: python
  siteConfigPropertiesDictionary:
    use32BitWorkerProcess: false
    linuxFxVersion: Python|3.6
  supportedFunctionsExtensionVersions: ["~2", "~3"]
`
	var s FunctionAppRuntimes
	require.NoError(t, yaml.Unmarshal([]byte(doc), &s))

	require.NotNil(t, s.LinuxRuntimeSettings)
	assert.Nil(t, s.WindowsRuntimeSettings)
	assert.True(t, s.LinuxRuntimeSettings.IsDeprecated)
	assert.Equal(t, "3.6", s.LinuxRuntimeSettings.GitHubActionSettings.SupportedVersion)
	require.NotNil(t, s.LinuxRuntimeSettings.EndOfLifeDate)
	assert.Equal(t, time.Date(2022, 1, 23, 0, 0, 0, 0, time.UTC), s.LinuxRuntimeSettings.EndOfLifeDate.UTC())
}
