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

// OS identifies the operating system a settings branch applies to.
type OS string

const (
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
)

// SupportedOS lists the operating systems in the order their settings
// branches are inspected and rendered.
var SupportedOS = []OS{OSLinux, OSWindows}

// String returns the string representation of the OS.
func (o OS) String() string {
	return string(o)
}

// IsValid returns true if the OS is one of the supported values.
func (o OS) IsValid() bool {
	switch o {
	case OSLinux, OSWindows:
		return true
	default:
		return false
	}
}

// Title returns the display label of the OS, e.g. "Linux".
func (o OS) Title() string {
	if o == "" {
		return ""
	}
	return titleCase(string(o))
}

// SupportedOSValues returns the supported OS values as strings.
func SupportedOSValues() []string {
	out := make([]string, 0, len(SupportedOS))
	for _, o := range SupportedOS {
		out = append(out, o.String())
	}
	return out
}

func quoteJoin(values []string, sep string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+v+"'")
	}
	return strings.Join(quoted, sep)
}
