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
	"strings"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
)

// Query parameter names.
const (
	QueryParamAPIVersion         = "api-version"
	QueryParamOS                 = "os"
	QueryParamStack              = "stack"
	QueryParamRemoveHiddenStacks = "removeHiddenStacks"
)

// StackValue identifies a function-app stack.
type StackValue string

const (
	StackDotnetCore      StackValue = "dotnetCore"
	StackDotnetFramework StackValue = "dotnetFramework"
	StackJava            StackValue = "java"
	StackNode            StackValue = "node"
	StackPowershell      StackValue = "powershell"
	StackPython          StackValue = "python"
	StackCustom          StackValue = "custom"
)

// SupportedStackValues lists the function-app stack identifiers accepted by
// the stack parameter.
var SupportedStackValues = []StackValue{
	StackDotnetCore,
	StackDotnetFramework,
	StackJava,
	StackNode,
	StackPowershell,
	StackPython,
	StackCustom,
}

// String returns the string representation of the stack value.
func (s StackValue) String() string {
	return string(s)
}

// IsValid returns true if the stack value is a supported identifier.
func (s StackValue) IsValid() bool {
	return slices.Contains(SupportedStackValues, s)
}

func invalidParam(param, value, message string) error {
	return stackerrors.NewWithContext(stackerrors.ErrCodeInvalidRequest, message, map[string]any{
		"parameter": param,
		"value":     value,
	})
}

// ValidateAPIVersion checks that v is present and one of allowed.
func ValidateAPIVersion(v string, allowed []string) error {
	list := strings.Join(allowed, ", ")
	if v == "" {
		return invalidParam(QueryParamAPIVersion, v,
			fmt.Sprintf("Missing 'api-version' query parameter. Allowed versions are: %s.", list))
	}
	if !slices.Contains(allowed, v) {
		return invalidParam(QueryParamAPIVersion, v,
			fmt.Sprintf("Incorrect api-version '%s' provided. Allowed versions are: %s.", v, list))
	}
	return nil
}

// ParseOS parses an optional os parameter. Matching is case-sensitive and
// an empty value means no OS restriction.
func ParseOS(v string) (OS, error) {
	if v == "" {
		return "", nil
	}
	o := OS(v)
	if !o.IsValid() {
		return "", invalidParam(QueryParamOS, v,
			fmt.Sprintf("Incorrect os '%s' provided. Allowed os values are %s.", v, quoteJoin(SupportedOSValues(), " or ")))
	}
	return o, nil
}

// ParseStackValue parses an optional stack parameter.
func ParseStackValue(v string) (StackValue, error) {
	if v == "" {
		return "", nil
	}
	s := StackValue(v)
	if !s.IsValid() {
		values := make([]string, 0, len(SupportedStackValues))
		for _, sv := range SupportedStackValues {
			values = append(values, sv.String())
		}
		return "", invalidParam(QueryParamStack, v,
			fmt.Sprintf("Incorrect stack '%s' provided. Allowed stack values are %s.", v, strings.Join(values, ", ")))
	}
	return s, nil
}

// ParseRemoveHidden parses an optional removeHiddenStacks parameter. Only
// "true" and "false" are accepted, in any letter case.
func ParseRemoveHidden(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "":
		return false, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, invalidParam(QueryParamRemoveHiddenStacks, v,
			fmt.Sprintf("Incorrect removeHiddenStacks '%s' provided. Allowed removeHiddenStacks values are 'true' or 'false'.", v))
	}
}
