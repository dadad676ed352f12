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

package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// catalogValidator returns the shared validator with the catalog's custom tags.
func catalogValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		// extversion accepts functions host ranges such as ~4
		if err := v.RegisterValidation("extversion", isExtensionVersion); err != nil {
			panic(fmt.Sprintf("register extversion validation: %v", err))
		}
		validate = v
	})
	return validate
}

func isExtensionVersion(fl validator.FieldLevel) bool {
	_, err := semver.NewConstraint(fl.Field().String())
	return err == nil
}

// maxReportedViolations bounds the violations listed in an error context.
const maxReportedViolations = 10

// validateStruct checks v against its validate tags and wraps any violation
// in an INTERNAL error listing the offending fields.
func validateStruct(name string, v any) error {
	err := catalogValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return stackerrors.Wrap(stackerrors.ErrCodeInternal, fmt.Sprintf("%s validation failed", name), err)
	}

	violations := make([]string, 0, min(len(fieldErrs), maxReportedViolations))
	for i, fe := range fieldErrs {
		if i == maxReportedViolations {
			break
		}
		violations = append(violations, describe(fe))
	}
	return stackerrors.WrapWithContext(stackerrors.ErrCodeInternal,
		fmt.Sprintf("%s validation failed with %d violation(s)", name, len(fieldErrs)), err,
		map[string]any{"violations": violations})
}

func describe(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s (value %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: failed %s (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
