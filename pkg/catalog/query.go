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
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	stackerrors "github.com/stefanushinardi/azure-functions-ux/pkg/errors"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

// PathPrefix is the URL path under which every endpoint is served.
const PathPrefix = "/stacks/"

// Endpoint names.
const (
	EndpointWebAppCreateStacks       = "webAppCreateStacks"
	EndpointWebAppConfigStacks       = "webAppConfigStacks"
	EndpointWebAppGitHubActionStacks = "webAppGitHubActionStacks"
	EndpointFunctionAppStacks        = "functionAppStacks"
	EndpointWebAppStacks             = "webAppStacks"
)

// Request holds the raw query parameters of a catalog query. Values are
// validated by Execute, never by the caller.
type Request struct {
	APIVersion         string
	OS                 string
	Stack              string
	RemoveHiddenStacks string
}

// RequestFromValues extracts a Request from URL query values.
func RequestFromValues(v url.Values) Request {
	return Request{
		APIVersion:         v.Get(stacks.QueryParamAPIVersion),
		OS:                 v.Get(stacks.QueryParamOS),
		Stack:              v.Get(stacks.QueryParamStack),
		RemoveHiddenStacks: v.Get(stacks.QueryParamRemoveHiddenStacks),
	}
}

// Operation is one catalog endpoint bound to an HTTP method.
type Operation struct {
	// Name is the endpoint name, e.g. functionAppStacks.
	Name string
	// Method is the HTTP method the operation answers.
	Method string
	// Versions lists the accepted api-version values.
	Versions []string
	// Params lists the optional query parameters the operation honors.
	// Other parameters are ignored.
	Params []string

	run func(c *stacksView, f stacks.Filter) (result any, count int)
}

// stacksView gives operations read access to the shared trees. Operations
// must copy before pruning.
type stacksView struct {
	v20200501 *stacks.Generation20200501
	v20200601 *stacks.Generation20200601
}

// Path returns the URL path of the operation.
func (o Operation) Path() string {
	return PathPrefix + o.Name
}

// Accepts reports whether the operation honors the query parameter.
func (o Operation) Accepts(param string) bool {
	return slices.Contains(o.Params, param)
}

var operations = []Operation{
	{
		Name:     EndpointWebAppCreateStacks,
		Method:   http.MethodPost,
		Versions: []string{stacks.APIVersion20200501},
		Params:   []string{stacks.QueryParamOS},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			out := stacks.PrunePlatforms(c.v20200501.WebAppCreateStacks.DeepCopy(), f)
			return out, out.PlatformCount()
		},
	},
	{
		Name:     EndpointWebAppConfigStacks,
		Method:   http.MethodPost,
		Versions: []string{stacks.APIVersion20200501},
		Params:   []string{stacks.QueryParamOS},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			out := c.v20200501.WebAppConfigStacks.List(f.OS)
			return out, len(out)
		},
	},
	{
		Name:     EndpointWebAppGitHubActionStacks,
		Method:   http.MethodPost,
		Versions: []string{stacks.APIVersion20200501},
		Params:   []string{stacks.QueryParamOS},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			f.GitHubActionsOnly = true
			out := stacks.PrunePlatforms(c.v20200501.WebAppCreateStacks.DeepCopy(), f)
			return out, out.PlatformCount()
		},
	},
	{
		Name:     EndpointFunctionAppStacks,
		Method:   http.MethodPost,
		Versions: []string{stacks.APIVersion20200501},
		Params:   []string{stacks.QueryParamRemoveHiddenStacks},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			out := stacks.PrunePlatforms(c.v20200501.FunctionAppStacks.DeepCopy(), f)
			return out, out.PlatformCount()
		},
	},
	{
		Name:     EndpointFunctionAppStacks,
		Method:   http.MethodGet,
		Versions: []string{stacks.APIVersion20200601},
		Params:   []string{stacks.QueryParamOS, stacks.QueryParamStack, stacks.QueryParamRemoveHiddenStacks},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			out := stacks.Prune(c.v20200601.FunctionAppStacks.DeepCopy(), f)
			return out, out.MinorVersionCount()
		},
	},
	{
		Name:     EndpointWebAppStacks,
		Method:   http.MethodGet,
		Versions: []string{stacks.APIVersion20200601},
		Params:   []string{stacks.QueryParamOS},
		run: func(c *stacksView, f stacks.Filter) (any, int) {
			out := stacks.PruneWebApp(c.v20200601.WebAppStacks().DeepCopy(), f)
			return out, out.Runtimes.MinorVersionCount() + out.Containers.MinorVersionCount()
		},
	},
}

// Operations returns every catalog operation in registration order.
func Operations() []Operation {
	return slices.Clone(operations)
}

// OperationsNamed returns the operations served under the endpoint name.
func OperationsNamed(name string) []Operation {
	var out []Operation
	for _, op := range operations {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// FindOperation returns the operation for the endpoint name and method.
func FindOperation(name, method string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name && op.Method == method {
			return op, true
		}
	}
	return Operation{}, false
}

// Filter validates the request against the operation and returns the filter
// it selects. Parameters are checked in the order api-version, os, stack,
// removeHiddenStacks and the first failure is returned.
func (o Operation) Filter(req Request) (stacks.Filter, error) {
	var f stacks.Filter
	if err := stacks.ValidateAPIVersion(req.APIVersion, o.Versions); err != nil {
		return f, err
	}
	if o.Accepts(stacks.QueryParamOS) {
		os, err := stacks.ParseOS(req.OS)
		if err != nil {
			return f, err
		}
		f.OS = os
	}
	if o.Accepts(stacks.QueryParamStack) {
		sv, err := stacks.ParseStackValue(req.Stack)
		if err != nil {
			return f, err
		}
		f.StackValue = sv.String()
	}
	if o.Accepts(stacks.QueryParamRemoveHiddenStacks) {
		rh, err := stacks.ParseRemoveHidden(req.RemoveHiddenStacks)
		if err != nil {
			return f, err
		}
		f.RemoveHidden = rh
	}
	return f, nil
}

// Execute validates req, copies the requested trees and prunes them. The
// result is JSON-ready and owned by the caller.
func (s *Store) Execute(ctx context.Context, op Operation, req Request) (result any, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			queryErrors.WithLabelValues(op.Name, string(stackerrors.CodeOf(err))).Inc()
		}
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, stackerrors.Wrap(stackerrors.ErrCodeTimeout, "catalog query canceled", ctxErr)
	}
	if op.run == nil {
		return nil, stackerrors.NewWithContext(stackerrors.ErrCodeNotFound,
			fmt.Sprintf("unknown stacks endpoint %q", op.Name), map[string]any{"endpoint": op.Name})
	}

	f, err := op.Filter(req)
	if err != nil {
		return nil, err
	}
	if !s.HasVersion(req.APIVersion) {
		return nil, stackerrors.NewWithContext(stackerrors.ErrCodeUnavailable,
			fmt.Sprintf("API version %s is not loaded", req.APIVersion),
			map[string]any{"endpoint": op.Name, "version": req.APIVersion})
	}

	result, n := op.run(&stacksView{v20200501: s.catalog.V20200501, v20200601: s.catalog.V20200601}, f)

	queryDuration.WithLabelValues(op.Name, req.APIVersion).Observe(time.Since(start).Seconds())
	queryResultSize.WithLabelValues(op.Name).Observe(float64(n))
	slog.Debug("catalog query",
		"endpoint", op.Name,
		"method", op.Method,
		"apiVersion", req.APIVersion,
		"filter", f.String(),
		"results", n,
	)
	return result, nil
}
