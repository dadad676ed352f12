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

package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/catalog"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

func queryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "query",
		EnableShellCompletion: true,
		Usage:                 "Query a stacks endpoint without running the server",
		ArgsUsage:             "<endpoint>",
		Description: fmt.Sprintf(`Runs a catalog query the same way stacksd answers it over HTTP and
prints the filtered stacks.

Endpoints: %s

When --api-version is omitted the latest version accepted by the endpoint is
used. --method is only needed to pick between endpoints served under the same
name with different methods, e.g. functionAppStacks.

# Examples

Visible Python function stacks on Linux:
  stacks query functionAppStacks --os linux --stack python --remove-hidden-stacks

Web app stacks on Windows as a tree:
  stacks query webAppStacks --os windows --format tree

Legacy create stacks written to a ConfigMap:
  stacks query webAppCreateStacks --api-version 2020-05-01 -o cm://stacks/create`,
			strings.Join(endpointNames(), ", ")),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "method",
				Usage: "HTTP method of the endpoint (GET or POST)",
			},
			&cli.StringFlag{
				Name:  stacks.QueryParamAPIVersion,
				Usage: fmt.Sprintf("API version (supported: %s)", strings.Join(stacks.SupportedAPIVersions, ", ")),
			},
			&cli.StringFlag{
				Name:  stacks.QueryParamOS,
				Usage: fmt.Sprintf("Operating system (supported: %s)", strings.Join(stacks.SupportedOSValues(), ", ")),
			},
			&cli.StringFlag{
				Name:  stacks.QueryParamStack,
				Usage: "Stack value, e.g. python or dotnetCore",
			},
			&cli.BoolFlag{
				Name:  "remove-hidden-stacks",
				Usage: "Drop branches marked hidden",
			},
			outputFlag(),
			formatFlag(serializer.FormatJSON),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			req := catalog.Request{
				APIVersion: cmd.String(stacks.QueryParamAPIVersion),
				OS:         cmd.String(stacks.QueryParamOS),
				Stack:      cmd.String(stacks.QueryParamStack),
			}
			if cmd.IsSet("remove-hidden-stacks") {
				req.RemoveHiddenStacks = strconv.FormatBool(cmd.Bool("remove-hidden-stacks"))
			}

			op, err := resolveOperation(cmd.Args().First(), cmd.String("method"), req.APIVersion)
			if err != nil {
				return err
			}
			if req.APIVersion == "" {
				req.APIVersion = op.Versions[len(op.Versions)-1]
			}

			store, err := loadStore(ctx, cmd)
			if err != nil {
				return err
			}

			result, err := store.Execute(ctx, op, req)
			if err != nil {
				return fmt.Errorf("query %s failed: %w", op.Name, err)
			}

			return writeOutput(ctx, cmd, format, result)
		},
	}
}

// resolveOperation picks the operation for an endpoint name. An explicit
// method wins, then the operation accepting apiVersion, then the operation
// with the latest api-version.
func resolveOperation(endpoint, method, apiVersion string) (catalog.Operation, error) {
	if endpoint == "" {
		return catalog.Operation{}, fmt.Errorf("endpoint is required (one of: %s)", strings.Join(endpointNames(), ", "))
	}

	ops := catalog.OperationsNamed(endpoint)
	if len(ops) == 0 {
		return catalog.Operation{}, fmt.Errorf("unknown endpoint %q (one of: %s)", endpoint, strings.Join(endpointNames(), ", "))
	}

	if method != "" {
		op, ok := catalog.FindOperation(endpoint, strings.ToUpper(method))
		if !ok {
			return catalog.Operation{}, fmt.Errorf("endpoint %s does not accept method %s", endpoint, strings.ToUpper(method))
		}
		return op, nil
	}

	if apiVersion != "" {
		for _, op := range ops {
			if slices.Contains(op.Versions, apiVersion) {
				return op, nil
			}
		}
	}

	return slices.MaxFunc(ops, func(a, b catalog.Operation) int {
		return strings.Compare(a.Versions[len(a.Versions)-1], b.Versions[len(b.Versions)-1])
	}), nil
}

// endpointNames returns the distinct endpoint names in declaration order.
func endpointNames() []string {
	var names []string
	for _, op := range catalog.Operations() {
		if !slices.Contains(names, op.Name) {
			names = append(names, op.Name)
		}
	}
	return names
}
