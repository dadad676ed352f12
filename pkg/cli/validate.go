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
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/stefanushinardi/azure-functions-ux/pkg/catalog"
	"github.com/stefanushinardi/azure-functions-ux/pkg/serializer"
	"github.com/stefanushinardi/azure-functions-ux/pkg/stacks"
)

// familyCount is the size of one stack family in one generation.
type familyCount struct {
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`
	Family     string `json:"family" yaml:"family"`
	Stacks     int    `json:"stacks" yaml:"stacks"`
	Versions   int    `json:"versions" yaml:"versions"`
}

// catalogSummary reports what a catalog source contains.
type catalogSummary struct {
	Source   string        `json:"source" yaml:"source"`
	Families []familyCount `json:"families" yaml:"families"`
}

func (s catalogSummary) TableHeader() []string {
	return []string{"API VERSION", "FAMILY", "STACKS", "VERSIONS"}
}

func (s catalogSummary) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Families))
	for _, f := range s.Families {
		rows = append(rows, []string{f.APIVersion, f.Family, strconv.Itoa(f.Stacks), strconv.Itoa(f.Versions)})
	}
	return rows
}

func summarize(store *catalog.Store) catalogSummary {
	s := catalogSummary{Source: store.Catalog().Metadata[catalog.MetadataSource]}

	if g := store.Generation20200501(); g != nil {
		configVersions := 0
		configStacks := g.WebAppConfigStacks.List("")
		for _, cs := range configStacks {
			configVersions += len(cs.Properties.MajorVersions)
		}
		s.Families = append(s.Families,
			familyCount{stacks.APIVersion20200501, catalog.EndpointWebAppCreateStacks,
				len(g.WebAppCreateStacks), g.WebAppCreateStacks.PlatformCount()},
			familyCount{stacks.APIVersion20200501, catalog.EndpointWebAppConfigStacks,
				len(configStacks), configVersions},
			familyCount{stacks.APIVersion20200501, catalog.EndpointFunctionAppStacks,
				len(g.FunctionAppStacks), g.FunctionAppStacks.PlatformCount()},
		)
	}

	if g := store.Generation20200601(); g != nil {
		s.Families = append(s.Families,
			familyCount{stacks.APIVersion20200601, "webAppRuntimeStacks",
				len(g.WebAppRuntimeStacks), g.WebAppRuntimeStacks.MinorVersionCount()},
			familyCount{stacks.APIVersion20200601, "webAppContainerStacks",
				len(g.WebAppContainerStacks), g.WebAppContainerStacks.MinorVersionCount()},
			familyCount{stacks.APIVersion20200601, catalog.EndpointFunctionAppStacks,
				len(g.FunctionAppStacks), g.FunctionAppStacks.MinorVersionCount()},
		)
	}

	return s
}

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Load and validate a catalog source",
		Description: `Loads the catalog named by --catalog, runs the same validation stacksd runs
at startup and prints the number of stacks and versions in every family.

A non-zero exit status means stacksd would refuse to start with this source.

# Examples

Validate a directory of generation files:
  stacks --catalog ./data validate

Validate an exported document stored in a ConfigMap:
  stacks --catalog cm://stacks/catalog validate --format json`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(serializer.FormatTable),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			store, err := loadStore(ctx, cmd)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, format, summarize(store))
		},
	}
}
