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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/config"
	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/optimizer"
)

// envPrefix prefixes the environment variable of every flag.
const envPrefix = "BACKBAR_"

func envVar(flag string) cli.ValueSourceChain {
	return cli.EnvVars(envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_")))
}

// Flag names. Flags are defined on the root command and apply to every subcommand.
const (
	flagConfig         = "config"
	flagLogLevel       = "log-level"
	flagMetadata       = "metadata"
	flagDrinks         = "drinks"
	flagSnapshot       = "snapshot"
	flagSnapshotFormat = "snapshot-format"
	flagFromSnapshot   = "from-snapshot"
	flagMin            = "min"
	flagMax            = "max"
	flagStep           = "step"
	flagLink           = "link"
	flagTimeout        = "timeout"
	flagParallel       = "parallel"
	flagOutput         = "output"
	flagFormat         = "format"
	flagMetricsFile    = "metrics-file"
)

// rootFlags returns fresh flag definitions for the root command.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "YAML config file; flags override its values",
			Sources: envVar(flagConfig),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Value:   defaults.LogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Sources: envVar(flagLogLevel),
		},
		&cli.StringFlag{
			Name:    flagMetadata,
			Aliases: []string{"m"},
			Value:   catalog.DefaultMetadataPath,
			Usage:   "Ingredient metadata table (columns: ingredient, bottle, recipe, price)",
			Sources: envVar(flagMetadata),
		},
		&cli.StringFlag{
			Name:    flagDrinks,
			Aliases: []string{"d"},
			Value:   catalog.DefaultDrinksPath,
			Usage:   "Drink table (columns: Drink Name, Page, Ingredient)",
			Sources: envVar(flagDrinks),
		},
		&cli.StringFlag{
			Name:    flagSnapshot,
			Value:   catalog.DefaultSnapshotPath,
			Usage:   "File that receives the loaded drink list; empty disables it",
			Sources: envVar(flagSnapshot),
		},
		&cli.StringFlag{
			Name:    flagSnapshotFormat,
			Value:   "json",
			Usage:   "Drink list format (json, yaml)",
			Sources: envVar(flagSnapshotFormat),
		},
		&cli.StringFlag{
			Name:    flagFromSnapshot,
			Usage:   "Read drinks from a previously written drink list instead of the tables",
			Sources: envVar(flagFromSnapshot),
		},
		&cli.IntFlag{
			Name:    flagMin,
			Value:   optimizer.DefaultRange().Min,
			Usage:   "First bottle count",
			Sources: envVar(flagMin),
		},
		&cli.IntFlag{
			Name:    flagMax,
			Value:   optimizer.DefaultRange().Max,
			Usage:   "Bottle count at which the sweep stops (exclusive)",
			Sources: envVar(flagMax),
		},
		&cli.IntFlag{
			Name:    flagStep,
			Value:   optimizer.DefaultRange().Step,
			Usage:   "Increment between bottle counts",
			Sources: envVar(flagStep),
		},
		&cli.StringFlag{
			Name:  flagLink,
			Value: string(optimizer.LinkEquivalence),
			Usage: fmt.Sprintf("How drinks are tied to their bottles: %q counts a drink whenever its bottles are bought, %q only forbids counting drinks that lack a bottle",
				optimizer.LinkEquivalence, optimizer.LinkImplication),
			Sources: envVar(flagLink),
		},
		&cli.DurationFlag{
			Name:    flagTimeout,
			Usage:   "Time limit per bottle count (e.g. 30s); the best purchase set found is reported as FEASIBLE. 0 disables it",
			Sources: envVar(flagTimeout),
		},
		&cli.IntFlag{
			Name:    flagParallel,
			Aliases: []string{"p"},
			Value:   defaults.Parallel,
			Usage:   "Number of bottle counts solved at once",
			Sources: envVar(flagParallel),
		},
		&cli.StringFlag{
			Name:    flagOutput,
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
			Sources: envVar(flagOutput),
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"t"},
			Value:   config.FormatText,
			Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(config.SupportedOutputFormats(), ", ")),
			Sources: envVar(flagFormat),
		},
		&cli.StringFlag{
			Name:    flagMetricsFile,
			Usage:   "Write Prometheus metrics to this file after the run",
			Sources: envVar(flagMetricsFile),
		},
	}
}
