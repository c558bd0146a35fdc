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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/config"
	"github.com/NVIDIA/backbar/pkg/header"
	"github.com/NVIDIA/backbar/pkg/optimizer"
	"github.com/NVIDIA/backbar/pkg/pbsolver"
)

// sweepAction solves every bottle count of the configured range.
func sweepAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFromCmd(cmd)
	if err != nil {
		return err
	}
	return runSweep(ctx, cmd, cfg)
}

// runSweep loads the drinks and solves cfg's range. Text output is written as
// each count is solved; structured output is written once at the end.
func runSweep(ctx context.Context, cmd *cli.Command, cfg *config.Config, extra ...optimizer.Option) error {
	drinks, err := loadDrinks(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	opts := append(cfg.DriverOptions(), extra...)
	text := cfg.OutputFormat() == config.FormatText
	if text {
		opts = append(opts, optimizer.WithReporter(optimizer.NewTextReporter(w)))
	}

	sweep, err := optimizer.NewDriver(pbsolver.New(), opts...).Sweep(ctx, drinks)
	if err != nil {
		return err
	}

	slog.Info("sweep complete",
		"run-id", sweep.Get(header.MetadataRunID),
		"counts", len(sweep.Solutions),
		"drinks", len(drinks))

	if !text {
		if err := writeStructured(ctx, w, cfg, sweep); err != nil {
			return err
		}
	}

	return writeMetrics(cfg)
}
