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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/optimizer"
)

const flagCount = "count"

func solveCmd() *cli.Command {
	return &cli.Command{
		Name:  "solve",
		Usage: "Find the best purchase set for a single bottle count",
		Description: `Solve one bottle count instead of the whole range:

  backbar solve --count 12

Structured output (--format json|yaml) is a sweep result holding one solution
and can be re-rendered with the report command.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     flagCount,
				Aliases:  []string{"n"},
				Required: true,
				Usage:    "Number of bottles to buy",
				Sources:  envVar(flagCount),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCmd(cmd)
			if err != nil {
				return err
			}

			count := cmd.Int(flagCount)
			if count < 0 {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("count cannot be negative: %d", count),
					map[string]any{"count": count})
			}

			return runSweep(ctx, cmd, cfg,
				optimizer.WithRange(optimizer.Range{Min: count, Max: count + 1, Step: 1}))
		},
	}
}
