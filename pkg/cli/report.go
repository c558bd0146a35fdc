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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/config"
	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/header"
	"github.com/NVIDIA/backbar/pkg/optimizer"
	"github.com/NVIDIA/backbar/pkg/serializer"
	ver "github.com/NVIDIA/backbar/pkg/version"
)

const flagInput = "input"

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Render a saved sweep result",
		Description: `Read a sweep result written with --format json or --format yaml and render it
again, for example as text or as a table:

  backbar --format yaml --output sweep.yaml
  backbar report --input sweep.yaml --format table

The file must be a SweepResult written by a compatible backbar release.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagInput,
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Sweep result file (json or yaml)",
				Sources:  envVar(flagInput),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCmd(cmd)
			if err != nil {
				return err
			}

			sweep, err := readSweep(cmd.String(flagInput))
			if err != nil {
				return err
			}

			for _, v := range sweep.MonotonicityViolations() {
				slog.Warn("optimum decreased as bottle count increased",
					"from", v.From,
					"to", v.To,
					"from_drinks", v.FromDrinks,
					"to_drinks", v.ToDrinks)
			}

			w, closeOutput, err := openOutput(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeOutput()

			if cfg.OutputFormat() == config.FormatText {
				return optimizer.WriteSweepText(w, sweep)
			}
			return writeStructured(ctx, w, cfg, sweep)
		},
	}
}

// readSweep loads a sweep result and checks that this release can read it.
func readSweep(path string) (*optimizer.Sweep, error) {
	sweep, err := serializer.FromFile[optimizer.Sweep](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to read sweep result", err,
			map[string]any{"path": path})
	}

	if sweep.Kind != header.KindSweepResult {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected document kind %q", sweep.Kind),
			map[string]any{"path": path, "want": header.KindSweepResult.String()})
	}
	if sweep.APIVersion != optimizer.APIVersion {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported apiVersion %q", sweep.APIVersion),
			map[string]any{"path": path, "want": optimizer.APIVersion})
	}

	if err := checkWriterVersion(sweep.Get(header.MetadataVersion)); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "incompatible sweep result", err,
			map[string]any{"path": path})
	}

	return sweep, nil
}

// checkWriterVersion fails when the file was written by a release this one
// cannot read. Development builds and files without a version are accepted.
func checkWriterVersion(written string) error {
	if written == "" || written == versionDefault || version == versionDefault {
		return nil
	}

	current, err := ver.ParseVersion(version)
	if err != nil {
		slog.Debug("skipping version check for unparsable build version", "version", version)
		return nil
	}

	w, err := ver.ParseVersion(written)
	if err != nil {
		return fmt.Errorf("invalid writer version %q: %w", written, err)
	}

	if !current.CanRead(w) {
		return fmt.Errorf("written by %s, this is %s", w, current)
	}
	return nil
}
