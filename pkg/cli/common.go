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
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/config"
	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/optimizer"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

// configFromCmd layers defaults, the --config file and the flags that were
// explicitly set, in that order.
func configFromCmd(cmd *cli.Command) (*config.Config, error) {
	opts := []config.Option{config.WithVersion(version)}

	if path := cmd.String(flagConfig); path != "" {
		fileOpts, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, fileOpts...)
	}

	if cmd.IsSet(flagMetadata) {
		opts = append(opts, config.WithMetadataPath(cmd.String(flagMetadata)))
	}
	if cmd.IsSet(flagDrinks) {
		opts = append(opts, config.WithDrinksPath(cmd.String(flagDrinks)))
	}
	if cmd.IsSet(flagSnapshot) {
		opts = append(opts, config.WithSnapshotPath(cmd.String(flagSnapshot)))
	}
	if cmd.IsSet(flagSnapshotFormat) {
		opts = append(opts, config.WithSnapshotFormat(serializer.Format(cmd.String(flagSnapshotFormat))))
	}
	if cmd.IsSet(flagMin) {
		opts = append(opts, config.WithMin(cmd.Int(flagMin)))
	}
	if cmd.IsSet(flagMax) {
		opts = append(opts, config.WithMax(cmd.Int(flagMax)))
	}
	if cmd.IsSet(flagStep) {
		opts = append(opts, config.WithStep(cmd.Int(flagStep)))
	}
	if cmd.IsSet(flagLink) {
		link, err := optimizer.ParseLinkMode(cmd.String(flagLink))
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithLinkMode(link))
	}
	if cmd.IsSet(flagTimeout) {
		opts = append(opts, config.WithTimeout(cmd.Duration(flagTimeout)))
	}
	if cmd.IsSet(flagParallel) {
		opts = append(opts, config.WithParallel(cmd.Int(flagParallel)))
	}
	if cmd.IsSet(flagOutput) {
		opts = append(opts, config.WithOutputPath(cmd.String(flagOutput)))
	}
	if cmd.IsSet(flagFormat) {
		opts = append(opts, config.WithOutputFormat(cmd.String(flagFormat)))
	}
	if cmd.IsSet(flagMetricsFile) {
		opts = append(opts, config.WithMetricsFile(cmd.String(flagMetricsFile)))
	}

	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDrinks reads the drink list from --from-snapshot when set, otherwise
// from the two tables.
func loadDrinks(ctx context.Context, cmd *cli.Command, cfg *config.Config) ([]catalog.Drink, error) {
	if path := cmd.String(flagFromSnapshot); path != "" {
		drinks, err := catalog.ReadSnapshot(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("drinks read from snapshot", "path", path, "drinks", len(drinks))
		return drinks, nil
	}
	return catalog.LoadDrinks(ctx, cfg.CatalogOptions())
}

// openOutput returns the report destination: the --output file, or the
// command's writer when no file is set.
func openOutput(cmd *cli.Command, cfg *config.Config) (io.Writer, func(), error) {
	path := cfg.OutputPath()
	if path == "" {
		return cmd.Root().Writer, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to create output file", err,
			map[string]any{"path": path})
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close output file", "path", path, "error", err)
		}
	}, nil
}

// writeStructured serializes v in the configured non-text format.
func writeStructured(ctx context.Context, w io.Writer, cfg *config.Config, v any) error {
	ser := serializer.NewWriter(serializer.Format(cfg.OutputFormat()), w)
	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	return nil
}

// writeMetrics exports metrics when --metrics-file is set.
func writeMetrics(cfg *config.Config) error {
	path := cfg.MetricsFile()
	if path == "" {
		return nil
	}
	if err := optimizer.WriteMetrics(path); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
