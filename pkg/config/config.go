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

package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/optimizer"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

// FormatText is the plain text report layout. It is accepted as an output
// format in addition to the serializer formats.
const FormatText = "text"

// Config holds the settings of one backbar run.
// It is immutable after construction; use the With* options to build it.
type Config struct {
	// metadataPath is the ingredient metadata table.
	metadataPath string

	// drinksPath is the drink/ingredient table.
	drinksPath string

	// snapshotPath receives the loaded drink list. Empty disables it.
	snapshotPath string

	// snapshotFormat is the format of the drink snapshot (json or yaml).
	snapshotFormat serializer.Format

	// rng is the range of bottle counts to solve.
	rng optimizer.Range

	// link selects how drinks are tied to ingredients.
	link optimizer.LinkMode

	// timeout bounds each solve. Zero means unbounded.
	timeout time.Duration

	// parallel is the number of counts solved at once.
	parallel int

	// outputPath receives the report. Empty means stdout.
	outputPath string

	// outputFormat is text, json, yaml or table.
	outputFormat string

	// metricsFile receives Prometheus metrics after the run. Empty disables it.
	metricsFile string

	// version is the tool version stamped into results.
	version string
}

// Getter methods for read-only access

// MetadataPath returns the ingredient metadata table path.
func (c *Config) MetadataPath() string {
	return c.metadataPath
}

// DrinksPath returns the drink table path.
func (c *Config) DrinksPath() string {
	return c.drinksPath
}

// SnapshotPath returns the drink snapshot path.
func (c *Config) SnapshotPath() string {
	return c.snapshotPath
}

// SnapshotFormat returns the drink snapshot format.
func (c *Config) SnapshotFormat() serializer.Format {
	return c.snapshotFormat
}

// Range returns the range of bottle counts.
func (c *Config) Range() optimizer.Range {
	return c.rng
}

// LinkMode returns the link mode.
func (c *Config) LinkMode() optimizer.LinkMode {
	return c.link
}

// Timeout returns the per-solve timeout.
func (c *Config) Timeout() time.Duration {
	return c.timeout
}

// Parallel returns the number of concurrent solves.
func (c *Config) Parallel() int {
	return c.parallel
}

// OutputPath returns the report destination.
func (c *Config) OutputPath() string {
	return c.outputPath
}

// OutputFormat returns the report format.
func (c *Config) OutputFormat() string {
	return c.outputFormat
}

// MetricsFile returns the metrics textfile path.
func (c *Config) MetricsFile() string {
	return c.metricsFile
}

// Version returns the tool version.
func (c *Config) Version() string {
	return c.version
}

// CatalogOptions returns the loader options described by the Config.
func (c *Config) CatalogOptions() catalog.Options {
	return catalog.Options{
		MetadataPath:   c.metadataPath,
		DrinksPath:     c.drinksPath,
		SnapshotPath:   c.snapshotPath,
		SnapshotFormat: c.snapshotFormat,
	}
}

// DriverOptions returns the optimizer options described by the Config.
func (c *Config) DriverOptions() []optimizer.Option {
	return []optimizer.Option{
		optimizer.WithRange(c.rng),
		optimizer.WithLinkMode(c.link),
		optimizer.WithTimeout(c.timeout),
		optimizer.WithParallel(c.parallel),
		optimizer.WithVersion(c.version),
	}
}

// SupportedOutputFormats returns the accepted values of the output format.
func SupportedOutputFormats() []string {
	return append([]string{FormatText}, serializer.SupportedFormats()...)
}

// Validate checks if the Config has valid settings.
func (c *Config) Validate() error {
	if c.metadataPath == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "metadata table path cannot be empty")
	}
	if c.drinksPath == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "drink table path cannot be empty")
	}

	if c.snapshotFormat != serializer.FormatJSON && c.snapshotFormat != serializer.FormatYAML {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid snapshot format: %s (must be json or yaml)", c.snapshotFormat),
			map[string]any{"format": string(c.snapshotFormat)})
	}

	if err := c.rng.Validate(); err != nil {
		return err
	}

	if _, err := optimizer.ParseLinkMode(string(c.link)); err != nil {
		return err
	}

	if c.timeout < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "timeout cannot be negative",
			map[string]any{"timeout": c.timeout.String()})
	}

	if c.parallel < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "parallel must be at least 1",
			map[string]any{"parallel": c.parallel})
	}

	if !slices.Contains(SupportedOutputFormats(), c.outputFormat) {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid output format: %s", c.outputFormat),
			map[string]any{"supported": SupportedOutputFormats()})
	}

	return nil
}

type Option func(*Config)

// WithMetadataPath sets the ingredient metadata table path.
func WithMetadataPath(path string) Option {
	return func(c *Config) {
		c.metadataPath = path
	}
}

// WithDrinksPath sets the drink table path.
func WithDrinksPath(path string) Option {
	return func(c *Config) {
		c.drinksPath = path
	}
}

// WithSnapshotPath sets the drink snapshot path. An empty path disables the snapshot.
func WithSnapshotPath(path string) Option {
	return func(c *Config) {
		c.snapshotPath = path
	}
}

// WithSnapshotFormat sets the drink snapshot format.
func WithSnapshotFormat(format serializer.Format) Option {
	return func(c *Config) {
		c.snapshotFormat = format
	}
}

// WithMin sets the first bottle count.
func WithMin(n int) Option {
	return func(c *Config) {
		c.rng.Min = n
	}
}

// WithMax sets the exclusive upper bound of the bottle counts.
func WithMax(n int) Option {
	return func(c *Config) {
		c.rng.Max = n
	}
}

// WithStep sets the increment between bottle counts.
func WithStep(n int) Option {
	return func(c *Config) {
		c.rng.Step = n
	}
}

// WithLinkMode sets the link mode.
func WithLinkMode(link optimizer.LinkMode) Option {
	return func(c *Config) {
		c.link = link
	}
}

// WithTimeout sets the per-solve timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// WithParallel sets the number of concurrent solves.
func WithParallel(n int) Option {
	return func(c *Config) {
		c.parallel = n
	}
}

// WithOutputPath sets the report destination.
func WithOutputPath(path string) Option {
	return func(c *Config) {
		c.outputPath = path
	}
}

// WithOutputFormat sets the report format (text, json, yaml, table).
func WithOutputFormat(format string) Option {
	return func(c *Config) {
		c.outputFormat = format
	}
}

// WithMetricsFile sets the metrics textfile path.
func WithMetricsFile(path string) Option {
	return func(c *Config) {
		c.metricsFile = path
	}
}

// WithVersion sets the tool version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.version = version
	}
}

// NewConfig returns a Config with default values applied before opts.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		metadataPath:   catalog.DefaultMetadataPath,
		drinksPath:     catalog.DefaultDrinksPath,
		snapshotPath:   catalog.DefaultSnapshotPath,
		snapshotFormat: serializer.FormatJSON,
		rng:            optimizer.DefaultRange(),
		link:           optimizer.LinkEquivalence,
		timeout:        defaults.SolveTimeout,
		parallel:       defaults.Parallel,
		outputFormat:   FormatText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
