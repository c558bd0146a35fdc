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
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/optimizer"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

// File is the on-disk form of a Config. Unset fields keep their defaults.
//
//	metadata: metadata.csv
//	drinks: index.csv
//	snapshot: index.json
//	range:
//	  min: 3
//	  max: 72
//	  step: 1
//	link: equiv
//	timeout: 30s
//	parallel: 4
//	output: sweep.yaml
//	format: yaml
//	metricsFile: backbar.prom
type File struct {
	Metadata       *string        `yaml:"metadata"`
	Drinks         *string        `yaml:"drinks"`
	Snapshot       *string        `yaml:"snapshot"`
	SnapshotFormat *string        `yaml:"snapshotFormat"`
	Range          *FileRange     `yaml:"range"`
	Link           *string        `yaml:"link"`
	Timeout        *time.Duration `yaml:"timeout"`
	Parallel       *int           `yaml:"parallel"`
	Output         *string        `yaml:"output"`
	Format         *string        `yaml:"format"`
	MetricsFile    *string        `yaml:"metricsFile"`
}

// FileRange is the range section of a File.
type FileRange struct {
	Min  *int `yaml:"min"`
	Max  *int `yaml:"max"`
	Step *int `yaml:"step"`
}

// LoadFile reads a YAML config file and returns the options it sets.
// Unknown keys are rejected.
func LoadFile(path string) ([]Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "config file not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read config file", err,
			map[string]any{"path": path})
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config file", err,
			map[string]any{"path": path})
	}

	return f.Options()
}

// Options converts the fields set in f into Config options.
func (f *File) Options() ([]Option, error) {
	var opts []Option

	if f.Metadata != nil {
		opts = append(opts, WithMetadataPath(*f.Metadata))
	}
	if f.Drinks != nil {
		opts = append(opts, WithDrinksPath(*f.Drinks))
	}
	if f.Snapshot != nil {
		opts = append(opts, WithSnapshotPath(*f.Snapshot))
	}
	if f.SnapshotFormat != nil {
		opts = append(opts, WithSnapshotFormat(serializer.Format(*f.SnapshotFormat)))
	}
	if r := f.Range; r != nil {
		if r.Min != nil {
			opts = append(opts, WithMin(*r.Min))
		}
		if r.Max != nil {
			opts = append(opts, WithMax(*r.Max))
		}
		if r.Step != nil {
			opts = append(opts, WithStep(*r.Step))
		}
	}
	if f.Link != nil {
		link, err := optimizer.ParseLinkMode(*f.Link)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLinkMode(link))
	}
	if f.Timeout != nil {
		opts = append(opts, WithTimeout(*f.Timeout))
	}
	if f.Parallel != nil {
		opts = append(opts, WithParallel(*f.Parallel))
	}
	if f.Output != nil {
		opts = append(opts, WithOutputPath(*f.Output))
	}
	if f.Format != nil {
		opts = append(opts, WithOutputFormat(*f.Format))
	}
	if f.MetricsFile != nil {
		opts = append(opts, WithMetricsFile(*f.MetricsFile))
	}

	return opts, nil
}
