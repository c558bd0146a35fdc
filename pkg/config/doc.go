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

// Package config holds the settings of a backbar run.
//
// A Config is built from defaults, then an optional YAML file, then command
// line flags, each layer overriding the previous one:
//
//	fileOpts, err := config.LoadFile("backbar.yaml")
//	cfg := config.NewConfig(append(fileOpts, config.WithParallel(4))...)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Config is immutable; read it through its getters.
package config
