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

package defaults

import "time"

// Input and output files, relative to the working directory.
const (
	// MetadataPath is the ingredient metadata table.
	MetadataPath = "metadata.csv"

	// DrinksPath is the drink/ingredient association table.
	DrinksPath = "index.csv"

	// SnapshotPath receives the loaded drink list on every load.
	SnapshotPath = "index.json"
)

// Bottle count range of a sweep: counts MinCount, MinCount+CountStep, ...
// strictly below MaxCount.
const (
	MinCount  = 3
	MaxCount  = 72
	CountStep = 1
)

// Solver settings.
const (
	// SolveTimeout bounds each count. Zero means unbounded.
	SolveTimeout time.Duration = 0

	// ProgressInterval is the minimum time between two solver progress log lines.
	ProgressInterval = time.Second

	// Parallel is the number of counts solved at once.
	Parallel = 1
)

// LogLevel is the default slog level name.
const LogLevel = "info"
