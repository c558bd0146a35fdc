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

// Package cli implements the backbar command line.
//
// # Commands
//
// backbar (no subcommand) - Sweep a range of bottle counts:
//
//	backbar --metadata metadata.csv --drinks index.csv
//
// Loads both tables, writes the drink snapshot (index.json) and, for every
// bottle count from --min up to but excluding --max, prints the bottles to buy
// and the drinks they make.
//
// drinks - List the loaded drinks:
//
//	backbar drinks --format yaml
//
// solve - Solve a single bottle count:
//
//	backbar solve --count 12
//
// report - Render a saved sweep result:
//
//	backbar --format yaml --output sweep.yaml
//	backbar report --input sweep.yaml --format table
//
// # Global Flags
//
//	--config, -c       YAML config file; flags override its values
//	--metadata, -m     Ingredient metadata table (default: metadata.csv)
//	--drinks, -d       Drink table (default: index.csv)
//	--snapshot         Drink snapshot file (default: index.json, empty disables)
//	--from-snapshot    Read drinks from a snapshot instead of the tables
//	--min, --max       Bottle count range [min, max) (default: 3, 72)
//	--step             Increment between counts (default: 1)
//	--link             equiv (default) or implies
//	--timeout          Time limit per count (default: none)
//	--parallel, -p     Counts solved at once (default: 1)
//	--output, -o       Output file path (default: stdout)
//	--format, -t       text, json, yaml, table (default: text)
//	--metrics-file     Prometheus textfile written after the run
//	--log-level        debug, info, warn, error (default: info)
//
// Every flag can also be set with a BACKBAR_ environment variable, for
// example BACKBAR_MAX=20.
//
// # Exit Codes
//
// 0 on success, 1 on any error. A count without a solution is not an error.
package cli
