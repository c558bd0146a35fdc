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

// Package defaults provides centralized default values for backbar.
//
// File names, the bottle count range and solver settings live here so that
// the loader, the optimizer, the config layer and the command line agree on
// them.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/backbar/pkg/defaults"
//
//	for count := defaults.MinCount; count < defaults.MaxCount; count += defaults.CountStep {
//	    ...
//	}
//
// # Guidelines
//
//   - Range: 3 to 71 bottles, every count
//   - Solver: no time limit, one count at a time
//   - Progress logging: at most once per second per solve
package defaults
