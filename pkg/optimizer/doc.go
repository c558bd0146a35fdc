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

// Package optimizer chooses which bottles to buy.
//
// For a bottle count n, the optimizer picks exactly n distinct bottles so that
// the number of drinks whose every bottle is bought is as large as possible.
// The problem is expressed as a 0-1 program (Model) and handed to an injected
// Solver; the gophersat-backed implementation lives in package pbsolver.
//
// # Model
//
// One variable per distinct bottle and one per drink:
//
//	drink ⇒ bottle                      for every bottle of the drink
//	(bottle₁ ∧ … ∧ bottleₖ) ⇒ drink     LinkEquivalence only
//	Σ bottles = n
//	maximize Σ drinks
//
// Drinks without bottles are always makeable.
//
// # Usage
//
//	d := optimizer.NewDriver(pbsolver.New(),
//	    optimizer.WithRange(optimizer.Range{Min: 3, Max: 72, Step: 1}),
//	    optimizer.WithReporter(optimizer.NewTextReporter(os.Stdout)),
//	)
//	sweep, err := d.Sweep(ctx, drinks)
//
// Every solution accepted from the solver is checked with Verify. Solutions
// are tagged OPTIMAL, FEASIBLE (timed out with a purchase set), INFEASIBLE or
// UNKNOWN; only the first two carry a purchase set.
//
// # Metrics
//
//   - backbar_solve_duration_seconds{status}
//   - backbar_solve_total{status}
//   - backbar_drinks_possible{count}
//   - backbar_sweep_duration_seconds
//   - backbar_sweep_total{status}
//
// WriteMetrics exports them to a Prometheus textfile.
package optimizer
