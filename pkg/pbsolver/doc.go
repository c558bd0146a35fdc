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

// Package pbsolver solves optimizer models with the pure-Go pseudo-boolean
// solver github.com/crillab/gophersat.
//
// Each model is translated into gophersat constraints: clauses become
// PropClause constraints, the cardinality constraint becomes a pair of
// weighted Eq constraints, and the objective becomes a cost function that
// counts unmakeable drinks. The search runs in its own goroutine: after each
// model it adds a cardinality clause asking for one more makeable drink and
// solves again, until gophersat reports no better model. The context is
// checked between two solver calls; when it ends first, the best model seen
// so far is returned as FEASIBLE and the goroutine exits after the call in
// progress.
//
// Usage:
//
//	s := pbsolver.New(pbsolver.WithProgressInterval(5 * time.Second))
//	a, err := s.Solve(ctx, model)
package pbsolver
