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

package pbsolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/crillab/gophersat/solver"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/optimizer"
)

// DefaultProgressInterval is the minimum time between two progress log lines.
const DefaultProgressInterval = defaults.ProgressInterval

// Solver implements optimizer.Solver on top of gophersat.
type Solver struct {
	progressInterval time.Duration
}

// Option is a functional option for configuring a Solver.
type Option func(*Solver)

// WithProgressInterval sets the minimum time between two progress log lines.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Solver) {
		s.progressInterval = d
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{progressInterval: DefaultProgressInterval}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve implements optimizer.Solver.
func (s *Solver) Solve(ctx context.Context, m *optimizer.Model) (*optimizer.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return &optimizer.Assignment{Status: optimizer.StatusUnknown}, nil
	}

	card := m.Cardinality
	if card.Bound < 0 || card.Bound > len(card.Vars) {
		return &optimizer.Assignment{Status: optimizer.StatusInfeasible}, nil
	}
	if m.NumVars() == 0 {
		// nothing to decide; only a zero bound is satisfiable, and it was checked above
		return &optimizer.Assignment{Status: optimizer.StatusOptimal, Values: []bool{}}, nil
	}

	prob := solver.ParsePBConstrs(constraints(m))
	if prob.Status == solver.Unsat {
		return &optimizer.Assignment{Status: optimizer.StatusInfeasible}, nil
	}
	if len(m.Objective) > 0 {
		lits, weights := costFunc(m.Objective)
		prob.SetCostFunc(lits, weights)
	}

	return s.optimize(ctx, solver.New(prob), m)
}

// constraints translates the clauses and the cardinality constraint of m.
func constraints(m *optimizer.Model) []solver.PBConstr {
	constrs := make([]solver.PBConstr, 0, len(m.Clauses)+2)
	for _, c := range m.Clauses {
		lits := make([]int, len(c))
		copy(lits, c)
		constrs = append(constrs, solver.PropClause(lits...))
	}

	if len(m.Cardinality.Vars) > 0 {
		lits := make([]int, len(m.Cardinality.Vars))
		copy(lits, m.Cardinality.Vars)
		weights := make([]int, len(lits))
		for i := range weights {
			weights[i] = 1
		}
		constrs = append(constrs, solver.Eq(lits, weights, m.Cardinality.Bound)...)
	}
	return constrs
}

// costFunc turns "maximize the number of true vars" into "minimize the number
// of false vars": each negated var costs 1 when satisfied.
func costFunc(vars []int) ([]solver.Lit, []int) {
	lits := make([]solver.Lit, len(vars))
	weights := make([]int, len(vars))
	for i, v := range vars {
		lits[i] = solver.IntToLit(int32(v)).Negation()
		weights[i] = 1
	}
	return lits, weights
}

// optimize runs the improvement loop in its own goroutine until the last
// model is proven optimal or ctx ends. A single gophersat Solve call cannot be
// interrupted, so after ctx ends the goroutine exits once that call returns.
func (s *Solver) optimize(ctx context.Context, gs *solver.Solver, m *optimizer.Model) (*optimizer.Assignment, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	improved := make(chan []bool)
	done := make(chan solver.Status, 1)
	go func() {
		done <- search(ctx, gs, m, improved)
	}()

	progress := rate.Sometimes{Interval: s.progressInterval}
	start := time.Now()

	var best []bool
	for {
		select {
		case model := <-improved:
			best = model
			progress.Do(func() {
				slog.Debug("improved solution",
					"count", m.Cardinality.Bound,
					"drinks", drinksMade(model, m.Objective),
					"elapsed", time.Since(start))
			})

		case status := <-done:
			switch {
			case status == solver.Sat && best != nil:
				return assignment(optimizer.StatusOptimal, best, m), nil
			case status == solver.Unsat:
				return &optimizer.Assignment{Status: optimizer.StatusInfeasible}, nil
			default:
				return interrupted(best, m, start), nil
			}

		case <-ctx.Done():
			return interrupted(best, m, start), nil
		}
	}
}

// search finds a first model, then repeatedly asks gophersat for one that
// makes at least one more drink, sending each model on improved. ctx is
// checked between two solver calls. It returns Sat once the last model is
// proven optimal, Unsat when there is no model at all and Indet when ctx
// ended first.
func search(ctx context.Context, gs *solver.Solver, m *optimizer.Model, improved chan<- []bool) solver.Status {
	found := false
	for {
		if ctx.Err() != nil {
			return solver.Indet
		}
		if gs.Solve() != solver.Sat {
			if found {
				return solver.Sat
			}
			return solver.Unsat
		}
		found = true

		model := gs.Model()
		made := drinksMade(model, m.Objective)
		select {
		case improved <- model:
		case <-ctx.Done():
			return solver.Indet
		}
		if made == len(m.Objective) {
			return solver.Sat
		}
		gs.AppendClause(solver.NewCardClause(drinkLits(m.Objective), made+1))
	}
}

// interrupted answers for a search stopped before it could prove optimality.
func interrupted(best []bool, m *optimizer.Model, start time.Time) *optimizer.Assignment {
	if best == nil {
		slog.Debug("solve interrupted before any solution",
			"count", m.Cardinality.Bound,
			"elapsed", time.Since(start))
		return &optimizer.Assignment{Status: optimizer.StatusUnknown}
	}

	slog.Debug("solve interrupted, returning best solution",
		"count", m.Cardinality.Bound,
		"drinks", drinksMade(best, m.Objective),
		"elapsed", time.Since(start))
	return assignment(optimizer.StatusFeasible, best, m)
}

// drinkLits returns the positive literals of vars, fresh on every call since
// gophersat takes ownership of clause literals.
func drinkLits(vars []int) []solver.Lit {
	lits := make([]solver.Lit, len(vars))
	for i, v := range vars {
		lits[i] = solver.IntToLit(int32(v))
	}
	return lits
}

// drinksMade counts the vars set in a gophersat model, where var v is at index v-1.
func drinksMade(model []bool, vars []int) int {
	n := 0
	for _, v := range vars {
		if v-1 < len(model) && model[v-1] {
			n++
		}
	}
	return n
}

// assignment copies a gophersat model, padding variables the solver never saw.
func assignment(status optimizer.Status, model []bool, m *optimizer.Model) *optimizer.Assignment {
	values := make([]bool, m.NumVars())
	copy(values, model)
	return &optimizer.Assignment{Status: status, Values: values}
}
