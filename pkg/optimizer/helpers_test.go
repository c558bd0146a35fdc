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

package optimizer

import (
	"context"
	"math/bits"

	"github.com/NVIDIA/backbar/pkg/catalog"
)

// bruteForce is an exhaustive Solver for small models. It relies on every
// clause mentioning at most one drink variable, which BuildModel guarantees.
type bruteForce struct{}

func (bruteForce) Solve(ctx context.Context, m *Model) (*Assignment, error) {
	n := len(m.Ingredients)
	if m.Cardinality.Bound > n || m.Cardinality.Bound < 0 {
		return &Assignment{Status: StatusInfeasible}, nil
	}

	var best []bool
	bestObj := -1
	for mask := 0; mask < 1<<n; mask++ {
		if err := ctx.Err(); err != nil {
			return &Assignment{Status: StatusUnknown}, nil
		}
		if bits.OnesCount(uint(mask)) != m.Cardinality.Bound {
			continue
		}

		vals := make([]bool, m.NumVars())
		for i := 0; i < n; i++ {
			vals[i] = mask&(1<<i) != 0
		}

		ok := true
		obj := 0
		for j := range m.Drinks {
			dv := m.DrinkVar(j)
			vals[dv-1] = true
			if !clausesHold(m, vals, dv) {
				vals[dv-1] = false
				if !clausesHold(m, vals, dv) {
					ok = false
					break
				}
			}
			if vals[dv-1] {
				obj++
			}
		}
		if ok && obj > bestObj {
			best, bestObj = vals, obj
		}
	}

	if best == nil {
		return &Assignment{Status: StatusInfeasible}, nil
	}
	return &Assignment{Status: StatusOptimal, Values: best}, nil
}

// clausesHold checks the clauses that mention variable v.
func clausesHold(m *Model, vals []bool, v int) bool {
	for _, c := range m.Clauses {
		mentions := false
		sat := false
		for _, lit := range c {
			if lit == v || lit == -v {
				mentions = true
			}
			if lit > 0 && vals[lit-1] || lit < 0 && !vals[-lit-1] {
				sat = true
			}
		}
		if mentions && !sat {
			return false
		}
	}
	return true
}

// stubSolver returns a fixed answer.
type stubSolver struct {
	assignment *Assignment
	err        error
}

func (s stubSolver) Solve(context.Context, *Model) (*Assignment, error) {
	return s.assignment, s.err
}

// waitSolver blocks until ctx ends, then returns fallback.
type waitSolver struct {
	fallback func(m *Model) *Assignment
}

func (s waitSolver) Solve(ctx context.Context, m *Model) (*Assignment, error) {
	<-ctx.Done()
	return s.fallback(m), nil
}

// recordingReporter collects reported counts.
type recordingReporter struct {
	counts []int
	err    error
}

func (r *recordingReporter) Report(sol *Solution) error {
	r.counts = append(r.counts, sol.Count)
	return r.err
}

func cocktails() []catalog.Drink {
	return []catalog.Drink{
		{Name: "Last Word", Page: "12", Ingredients: []string{"London Dry Gin", "Green Chartreuse", "Maraschino Liqueur"}},
		{Name: "Negroni", Page: "14", Ingredients: []string{"London Dry Gin", "Campari", "Sweet Vermouth"}},
		{Name: "Boulevardier", Page: "15", Ingredients: []string{"Bourbon", "Campari", "Sweet Vermouth"}},
		{Name: "Old Fashioned", Page: "20", Ingredients: []string{"Bourbon", "Angostura Bitters"}},
		{Name: "Manhattan", Page: "21", Ingredients: []string{"Rye Whiskey", "Sweet Vermouth", "Angostura Bitters"}},
		{Name: "Paper Plane", Page: "30", Ingredients: []string{"Bourbon", "Aperol", "Amaro Nonino"}},
		{Name: "Margarita", Page: "41", Ingredients: []string{"Blanco Tequila", "Cointreau"}},
		{Name: "Whiskey Sour", Page: "45", Ingredients: []string{"Bourbon"}},
	}
}

// cocktailOptimum is the best number of cocktails() for each count from 0 to 12.
var cocktailOptimum = []int{0, 1, 2, 2, 3, 4, 5, 5, 6, 6, 7, 7, 8}
