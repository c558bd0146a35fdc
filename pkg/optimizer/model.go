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

	"github.com/NVIDIA/backbar/pkg/catalog"
)

// Model is a solver-independent 0-1 program for one count.
//
// Variables are numbered from 1. Ingredient i (0-based) is variable i+1 and
// drink j is variable len(Ingredients)+j+1. Literals use the DIMACS
// convention: v is "v is true" and -v is "v is false".
type Model struct {
	// Ingredients holds the distinct ingredient names in first-seen order.
	Ingredients []string

	// Drinks holds the drink names in catalog order.
	Drinks []string

	// Clauses must each have at least one true literal.
	Clauses [][]int

	// Cardinality requires exactly Bound of Vars to be true.
	Cardinality Cardinality

	// Objective lists the variables whose true count is maximized.
	Objective []int
}

// Cardinality is the constraint sum(Vars) == Bound.
type Cardinality struct {
	Vars  []int
	Bound int
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.Ingredients) + len(m.Drinks)
}

// IngredientVar returns the variable of ingredient i.
func (m *Model) IngredientVar(i int) int {
	return i + 1
}

// DrinkVar returns the variable of drink j.
func (m *Model) DrinkVar(j int) int {
	return len(m.Ingredients) + j + 1
}

// Assignment is a solver's answer for a Model.
type Assignment struct {
	Status Status

	// Values holds the value of variable v at index v-1. It is nil unless
	// Status is solved.
	Values []bool
}

// True reports whether variable v is set in the assignment.
func (a *Assignment) True(v int) bool {
	if a == nil || v < 1 || v > len(a.Values) {
		return false
	}
	return a.Values[v-1]
}

// Solver solves a Model. Implementations must return StatusOptimal only for
// proven optima and should return the best assignment found so far as
// StatusFeasible when ctx ends first.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Assignment, error)
}

// BuildModel constructs the model that picks count bottles maximizing the
// number of makeable drinks.
func BuildModel(drinks []catalog.Drink, count int, link LinkMode) *Model {
	m := &Model{
		Drinks: make([]string, len(drinks)),
	}

	index := make(map[string]int)
	for j, d := range drinks {
		m.Drinks[j] = d.Name
		for _, name := range d.Ingredients {
			if _, ok := index[name]; !ok {
				index[name] = len(m.Ingredients)
				m.Ingredients = append(m.Ingredients, name)
			}
		}
	}

	for j, d := range drinks {
		dv := m.DrinkVar(j)
		required := distinctVars(d.Ingredients, index)

		if len(required) == 0 {
			// nothing to buy, always makeable
			m.Clauses = append(m.Clauses, []int{dv})
			continue
		}

		for _, iv := range required {
			m.Clauses = append(m.Clauses, []int{-dv, iv})
		}

		if link == LinkEquivalence {
			reverse := make([]int, 0, len(required)+1)
			reverse = append(reverse, dv)
			for _, iv := range required {
				reverse = append(reverse, -iv)
			}
			m.Clauses = append(m.Clauses, reverse)
		}
	}

	m.Cardinality.Bound = count
	m.Cardinality.Vars = make([]int, len(m.Ingredients))
	for i := range m.Ingredients {
		m.Cardinality.Vars[i] = m.IngredientVar(i)
	}

	m.Objective = make([]int, len(m.Drinks))
	for j := range m.Drinks {
		m.Objective[j] = m.DrinkVar(j)
	}

	return m
}

// distinctVars maps ingredient names to their variables, dropping repeats.
func distinctVars(names []string, index map[string]int) []int {
	seen := make(map[int]struct{}, len(names))
	vars := make([]int, 0, len(names))
	for _, name := range names {
		v := index[name] + 1
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vars = append(vars, v)
	}
	return vars
}

// decode turns an assignment into a Solution.
func decode(m *Model, a *Assignment, count int) *Solution {
	sol := &Solution{
		Count:       count,
		Status:      a.Status,
		Ingredients: []string{},
		Drinks:      []string{},
	}
	if !a.Status.Solved() {
		return sol
	}
	for i, name := range m.Ingredients {
		if a.True(m.IngredientVar(i)) {
			sol.Ingredients = append(sol.Ingredients, name)
		}
	}
	for j, name := range m.Drinks {
		if a.True(m.DrinkVar(j)) {
			sol.Drinks = append(sol.Drinks, name)
		}
	}
	sol.DrinksPossible = len(sol.Drinks)
	return sol
}
