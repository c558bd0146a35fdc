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
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/optimizer"
)

func cocktails() []catalog.Drink {
	return []catalog.Drink{
		{Name: "Last Word", Ingredients: []string{"London Dry Gin", "Green Chartreuse", "Maraschino Liqueur"}},
		{Name: "Negroni", Ingredients: []string{"London Dry Gin", "Campari", "Sweet Vermouth"}},
		{Name: "Boulevardier", Ingredients: []string{"Bourbon", "Campari", "Sweet Vermouth"}},
		{Name: "Old Fashioned", Ingredients: []string{"Bourbon", "Angostura Bitters"}},
		{Name: "Manhattan", Ingredients: []string{"Rye Whiskey", "Sweet Vermouth", "Angostura Bitters"}},
		{Name: "Paper Plane", Ingredients: []string{"Bourbon", "Aperol", "Amaro Nonino"}},
		{Name: "Margarita", Ingredients: []string{"Blanco Tequila", "Cointreau"}},
		{Name: "Whiskey Sour", Ingredients: []string{"Bourbon"}},
	}
}

// optimum is the best number of cocktails() for each count from 0 to 12.
var optimum = []int{0, 1, 2, 2, 3, 4, 5, 5, 6, 6, 7, 7, 8}

func countTrue(a *optimizer.Assignment, vars []int) int {
	n := 0
	for _, v := range vars {
		if a.True(v) {
			n++
		}
	}
	return n
}

func TestSolve_TwoBottleDrink(t *testing.T) {
	drinks := []catalog.Drink{{Name: "D1", Ingredients: []string{"A", "B"}}}
	m := optimizer.BuildModel(drinks, 2, optimizer.LinkEquivalence)

	a, err := New().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusOptimal, a.Status)
	assert.Equal(t, []bool{true, true, true}, a.Values)
}

func TestSolve_Optimum(t *testing.T) {
	for _, link := range []optimizer.LinkMode{optimizer.LinkEquivalence, optimizer.LinkImplication} {
		t.Run(string(link), func(t *testing.T) {
			s := New()
			for count, want := range optimum {
				m := optimizer.BuildModel(cocktails(), count, link)
				a, err := s.Solve(context.Background(), m)
				require.NoError(t, err)
				require.Equal(t, optimizer.StatusOptimal, a.Status, "count %d", count)
				assert.Len(t, a.Values, m.NumVars())
				assert.Equal(t, count, countTrue(a, m.Cardinality.Vars), "count %d", count)
				assert.Equal(t, want, countTrue(a, m.Objective), "count %d", count)
			}
		})
	}
}

func TestSolve_TooManyBottles(t *testing.T) {
	m := optimizer.BuildModel(cocktails(), 13, optimizer.LinkEquivalence)

	a, err := New().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusInfeasible, a.Status)
	assert.Nil(t, a.Values)
}

func TestSolve_EmptyModel(t *testing.T) {
	a, err := New().Solve(context.Background(), optimizer.BuildModel(nil, 0, optimizer.LinkEquivalence))
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusOptimal, a.Status)

	a, err = New().Solve(context.Background(), optimizer.BuildModel(nil, 1, optimizer.LinkEquivalence))
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusInfeasible, a.Status)
}

func TestSolve_DrinkWithoutBottles(t *testing.T) {
	drinks := []catalog.Drink{
		{Name: "Water", Ingredients: []string{}},
		{Name: "D1", Ingredients: []string{"A"}},
		{Name: "D2", Ingredients: []string{"B"}},
	}
	m := optimizer.BuildModel(drinks, 1, optimizer.LinkImplication)

	a, err := New().Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusOptimal, a.Status)
	assert.True(t, a.True(m.DrinkVar(0)))
	assert.Equal(t, 2, countTrue(a, m.Objective))
}

func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := New().Solve(ctx, optimizer.BuildModel(cocktails(), 4, optimizer.LinkEquivalence))
	require.NoError(t, err)
	assert.Equal(t, optimizer.StatusUnknown, a.Status)
}

func TestDriver_Sweep(t *testing.T) {
	drinks := cocktails()
	d := optimizer.NewDriver(New(),
		optimizer.WithRange(optimizer.Range{Min: 0, Max: 14, Step: 1}),
		optimizer.WithParallel(3),
	)

	sweep, err := d.Sweep(context.Background(), drinks)
	require.NoError(t, err)
	require.Len(t, sweep.Solutions, 14)

	for count, want := range optimum {
		sol := sweep.Solutions[count]
		assert.Equal(t, optimizer.StatusOptimal, sol.Status)
		assert.Equal(t, want, sol.DrinksPossible, "count %d", count)
		assert.Len(t, sol.Ingredients, count)
		assert.NoError(t, optimizer.Verify(drinks, sol))
	}
	assert.Equal(t, optimizer.StatusInfeasible, sweep.Solutions[13].Status)
	assert.Empty(t, sweep.MonotonicityViolations())
}

func TestDriver_UniqueBestSets(t *testing.T) {
	d := optimizer.NewDriver(New())

	sol, err := d.SolveCount(context.Background(), cocktails(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bourbon", "Angostura Bitters"}, sol.Ingredients)
	assert.Equal(t, []string{"Old Fashioned", "Whiskey Sour"}, sol.Drinks)

	sol, err = d.SolveCount(context.Background(), cocktails(), 12)
	require.NoError(t, err)
	assert.Len(t, sol.Drinks, 8)
}

func TestNew_Options(t *testing.T) {
	assert.Equal(t, DefaultProgressInterval, New().progressInterval)
	assert.Equal(t, 0*DefaultProgressInterval, New(WithProgressInterval(0)).progressInterval)
}

// randomDrinks builds a seeded catalog large enough that proving optimality
// takes far longer than the timeouts used below.
func randomDrinks(n, bottles int) []catalog.Drink {
	rng := rand.New(rand.NewPCG(7, 11))
	drinks := make([]catalog.Drink, n)
	for i := range drinks {
		picked := map[int]bool{}
		ings := []string{}
		for len(ings) < 2+rng.IntN(4) {
			b := rng.IntN(bottles)
			if picked[b] {
				continue
			}
			picked[b] = true
			ings = append(ings, fmt.Sprintf("B%03d", b))
		}
		drinks[i] = catalog.Drink{Name: fmt.Sprintf("D%03d", i), Ingredients: ings}
	}
	return drinks
}

func TestSearch_StopsBetweenSolverCalls(t *testing.T) {
	// 8 drinks cannot all be made with 4 bottles, so the first model never ends the search
	m := optimizer.BuildModel(cocktails(), 4, optimizer.LinkEquivalence)
	prob := solver.ParsePBConstrs(constraints(m))
	require.NotEqual(t, solver.Unsat, prob.Status)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	improved := make(chan []bool)
	done := make(chan solver.Status, 1)
	go func() {
		done <- search(ctx, solver.New(prob), m, improved)
	}()

	select {
	case model := <-improved:
		assert.Less(t, drinksMade(model, m.Objective), len(m.Objective))
	case <-time.After(10 * time.Second):
		t.Fatal("no model found")
	}
	cancel()

	select {
	case status := <-done:
		assert.Equal(t, solver.Indet, status)
	case <-time.After(10 * time.Second):
		t.Fatal("search kept running after cancel")
	}
}

func TestSolve_Timeout(t *testing.T) {
	drinks := randomDrinks(400, 120)
	m := optimizer.BuildModel(drinks, 22, optimizer.LinkEquivalence)
	timeout := 250 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	a, err := New().Solve(ctx, m)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), timeout+2*time.Second)

	require.Contains(t, []optimizer.Status{optimizer.StatusFeasible, optimizer.StatusOptimal}, a.Status)
	assert.Equal(t, 22, countTrue(a, m.Cardinality.Vars))
}

func TestDriver_SweepWithTimeout(t *testing.T) {
	drinks := randomDrinks(400, 120)
	d := optimizer.NewDriver(New(),
		optimizer.WithRange(optimizer.Range{Min: 20, Max: 25, Step: 1}),
		optimizer.WithTimeout(250*time.Millisecond),
	)

	sweep, err := d.Sweep(context.Background(), drinks)
	require.NoError(t, err)
	require.Len(t, sweep.Solutions, 5)

	for _, sol := range sweep.Solutions {
		require.Contains(t, []optimizer.Status{optimizer.StatusFeasible, optimizer.StatusOptimal}, sol.Status,
			"count %d", sol.Count)
		assert.Len(t, sol.Ingredients, sol.Count)
		assert.NoError(t, optimizer.Verify(drinks, sol))
	}
}
