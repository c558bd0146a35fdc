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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/header"
)

// APIVersion is the schema version of sweep result documents.
const APIVersion = "backbar.dev/v1alpha1"

// Metadata keys describing the range of a sweep.
const (
	MetadataMin  = "min"
	MetadataMax  = "max"
	MetadataStep = "step"
)

// Status is the outcome of solving one count.
type Status string

const (
	// StatusOptimal means the solver proved no better purchase set exists.
	StatusOptimal Status = "OPTIMAL"
	// StatusFeasible means a purchase set was found but optimality was not proven
	// before the solve was cut short.
	StatusFeasible Status = "FEASIBLE"
	// StatusInfeasible means no purchase set of the requested size exists.
	StatusInfeasible Status = "INFEASIBLE"
	// StatusUnknown means the solve ended before any purchase set was found.
	StatusUnknown Status = "UNKNOWN"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// Solved reports whether the status carries a purchase set.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// LinkMode selects how drink variables are tied to ingredient variables.
type LinkMode string

const (
	// LinkEquivalence makes a drink count as makeable exactly when all of its
	// ingredients are bought.
	LinkEquivalence LinkMode = "equiv"
	// LinkImplication only requires that a makeable drink has all of its
	// ingredients bought. The solver is free to leave a makeable drink unmarked.
	LinkImplication LinkMode = "implies"
)

// ParseLinkMode parses a link mode name. The empty string selects LinkEquivalence.
func ParseLinkMode(s string) (LinkMode, error) {
	switch LinkMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LinkEquivalence:
		return LinkEquivalence, nil
	case LinkImplication:
		return LinkImplication, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown link mode %q", s),
			map[string]any{"supported": []string{string(LinkEquivalence), string(LinkImplication)}})
	}
}

// Range is the half-open interval [Min, Max) of counts visited in steps of Step.
type Range struct {
	Min  int `json:"min" yaml:"min"`
	Max  int `json:"max" yaml:"max"`
	Step int `json:"step" yaml:"step"`
}

// DefaultRange visits every count from defaults.MinCount up to defaults.MaxCount.
func DefaultRange() Range {
	return Range{Min: defaults.MinCount, Max: defaults.MaxCount, Step: defaults.CountStep}
}

// Validate checks that the range can be iterated.
func (r Range) Validate() error {
	if r.Min < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "range minimum cannot be negative",
			map[string]any{"min": r.Min})
	}
	if r.Max < r.Min {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "range maximum is below its minimum",
			map[string]any{"min": r.Min, "max": r.Max})
	}
	if r.Step < 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "range step must be positive",
			map[string]any{"step": r.Step})
	}
	return nil
}

// Counts returns the counts of the range in increasing order.
func (r Range) Counts() []int {
	if r.Validate() != nil {
		return nil
	}
	counts := make([]int, 0, (r.Max-r.Min+r.Step-1)/r.Step)
	for c := r.Min; c < r.Max; c += r.Step {
		counts = append(counts, c)
	}
	return counts
}

// Solution is the result of solving one count.
type Solution struct {
	// Count is the number of bottles to buy.
	Count int `json:"count" yaml:"count"`

	Status Status `json:"status" yaml:"status"`

	// DrinksPossible is the objective value: the number of makeable drinks.
	DrinksPossible int `json:"drinksPossible" yaml:"drinksPossible"`

	// Ingredients is the purchase set in first-seen ingredient order.
	Ingredients []string `json:"ingredients" yaml:"ingredients"`

	// Drinks lists the makeable drinks in catalog order.
	Drinks []string `json:"drinks" yaml:"drinks"`

	// Duration is the wall time spent in the solver.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Sweep is the ordered set of solutions for every count of a range.
type Sweep struct {
	header.Header `json:",inline" yaml:",inline"`

	// Solutions in increasing count order.
	Solutions []*Solution `json:"solutions" yaml:"solutions"`
}

// Violation records a count whose optimum is lower than that of the previous count.
type Violation struct {
	From       int `json:"from" yaml:"from"`
	To         int `json:"to" yaml:"to"`
	FromDrinks int `json:"fromDrinks" yaml:"fromDrinks"`
	ToDrinks   int `json:"toDrinks" yaml:"toDrinks"`
}

// MonotonicityViolations compares consecutive optimal solutions and returns
// each place where buying more bottles made fewer drinks possible. Feasible
// solutions are skipped because their objective is only a lower bound.
func (s *Sweep) MonotonicityViolations() []Violation {
	var out []Violation
	var prev *Solution
	for _, sol := range s.Solutions {
		if sol == nil || sol.Status != StatusOptimal {
			continue
		}
		if prev != nil && sol.DrinksPossible < prev.DrinksPossible {
			out = append(out, Violation{
				From:       prev.Count,
				To:         sol.Count,
				FromDrinks: prev.DrinksPossible,
				ToDrinks:   sol.DrinksPossible,
			})
		}
		prev = sol
	}
	return out
}

// Find returns the solution for count, or nil.
func (s *Sweep) Find(count int) *Solution {
	for _, sol := range s.Solutions {
		if sol != nil && sol.Count == count {
			return sol
		}
	}
	return nil
}

// TableHeader implements serializer.TableRenderer.
func (s *Sweep) TableHeader() []string {
	return []string{"COUNT", "STATUS", "DRINKS", "INGREDIENTS", "DURATION"}
}

// TableRows implements serializer.TableRenderer.
func (s *Sweep) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Solutions))
	for _, sol := range s.Solutions {
		if sol == nil {
			continue
		}
		drinks := "-"
		if sol.Status.Solved() {
			drinks = strconv.Itoa(sol.DrinksPossible)
		}
		rows = append(rows, []string{
			strconv.Itoa(sol.Count),
			sol.Status.String(),
			drinks,
			strings.Join(sol.Ingredients, ", "),
			sol.Duration.Round(time.Millisecond).String(),
		})
	}
	return rows
}
