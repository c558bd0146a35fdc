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

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/errors"
)

// Verify checks a solved Solution against the drinks it was computed from:
// the purchase set has exactly Count distinct bottles, and every reported
// drink has all of its ingredients in the purchase set. Unsolved solutions
// always verify.
func Verify(drinks []catalog.Drink, sol *Solution) error {
	if sol == nil || !sol.Status.Solved() {
		return nil
	}

	bought := make(map[string]struct{}, len(sol.Ingredients))
	for _, name := range sol.Ingredients {
		if _, dup := bought[name]; dup {
			return violation(sol, fmt.Sprintf("ingredient %q bought twice", name))
		}
		bought[name] = struct{}{}
	}
	if len(bought) != sol.Count {
		return violation(sol, fmt.Sprintf("bought %d ingredients", len(bought)))
	}

	byName := make(map[string]*catalog.Drink, len(drinks))
	for i := range drinks {
		byName[drinks[i].Name] = &drinks[i]
	}

	for _, name := range sol.Drinks {
		d, ok := byName[name]
		if !ok {
			return violation(sol, fmt.Sprintf("unknown drink %q", name))
		}
		for _, ing := range d.Ingredients {
			if _, ok := bought[ing]; !ok {
				return violation(sol, fmt.Sprintf("drink %q needs %q which was not bought", name, ing))
			}
		}
	}

	if sol.DrinksPossible != len(sol.Drinks) {
		return violation(sol, fmt.Sprintf("objective %d does not match %d drinks", sol.DrinksPossible, len(sol.Drinks)))
	}

	return nil
}

func violation(sol *Solution, detail string) error {
	return errors.NewWithContext(errors.ErrCodeInternal, "solution violates the model: "+detail,
		map[string]any{"count": sol.Count, "status": sol.Status.String()})
}
