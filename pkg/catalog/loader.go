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

package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/NVIDIA/backbar/pkg/errors"
)

// Load reads both tables, joins them and writes the drink snapshot.
func Load(ctx context.Context, opts Options) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ingredients, err := loadIngredients(opts.MetadataPath)
	if err != nil {
		return nil, err
	}

	drinks, err := loadDrinks(ctx, opts.DrinksPath, ingredients)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		Ingredients: ingredients,
		Drinks:      drinks,
	}

	slog.Debug("catalog loaded",
		"ingredients", len(ingredients),
		"drinks", len(drinks),
		"bottles", len(cat.BottleNames()))

	if opts.SnapshotPath != "" {
		if err := WriteSnapshot(ctx, opts.SnapshotPath, opts.SnapshotFormat, drinks); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// LoadDrinks is Load for callers that only need the drink list.
func LoadDrinks(ctx context.Context, opts Options) ([]Drink, error) {
	cat, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cat.Drinks, nil
}

// loadIngredients parses the metadata table. The first row for a name wins.
func loadIngredients(path string) (map[string]*Ingredient, error) {
	t, err := openTable(path, ColIngredient, ColBottle, ColRecipe, ColPrice)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	ingredients := make(map[string]*Ingredient)
	for {
		r, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		name := r.name(ColIngredient)
		if _, ok := ingredients[name]; ok {
			slog.Debug("ignoring duplicate ingredient row", "ingredient", name, "line", r.line)
			continue
		}
		ingredients[name] = &Ingredient{
			Name:   name,
			Bottle: r.flag(ColBottle),
			Recipe: r.flag(ColRecipe),
			Price:  r.get(ColPrice),
		}
	}
	return ingredients, nil
}

// loadDrinks parses the drink table against the ingredient index.
func loadDrinks(ctx context.Context, path string, ingredients map[string]*Ingredient) ([]Drink, error) {
	t, err := openTable(path, ColDrinkName, ColPage, ColDrinkIngredient)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	index := make(map[string]int)
	var drinks []Drink

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// drink names are kept as written; only ingredient names are join keys
		name := r.get(ColDrinkName)
		i, ok := index[name]
		if !ok {
			i = len(drinks)
			index[name] = i
			drinks = append(drinks, Drink{Name: name, Ingredients: []string{}})
		}
		// the last row of a drink decides its page
		drinks[i].Page = r.get(ColPage)

		ingName := r.name(ColDrinkIngredient)
		ing, ok := ingredients[ingName]
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeIntegrity,
				"drink references an ingredient missing from the metadata table",
				map[string]any{
					"drink":      name,
					"ingredient": ingName,
					"path":       path,
					"line":       r.line,
				})
		}
		if ing.Bottle {
			drinks[i].Ingredients = append(drinks[i].Ingredients, ingName)
		}
	}
	return drinks, nil
}
