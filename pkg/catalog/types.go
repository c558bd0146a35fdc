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
	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

const (
	// DefaultMetadataPath is the ingredient metadata table.
	DefaultMetadataPath = defaults.MetadataPath
	// DefaultDrinksPath is the drink/ingredient association table.
	DefaultDrinksPath = defaults.DrinksPath
	// DefaultSnapshotPath is where the loaded drink list is written.
	DefaultSnapshotPath = defaults.SnapshotPath

	// boolTrue is the only value of the bottle and recipe columns read as true.
	boolTrue = "TRUE"
)

// Column names of the ingredient metadata table.
const (
	ColIngredient = "ingredient"
	ColBottle     = "bottle"
	ColRecipe     = "recipe"
	ColPrice      = "price"
)

// Column names of the drink table.
const (
	ColDrinkName       = "Drink Name"
	ColPage            = "Page"
	ColDrinkIngredient = "Ingredient"
)

// Ingredient describes one row of the metadata table.
type Ingredient struct {
	Name   string `json:"name" yaml:"name"`
	Bottle bool   `json:"bottle" yaml:"bottle"`
	Recipe bool   `json:"recipe" yaml:"recipe"`
	// Price is free-form text and is never parsed.
	Price string `json:"price" yaml:"price"`
}

// Drink is a recipe reduced to the bottles it needs.
type Drink struct {
	Name        string   `json:"name" yaml:"name"`
	Page        string   `json:"page" yaml:"page"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}

// Catalog is the result of one load.
type Catalog struct {
	// Ingredients indexes the metadata table by normalized name.
	Ingredients map[string]*Ingredient `json:"-" yaml:"-"`

	// Drinks in first-encounter order of the drink table.
	Drinks []Drink `json:"drinks" yaml:"drinks"`
}

// BottleNames returns the distinct ingredient names required by at least one
// drink, in first-seen order.
func (c *Catalog) BottleNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, d := range c.Drinks {
		for _, name := range d.Ingredients {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Options controls where the loader reads and writes.
type Options struct {
	MetadataPath string
	DrinksPath   string

	// SnapshotPath receives the drink list. Empty disables the snapshot.
	SnapshotPath   string
	SnapshotFormat serializer.Format
}

// DefaultOptions returns the file names the tool has always used.
func DefaultOptions() Options {
	return Options{
		MetadataPath:   DefaultMetadataPath,
		DrinksPath:     DefaultDrinksPath,
		SnapshotPath:   DefaultSnapshotPath,
		SnapshotFormat: serializer.FormatJSON,
	}
}
