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

// Package catalog loads the drink and ingredient tables that feed the optimizer.
//
// Two CSV tables are joined:
//
//   - the ingredient metadata table with columns ingredient, bottle, recipe, price
//   - the drink table with columns Drink Name, Page, Ingredient (one row per
//     required ingredient)
//
// Only ingredients flagged as bottles (bottle column equal to "TRUE") are kept
// in a drink's requirement list; syrups, infusions and other prepared
// components are dropped silently. A drink row naming an ingredient that the
// metadata table does not define is a fatal integrity error.
//
// Ingredient names are trimmed and NFC-normalized on both tables before they
// are matched. Drink names are kept exactly as written, so two rows that differ
// only in spacing name two drinks.
//
// Every load writes the resulting drink list to a snapshot file (index.json by
// default). ReadSnapshot loads it back in place of the tables.
//
// Usage:
//
//	cat, err := catalog.Load(ctx, catalog.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	for _, d := range cat.Drinks {
//		fmt.Println(d.Name, d.Ingredients)
//	}
package catalog
