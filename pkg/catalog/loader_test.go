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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

// writeTables writes the two tables into a temp dir and returns options pointing at them.
func writeTables(t *testing.T, metadata, drinks string) Options {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		MetadataPath:   filepath.Join(dir, "metadata.csv"),
		DrinksPath:     filepath.Join(dir, "index.csv"),
		SnapshotPath:   filepath.Join(dir, "index.json"),
		SnapshotFormat: serializer.FormatJSON,
	}
	require.NoError(t, os.WriteFile(opts.MetadataPath, []byte(metadata), 0o600))
	require.NoError(t, os.WriteFile(opts.DrinksPath, []byte(drinks), 0o600))
	return opts
}

func testdataOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		MetadataPath:   filepath.Join("testdata", "metadata.csv"),
		DrinksPath:     filepath.Join("testdata", "index.csv"),
		SnapshotPath:   filepath.Join(t.TempDir(), "index.json"),
		SnapshotFormat: serializer.FormatJSON,
	}
}

func TestLoad_FiltersNonBottles(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,TRUE,FALSE,$1\nB,TRUE,FALSE,$2\nC,FALSE,TRUE,\n",
		"Drink Name,Page,Ingredient\nD1,1,A\nD1,1,B\nD1,1,C\n",
	)

	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "D1", drinks[0].Name)
	assert.Equal(t, []string{"A", "B"}, drinks[0].Ingredients)
}

func TestLoad_Testdata(t *testing.T) {
	cat, err := Load(context.Background(), testdataOptions(t))
	require.NoError(t, err)

	want := []Drink{
		{Name: "Last Word", Page: "12", Ingredients: []string{"London Dry Gin", "Green Chartreuse", "Maraschino Liqueur"}},
		{Name: "Negroni", Page: "14", Ingredients: []string{"London Dry Gin", "Campari", "Sweet Vermouth"}},
		{Name: "Boulevardier", Page: "15", Ingredients: []string{"Bourbon", "Campari", "Sweet Vermouth"}},
		{Name: "Old Fashioned", Page: "20", Ingredients: []string{"Bourbon", "Angostura Bitters"}},
		{Name: "Manhattan", Page: "21", Ingredients: []string{"Rye Whiskey", "Sweet Vermouth", "Angostura Bitters"}},
		{Name: "Paper Plane", Page: "30", Ingredients: []string{"Bourbon", "Aperol", "Amaro Nonino"}},
		{Name: "Margarita", Page: "41", Ingredients: []string{"Blanco Tequila", "Cointreau"}},
		{Name: "Whiskey Sour", Page: "45", Ingredients: []string{"Bourbon"}},
	}
	assert.Equal(t, want, cat.Drinks)

	assert.Equal(t, []string{
		"London Dry Gin", "Green Chartreuse", "Maraschino Liqueur", "Campari", "Sweet Vermouth",
		"Bourbon", "Angostura Bitters", "Rye Whiskey", "Aperol", "Amaro Nonino",
		"Blanco Tequila", "Cointreau",
	}, cat.BottleNames())
}

func TestLoad_EveryIngredientIsAKnownBottle(t *testing.T) {
	cat, err := Load(context.Background(), testdataOptions(t))
	require.NoError(t, err)

	for _, d := range cat.Drinks {
		for _, name := range d.Ingredients {
			ing, ok := cat.Ingredients[name]
			if assert.True(t, ok, "drink %q uses unknown ingredient %q", d.Name, name) {
				assert.True(t, ing.Bottle, "drink %q uses non-bottle %q", d.Name, name)
			}
		}
	}
}

func TestLoad_FirstIngredientRowWins(t *testing.T) {
	cat, err := Load(context.Background(), testdataOptions(t))
	require.NoError(t, err)

	gin := cat.Ingredients["London Dry Gin"]
	require.NotNil(t, gin)
	assert.True(t, gin.Bottle)
	assert.Equal(t, "$25", gin.Price)
	assert.False(t, cat.Ingredients["Simple Syrup"].Bottle)
	assert.True(t, cat.Ingredients["Simple Syrup"].Recipe)
}

func TestLoad_LastPageWins(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,TRUE,FALSE,\n",
		"Drink Name,Page,Ingredient\nD,10,A\nOther,3,A\nD,11,A\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, drinks, 2)
	assert.Equal(t, "D", drinks[0].Name)
	assert.Equal(t, "11", drinks[0].Page)
	assert.Equal(t, "Other", drinks[1].Name)
}

func TestLoad_DuplicateRowsKept(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,TRUE,FALSE,\n",
		"Drink Name,Page,Ingredient\nD,1,A\nD,1,A\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A"}, drinks[0].Ingredients)
}

func TestLoad_OnlyTRUEIsTrue(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,true,FALSE,\nB,TRUE,FALSE,\nC,yes,FALSE,\n",
		"Drink Name,Page,Ingredient\nD,1,A\nD,1,B\nD,1,C\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, drinks[0].Ingredients)
}

func TestLoad_NoBottlesGivesEmptyList(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nSyrup,FALSE,TRUE,\n",
		"Drink Name,Page,Ingredient\nMocktail,1,Syrup\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.NotNil(t, drinks[0].Ingredients)
	assert.Empty(t, drinks[0].Ingredients)
}

func TestLoad_NormalizesNames(t *testing.T) {
	// composed "è" in the metadata, decomposed "e" + U+0300 in the drink table
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nCr\u00e8me de Cassis,TRUE,FALSE,\n",
		"Drink Name,Page,Ingredient\nKir,2, Cre\u0300me de Cassis \n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Kir", drinks[0].Name)
	assert.Equal(t, []string{"Cr\u00e8me de Cassis"}, drinks[0].Ingredients)
}

func TestLoad_KeepsDrinkNamesAsWritten(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nRum,TRUE,FALSE,\nOrgeat,TRUE,FALSE,\n",
		"Drink Name,Page,Ingredient\nMai Tai,10,Rum\nMai Tai ,11,Orgeat\nCre\u0300me Brulee,12,Rum\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, drinks, 3)

	assert.Equal(t, Drink{Name: "Mai Tai", Page: "10", Ingredients: []string{"Rum"}}, drinks[0])
	assert.Equal(t, Drink{Name: "Mai Tai ", Page: "11", Ingredients: []string{"Orgeat"}}, drinks[1])
	assert.Equal(t, "Cre\u0300me Brulee", drinks[2].Name)

	snap, err := ReadSnapshot(opts.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, drinks, snap)
}

func TestLoad_ToleratesBOM(t *testing.T) {
	opts := writeTables(t,
		"\ufeffingredient,bottle,recipe,price\nA,TRUE,FALSE,\n",
		"\ufeff\"Drink Name\",Page,Ingredient\nD,1,A\n",
	)
	drinks, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, drinks[0].Ingredients)
}

func TestLoad_ShortRowsReadAsEmpty(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,TRUE\n",
		"Drink Name,Page,Ingredient\nD,1,A\n",
	)
	cat, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, cat.Ingredients["A"].Bottle)
	assert.Empty(t, cat.Ingredients["A"].Price)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		drinks   string
		mutate   func(*Options)
		wantCode errors.ErrorCode
	}{
		{
			name:     "unknown ingredient",
			metadata: "ingredient,bottle,recipe,price\nA,TRUE,FALSE,\n",
			drinks:   "Drink Name,Page,Ingredient\nD,1,A\nD,1,Mystery\n",
			wantCode: errors.ErrCodeIntegrity,
		},
		{
			name:     "missing metadata table",
			metadata: "ingredient,bottle,recipe,price\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			mutate:   func(o *Options) { o.MetadataPath += ".missing" },
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "missing drink table",
			metadata: "ingredient,bottle,recipe,price\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			mutate:   func(o *Options) { o.DrinksPath += ".missing" },
			wantCode: errors.ErrCodeNotFound,
		},
		{
			name:     "missing column",
			metadata: "ingredient,bottle,price\nA,TRUE,\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "empty drink table",
			metadata: "ingredient,bottle,recipe,price\n",
			drinks:   "",
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "malformed csv",
			metadata: "ingredient,bottle,recipe,price\n\"A,TRUE,FALSE,\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "table snapshot format",
			metadata: "ingredient,bottle,recipe,price\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			mutate:   func(o *Options) { o.SnapshotFormat = serializer.FormatTable },
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "unwritable snapshot",
			metadata: "ingredient,bottle,recipe,price\n",
			drinks:   "Drink Name,Page,Ingredient\n",
			mutate:   func(o *Options) { o.SnapshotPath = filepath.Join(o.SnapshotPath, "nested", "index.json") },
			wantCode: errors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := writeTables(t, tt.metadata, tt.drinks)
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			_, err := Load(context.Background(), opts)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err), "error: %v", err)
		})
	}
}

func TestLoad_IntegrityErrorContext(t *testing.T) {
	opts := writeTables(t,
		"ingredient,bottle,recipe,price\nA,TRUE,FALSE,\n",
		"Drink Name,Page,Ingredient\nD,1,A\nD,1,Mystery\n",
	)
	_, err := Load(context.Background(), opts)

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "D", se.Context["drink"])
	assert.Equal(t, "Mystery", se.Context["ingredient"])
	assert.Equal(t, 3, se.Context["line"])
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, testdataOptions(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Deterministic(t *testing.T) {
	opts := testdataOptions(t)

	first, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	firstSnap, err := os.ReadFile(opts.SnapshotPath)
	require.NoError(t, err)

	second, err := LoadDrinks(context.Background(), opts)
	require.NoError(t, err)
	secondSnap, err := os.ReadFile(opts.SnapshotPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSnap, secondSnap)
}

func TestLoad_NoSnapshot(t *testing.T) {
	opts := testdataOptions(t)
	path := opts.SnapshotPath
	opts.SnapshotPath = ""

	_, err := Load(context.Background(), opts)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
