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

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/config"
)

func drinksCmd() *cli.Command {
	return &cli.Command{
		Name:  "drinks",
		Usage: "Load the tables and list every drink with the bottles it needs",
		Description: `Join the ingredient metadata table with the drink table, drop ingredients
that are not bottles, write the drink snapshot and print the result.

  backbar drinks --format yaml`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := configFromCmd(cmd)
			if err != nil {
				return err
			}

			drinks, err := loadDrinks(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			w, closeOutput, err := openOutput(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeOutput()

			if cfg.OutputFormat() == config.FormatText {
				return writeDrinksText(w, drinks)
			}
			return writeStructured(ctx, w, cfg, drinkList(drinks))
		},
	}
}

// drinkList renders a drink list as a table.
type drinkList []catalog.Drink

func (d drinkList) TableHeader() []string {
	return []string{"NAME", "PAGE", "BOTTLES"}
}

func (d drinkList) TableRows() [][]string {
	rows := make([][]string, 0, len(d))
	for _, drink := range d {
		rows = append(rows, []string{drink.Name, drink.Page, strings.Join(drink.Ingredients, ", ")})
	}
	return rows
}

func writeDrinksText(w io.Writer, drinks []catalog.Drink) error {
	cat := &catalog.Catalog{Drinks: drinks}
	if _, err := fmt.Fprintf(w, "%d drinks using %d bottles\n", len(drinks), len(cat.BottleNames())); err != nil {
		return err
	}
	for _, d := range drinks {
		page := ""
		if d.Page != "" {
			page = fmt.Sprintf(" (p. %s)", d.Page)
		}
		if _, err := fmt.Fprintf(w, "- %s%s: %s\n", d.Name, page, strings.Join(d.Ingredients, ", ")); err != nil {
			return err
		}
	}
	return nil
}
