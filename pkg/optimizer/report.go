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
	"io"
	"os"
)

// Reporter receives each solution of a sweep in increasing count order.
type Reporter interface {
	Report(sol *Solution) error
}

// TextReporter writes solutions as plain text.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a TextReporter writing to w, or to stdout if w is nil.
func NewTextReporter(w io.Writer) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{w: w}
}

// Report implements Reporter.
func (r *TextReporter) Report(sol *Solution) error {
	return WriteText(r.w, sol)
}

// WriteText writes one solution in the text report layout.
func WriteText(w io.Writer, sol *Solution) error {
	if sol == nil || !sol.Status.Solved() {
		_, err := fmt.Fprintln(w, "No solution found.")
		return err
	}

	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	printf("Max drinks with %d ingredients (%s): %d\n", sol.Count, sol.Status, sol.DrinksPossible)
	printf("Ingredients to buy:\n")
	for _, name := range sol.Ingredients {
		printf("- %s\n", name)
	}
	printf("\nDrinks you can make:\n")
	for _, name := range sol.Drinks {
		printf("- %s\n", name)
	}
	return err
}

// WriteSweepText writes every solution of a sweep in the text report layout.
func WriteSweepText(w io.Writer, s *Sweep) error {
	for _, sol := range s.Solutions {
		if err := WriteText(w, sol); err != nil {
			return err
		}
	}
	return nil
}
