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
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/serializer"
)

func TestRange_Counts(t *testing.T) {
	tests := []struct {
		name string
		rng  Range
		want []int
	}{
		{name: "single", rng: Range{Min: 3, Max: 4, Step: 1}, want: []int{3}},
		{name: "step", rng: Range{Min: 0, Max: 10, Step: 3}, want: []int{0, 3, 6, 9}},
		{name: "empty", rng: Range{Min: 4, Max: 4, Step: 1}, want: []int{}},
		{name: "invalid", rng: Range{Min: 4, Max: 1, Step: 1}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rng.Counts())
		})
	}
}

func TestRange_Default(t *testing.T) {
	counts := DefaultRange().Counts()
	require.Len(t, counts, 69)
	assert.Equal(t, 3, counts[0])
	assert.Equal(t, 71, counts[len(counts)-1])
}

func TestRange_Validate(t *testing.T) {
	assert.NoError(t, DefaultRange().Validate())
	for _, r := range []Range{
		{Min: -1, Max: 3, Step: 1},
		{Min: 5, Max: 3, Step: 1},
		{Min: 1, Max: 3, Step: 0},
	} {
		err := r.Validate()
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest), "range %+v", r)
	}
}

func TestParseLinkMode(t *testing.T) {
	tests := []struct {
		in      string
		want    LinkMode
		wantErr bool
	}{
		{in: "", want: LinkEquivalence},
		{in: "equiv", want: LinkEquivalence},
		{in: " IMPLIES ", want: LinkImplication},
		{in: "both", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLinkMode(tt.in)
			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Solved(t *testing.T) {
	assert.True(t, StatusOptimal.Solved())
	assert.True(t, StatusFeasible.Solved())
	assert.False(t, StatusInfeasible.Solved())
	assert.False(t, StatusUnknown.Solved())
	assert.Equal(t, "OPTIMAL", StatusOptimal.String())
}

func TestSweep_MonotonicityViolations(t *testing.T) {
	s := &Sweep{Solutions: []*Solution{
		{Count: 1, Status: StatusOptimal, DrinksPossible: 2},
		{Count: 2, Status: StatusOptimal, DrinksPossible: 3},
		{Count: 3, Status: StatusFeasible, DrinksPossible: 0},
		{Count: 4, Status: StatusOptimal, DrinksPossible: 1},
		{Count: 5, Status: StatusInfeasible},
		{Count: 6, Status: StatusOptimal, DrinksPossible: 4},
	}}

	assert.Equal(t, []Violation{{From: 2, To: 4, FromDrinks: 3, ToDrinks: 1}}, s.MonotonicityViolations())
}

func TestSweep_Table(t *testing.T) {
	s := &Sweep{Solutions: []*Solution{
		{Count: 2, Status: StatusOptimal, DrinksPossible: 2, Ingredients: []string{"Bourbon", "Angostura Bitters"}, Duration: 1500 * time.Microsecond},
		{Count: 13, Status: StatusInfeasible},
	}}

	var buf bytes.Buffer
	w := serializer.NewWriter(serializer.FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), s))

	out := buf.String()
	assert.Contains(t, out, "COUNT")
	assert.Contains(t, out, "Bourbon, Angostura Bitters")
	assert.Contains(t, out, "INFEASIBLE")
	assert.Equal(t, [][]string{
		{"2", "OPTIMAL", "2", "Bourbon, Angostura Bitters", "2ms"},
		{"13", "INFEASIBLE", "-", "", "0s"},
	}, s.TableRows())
}

func TestSweep_JSONInlinesHeader(t *testing.T) {
	d := NewDriver(bruteForce{}, WithRange(Range{Min: 1, Max: 2, Step: 1}), WithRunID("abc"))
	s, err := d.Sweep(context.Background(), cocktails())
	require.NoError(t, err)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "SweepResult", doc["kind"])
	assert.Equal(t, APIVersion, doc["apiVersion"])
	assert.Equal(t, "abc", doc["metadata"].(map[string]any)["run-id"])
	assert.Len(t, doc["solutions"], 1)
}
