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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Per-count solve metrics
	solveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backbar_solve_duration_seconds",
			Help:    "Time taken to solve one bottle count",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"status"}, // OPTIMAL, FEASIBLE, INFEASIBLE, UNKNOWN
	)

	solveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backbar_solve_total",
			Help: "Total number of solves by outcome",
		},
		[]string{"status"},
	)

	drinksPossible = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "backbar_drinks_possible",
			Help: "Objective value of the last solution for a bottle count",
		},
		[]string{"count"},
	)

	// Sweep metrics
	sweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "backbar_sweep_duration_seconds",
			Help:    "Time taken to solve a complete range of bottle counts",
			Buckets: []float64{1, 5, 10, 30, 60, 300, 900},
		},
	)

	sweepTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backbar_sweep_total",
			Help: "Total number of sweeps",
		},
		[]string{"status"}, // success or error
	)
)

func observeSolution(sol *Solution) {
	status := sol.Status.String()
	solveDuration.WithLabelValues(status).Observe(sol.Duration.Seconds())
	solveTotal.WithLabelValues(status).Inc()
	if sol.Status.Solved() {
		drinksPossible.WithLabelValues(strconv.Itoa(sol.Count)).Set(float64(sol.DrinksPossible))
	}
}

// WriteMetrics writes the current value of all registered metrics to path in
// the Prometheus text exposition format, for pickup by a node exporter
// textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
