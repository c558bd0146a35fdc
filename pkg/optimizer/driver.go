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
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/backbar/pkg/catalog"
	"github.com/NVIDIA/backbar/pkg/defaults"
	"github.com/NVIDIA/backbar/pkg/errors"
	"github.com/NVIDIA/backbar/pkg/header"
)

// MetadataLink records the link mode a sweep was solved with.
const MetadataLink = "link"

// Driver solves the bottle selection problem for each count of a range.
type Driver struct {
	solver   Solver
	rng      Range
	link     LinkMode
	timeout  time.Duration
	parallel int
	reporter Reporter
	version  string
	runID    string
}

// Option is a functional option for configuring a Driver.
type Option func(*Driver)

// WithRange sets the counts visited by Sweep.
func WithRange(r Range) Option {
	return func(d *Driver) {
		d.rng = r
	}
}

// WithLinkMode sets how drinks are tied to their ingredients.
func WithLinkMode(link LinkMode) Option {
	return func(d *Driver) {
		d.link = link
	}
}

// WithTimeout bounds each solve. Zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// WithParallel sets how many counts are solved at once.
func WithParallel(n int) Option {
	return func(d *Driver) {
		d.parallel = n
	}
}

// WithReporter sets a Reporter that receives every solution of a sweep.
func WithReporter(r Reporter) Option {
	return func(d *Driver) {
		d.reporter = r
	}
}

// WithVersion sets the tool version stamped into sweep headers.
func WithVersion(version string) Option {
	return func(d *Driver) {
		d.version = version
	}
}

// WithRunID sets the run id stamped into sweep headers. A random id is used
// when none is set.
func WithRunID(id string) Option {
	return func(d *Driver) {
		d.runID = id
	}
}

// NewDriver creates a Driver that delegates solving to s.
func NewDriver(s Solver, opts ...Option) *Driver {
	d := &Driver{
		solver:   s,
		rng:      DefaultRange(),
		link:     LinkEquivalence,
		timeout:  defaults.SolveTimeout,
		parallel: defaults.Parallel,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.parallel < 1 {
		d.parallel = 1
	}
	if d.link == "" {
		d.link = LinkEquivalence
	}
	return d
}

// SolveCount finds the purchase set of exactly count bottles that makes the
// most drinks. Infeasible and unknown outcomes are returned as a Solution,
// not an error. An error is returned when ctx ends, when the solver fails, or
// when the solver's answer does not satisfy the model.
func (d *Driver) SolveCount(ctx context.Context, drinks []catalog.Drink, count int) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.solver == nil {
		return nil, errors.New(errors.ErrCodeInternal, "no solver configured")
	}

	m := BuildModel(drinks, count, d.link)

	solveCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	a, err := d.solver.Solve(solveCtx, m)
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "solver failed", err,
			map[string]any{"count": count})
	}
	if a == nil {
		return nil, errors.NewWithContext(errors.ErrCodeInternal, "solver returned no assignment",
			map[string]any{"count": count})
	}

	sol := decode(m, a, count)
	sol.Duration = elapsed

	if err := Verify(drinks, sol); err != nil {
		return nil, err
	}

	if sol.Status == StatusUnknown && solveCtx.Err() != nil {
		slog.Warn("solve timed out before any solution was found",
			"code", errors.ErrCodeTimeout,
			"count", count,
			"timeout", d.timeout)
	}

	observeSolution(sol)

	slog.Debug("solved count",
		"count", count,
		"status", sol.Status.String(),
		"drinks", sol.DrinksPossible,
		"vars", m.NumVars(),
		"clauses", len(m.Clauses),
		"duration", elapsed)

	return sol, nil
}

// Sweep solves every count of the configured range. Solutions are returned,
// and passed to the Reporter if one is set, in increasing count order even
// when counts are solved in parallel. The first error stops the sweep.
func (d *Driver) Sweep(ctx context.Context, drinks []catalog.Drink) (*Sweep, error) {
	if err := d.rng.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		sweepDuration.Observe(time.Since(start).Seconds())
	}()

	counts := d.rng.Counts()
	sweep := d.newSweep()
	sweep.Solutions = make([]*Solution, len(counts))

	slog.Debug("starting sweep",
		"min", d.rng.Min,
		"max", d.rng.Max,
		"step", d.rng.Step,
		"counts", len(counts),
		"drinks", len(drinks),
		"parallel", d.parallel,
		"link", string(d.link))

	var (
		mu   sync.Mutex
		next int
	)

	// flush reports every solution that is ready and follows the last
	// reported one. Callers hold mu.
	flush := func() error {
		for next < len(counts) && sweep.Solutions[next] != nil {
			if d.reporter != nil {
				if err := d.reporter.Report(sweep.Solutions[next]); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, "failed to report solution", err)
				}
			}
			next++
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallel)

	for i, count := range counts {
		g.Go(func() error {
			sol, err := d.SolveCount(gctx, drinks, count)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			sweep.Solutions[i] = sol
			return flush()
		})
	}

	if err := g.Wait(); err != nil {
		sweepTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	sweepTotal.WithLabelValues("success").Inc()

	for _, v := range sweep.MonotonicityViolations() {
		slog.Warn("optimum decreased as bottle count increased",
			"from", v.From,
			"to", v.To,
			"from_drinks", v.FromDrinks,
			"to_drinks", v.ToDrinks)
	}

	slog.Debug("sweep complete", "counts", len(counts), "duration", time.Since(start))
	return sweep, nil
}

func (d *Driver) newSweep() *Sweep {
	s := &Sweep{}
	s.Init(header.KindSweepResult, APIVersion, d.version)

	runID := d.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	s.Set(header.MetadataRunID, runID)
	s.Set(MetadataMin, strconv.Itoa(d.rng.Min))
	s.Set(MetadataMax, strconv.Itoa(d.rng.Max))
	s.Set(MetadataStep, strconv.Itoa(d.rng.Step))
	s.Set(MetadataLink, string(d.link))
	return s
}
