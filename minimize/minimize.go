// SPDX-License-Identifier: MIT

package minimize

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/search"
)

// walk visits the runs of [start, end) in ascending order.
//
// Steps:
//  1. Trace currentStart; that trace describes the whole run.
//  2. Binary-search the first x whose trace no longer shares the run key.
//  3. Hand the run to fn and continue from x.
//
// An empty range visits nothing.
func walk(ctx context.Context, reg *chain.Registry, category string, start, end int64, o options, fn func(Run) error) error {
	cur := start
	for cur < end {
		if err := checkContext(ctx); err != nil {
			return err
		}

		// 1) Head of the run.
		head, err := reg.Trace(category, cur)
		o.observer.OnTrace(head)
		if err != nil {
			return fmt.Errorf("minimize: trace %q at %d: %w", category, cur, err)
		}

		// 2) Run boundary. pred(cur) is true by construction, so search from cur+1.
		next := search.FirstFalse(cur+1, end, func(x int64) bool {
			tr, err := reg.Trace(category, x)
			o.observer.OnTrace(tr)

			return err == nil && sameRun(o.key, head, tr)
		})

		// 3) Emit.
		run := Run{Start: cur, End: next, Path: head.Path, Category: head.Category, Final: head.Final}
		if err = fn(run); err != nil {
			return err
		}
		cur = next
	}

	return nil
}

// sameRun compares two traces under key.
func sameRun(key RunKey, a, b chain.Trace) bool {
	if key == KeyPath {
		return a.Path.Equal(b.Path)
	}

	return slices.Equal(a.Segments, b.Segments)
}

// Runs enumerates the runs of [start, end) in ascending order.
func Runs(ctx context.Context, reg *chain.Registry, category string, start, end int64, opts ...Option) ([]Run, error) {
	o := applyOptions(opts)
	var runs []Run
	err := walk(ctx, reg, category, start, end, o, func(r Run) error {
		runs = append(runs, r)
		o.observer.OnRun(r, o.terminal != "" && r.Category != o.terminal)

		return nil
	})

	return runs, err
}

// Range returns the minimum terminal value reachable from r.
//
// The candidate of each run is the image of its first input. With
// WithTerminal, runs that stop in another category are counted in Skipped and
// contribute nothing. An empty range yields Found == false and no error; a
// range whose end overflows int64 yields ErrRangeOverflow.
func Range(ctx context.Context, reg *chain.Registry, category string, r SeedRange, opts ...Option) (Outcome, error) {
	return rangeWith(ctx, reg, category, r, applyOptions(opts))
}

func rangeWith(ctx context.Context, reg *chain.Registry, category string, r SeedRange, o options) (Outcome, error) {
	var out Outcome
	if err := r.Validate(); err != nil {
		return out, err
	}
	err := walk(ctx, reg, category, r.Start, r.End(), o, func(run Run) error {
		out.Runs++
		skipped := o.terminal != "" && run.Category != o.terminal
		o.observer.OnRun(run, skipped)
		if skipped {
			out.Skipped++
			return nil
		}
		out = out.Merge(Outcome{Min: run.Final, ArgMin: run.Start, Found: true})

		return nil
	})
	if err != nil {
		return out, err
	}
	o.observer.OnRange(r, out)

	return out, nil
}

// Solve minimizes every range concurrently and returns the overall minimum.
//
// Ranges are independent: each goroutine reads the shared immutable registry
// and writes only its own slot. WithWorkers bounds the parallelism. The first
// failing range cancels the others. ErrNoCandidate is returned when no range
// produced a value.
func Solve(ctx context.Context, reg *chain.Registry, category string, ranges []SeedRange, opts ...Option) (Outcome, error) {
	o := applyOptions(opts)

	g, gctx := errgroup.WithContext(ctx)
	if o.workers > 0 {
		g.SetLimit(o.workers)
	}

	outs := make([]Outcome, len(ranges))
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			out, err := rangeWith(gctx, reg, category, r, o)
			if err != nil {
				return fmt.Errorf("minimize: range %d %s: %w", i, r, err)
			}
			outs[i] = out
			o.logger.Debug("minimize: range done",
				slog.Int("range", i),
				slog.String("span", r.String()),
				slog.Int("runs", out.Runs),
				slog.Bool("found", out.Found),
				slog.Int64("min", out.Min))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	var total Outcome
	for _, out := range outs {
		total = total.Merge(out)
	}
	if !total.Found {
		return total, ErrNoCandidate
	}

	return total, nil
}

// Singles turns individual values into ranges of one.
func Singles(values []int64) []SeedRange {
	out := make([]SeedRange, len(values))
	for i, v := range values {
		out[i] = SeedRange{Start: v, Count: 1}
	}

	return out
}
