// SPDX-License-Identifier: MIT
// Package minimize finds the minimum terminal value reachable from large
// contiguous ranges of source values without tracing every value.
//
// Inside a run (a maximal stretch of inputs that take the same route through
// every offset map) the input→output mapping is a slope-1 affine shift, so the
// smallest output of a run is produced by its first input. The minimizer
// traces the first input of a run, binary-searches for the run's end with
// search.FirstFalse, and jumps there.
//
// Complexity:
//
//   - Time:   O(R · C · log n · log N), R = runs met, C = chain depth,
//     n = intervals per map, N = range length
//   - Memory: O(C) per range (O(R·C) for Runs, which materializes them)
package minimize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/almanac/chain"
)

var (
	// ErrNoCandidate is returned by Solve when no range produced a terminal value.
	ErrNoCandidate = errors.New("minimize: no candidate value")

	// ErrRangeOverflow indicates a SeedRange whose End does not fit in int64.
	ErrRangeOverflow = errors.New("minimize: range end overflows int64")
)

// SeedRange is the contiguous input range [Start, Start+Count).
type SeedRange struct {
	Start int64
	Count int64
}

// End returns the exclusive upper bound.
func (r SeedRange) End() int64 { return r.Start + r.Count }

// Empty reports whether the range holds no value.
func (r SeedRange) Empty() bool { return r.Count <= 0 }

// Validate returns ErrRangeOverflow when Start+Count wraps. Empty ranges are valid.
func (r SeedRange) Validate() error {
	if r.Count > 0 && r.Start > math.MaxInt64-r.Count {
		return fmt.Errorf("%w: start %d count %d", ErrRangeOverflow, r.Start, r.Count)
	}

	return nil
}

// String renders the range as "[start,end)".
func (r SeedRange) String() string { return fmt.Sprintf("[%d,%d)", r.Start, r.End()) }

// Run is a maximal stretch [Start, End) of inputs sharing one route.
type Run struct {
	Start int64
	End   int64

	// Path is the interval route shared by the run.
	Path chain.Path

	// Category is where traces of this run stop; Final is the image of Start.
	Category string
	Final    int64
}

// Len returns End - Start.
func (r Run) Len() int64 { return r.End - r.Start }

// FinalAt returns the image of x, which must lie in [Start, End).
func (r Run) FinalAt(x int64) int64 { return r.Final + (x - r.Start) }

// Outcome summarizes the minimization of one or more ranges.
type Outcome struct {
	// Min is the smallest terminal value found and ArgMin the input reaching it.
	// Both are meaningful only when Found is true.
	Min    int64
	ArgMin int64
	Found  bool

	// Runs counts the runs visited; Skipped counts runs that stopped outside
	// the terminal category and therefore produced no candidate.
	Runs    int
	Skipped int
}

// Merge folds o2 into o. Ties keep the smaller ArgMin.
func (o Outcome) Merge(o2 Outcome) Outcome {
	out := o
	out.Runs += o2.Runs
	out.Skipped += o2.Skipped
	if o2.Found && (!o.Found || o2.Min < o.Min || (o2.Min == o.Min && o2.ArgMin < o.ArgMin)) {
		out.Min, out.ArgMin, out.Found = o2.Min, o2.ArgMin, true
	}

	return out
}

// RunKey selects what two inputs must share to belong to the same run.
type RunKey int

const (
	// KeySegments compares the index segment hit on every edge. The inputs
	// sharing it always form one contiguous block, so the boundary search is
	// exact.
	KeySegments RunKey = iota

	// KeyPath compares only the interval path. Inputs that fall through
	// identity gaps on both sides of an interval share a path without being
	// contiguous, which breaks the monotonicity the boundary search relies
	// on; results are then an upper bound of the true minimum.
	KeyPath
)

// String returns "segments" or "path".
func (k RunKey) String() string {
	if k == KeyPath {
		return "path"
	}

	return "segments"
}

// ParseRunKey maps "segments" and "path" to a RunKey.
func ParseRunKey(s string) (RunKey, error) {
	switch s {
	case "", "segments":
		return KeySegments, nil
	case "path":
		return KeyPath, nil
	}

	return KeySegments, fmt.Errorf("minimize: unknown run key %q", s)
}

// Observer receives progress callbacks. Implementations must be safe for
// concurrent use: Solve calls them from several goroutines.
type Observer interface {
	// OnTrace is called for every trace, boundary probes included.
	OnTrace(tr chain.Trace)
	// OnRun is called once per run; skipped is true for runs outside the terminal.
	OnRun(run Run, skipped bool)
	// OnRange is called when a range is done.
	OnRange(r SeedRange, out Outcome)
}

// NopObserver ignores every callback.
type NopObserver struct{}

func (NopObserver) OnTrace(chain.Trace)         {}
func (NopObserver) OnRun(Run, bool)             {}
func (NopObserver) OnRange(SeedRange, Outcome) {}

// Option configures Runs, Range and Solve.
type Option func(*options)

type options struct {
	key      RunKey
	terminal string
	observer Observer
	workers  int
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{key: KeySegments, observer: NopObserver{}, logger: slog.Default()}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithRunKey selects the run key; KeySegments by default.
func WithRunKey(k RunKey) Option {
	return func(o *options) { o.key = k }
}

// WithTerminal names the category every trace must end in. Runs stopping
// elsewhere are skipped. Empty (the default) accepts any stop category.
func WithTerminal(category string) Option {
	return func(o *options) { o.terminal = category }
}

// WithObserver installs obs; nil is ignored.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithWorkers bounds the number of ranges Solve processes at once.
// n <= 0 means no bound.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// checkContext returns ctx.Err() without blocking.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
