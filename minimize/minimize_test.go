package minimize_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/internal/fixture"
	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/minimize"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func build(t *testing.T, blocks []chain.Block, opts ...chain.Option) *chain.Registry {
	t.Helper()
	reg, err := chain.Build(blocks, append([]chain.Option{chain.WithLogger(quietLogger)}, opts...)...)
	require.NoError(t, err)

	return reg
}

// exampleRanges pairs the reference seeds into ranges.
func exampleRanges() []minimize.SeedRange {
	s := fixture.ExampleSeeds
	return []minimize.SeedRange{{Start: s[0], Count: s[1]}, {Start: s[2], Count: s[3]}}
}

// counter counts observer callbacks.
type counter struct {
	traces, runs, skipped, ranges atomic.Int64
}

func (c *counter) OnTrace(chain.Trace) { c.traces.Add(1) }
func (c *counter) OnRun(_ minimize.Run, skipped bool) {
	c.runs.Add(1)
	if skipped {
		c.skipped.Add(1)
	}
}
func (c *counter) OnRange(minimize.SeedRange, minimize.Outcome) { c.ranges.Add(1) }

func TestSolve_ExampleRanges(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	out, err := minimize.Solve(context.Background(), reg, "seed", exampleRanges(),
		minimize.WithTerminal("location"), minimize.WithLogger(quietLogger))
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, int64(46), out.Min)

	v, err := reg.Final("seed", out.ArgMin)
	require.NoError(t, err)
	assert.Equal(t, int64(46), v)
	assert.Zero(t, out.Skipped)
}

func TestSolve_ExampleSeeds(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	out, err := minimize.Solve(context.Background(), reg, "seed", minimize.Singles(fixture.ExampleSeeds),
		minimize.WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, int64(35), out.Min)
	assert.Equal(t, int64(13), out.ArgMin)
	assert.Equal(t, 4, out.Runs)
}

// TestRange_SingleRun returns the final value at the range start.
func TestRange_SingleRun(t *testing.T) {
	reg := build(t, []chain.Block{{
		From: "a", To: "b",
		Intervals: []interval.Interval{{Start: 100, End: 1_000_000, Base: 7}},
	}})
	out, err := minimize.Range(context.Background(), reg, "a", minimize.SeedRange{Start: 500, Count: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Runs)
	assert.Equal(t, int64(7+400), out.Min)
	assert.Equal(t, int64(500), out.ArgMin)
}

// TestRange_Empty yields no candidate without error.
func TestRange_Empty(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	c := &counter{}
	out, err := minimize.Range(context.Background(), reg, "seed", minimize.SeedRange{Start: 10, Count: 0},
		minimize.WithObserver(c))
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Zero(t, out.Runs)
	assert.Zero(t, c.traces.Load())

	_, err = minimize.Solve(context.Background(), reg, "seed", []minimize.SeedRange{{Start: 1}})
	assert.ErrorIs(t, err, minimize.ErrNoCandidate)

	_, err = minimize.Solve(context.Background(), reg, "seed", nil)
	assert.ErrorIs(t, err, minimize.ErrNoCandidate)
}

func TestRange_EndOverflow(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	c := &counter{}
	r := minimize.SeedRange{Start: math.MaxInt64 - 5, Count: 10}

	_, err := minimize.Range(context.Background(), reg, "seed", r, minimize.WithObserver(c))
	assert.ErrorIs(t, err, minimize.ErrRangeOverflow)
	assert.Zero(t, c.traces.Load())

	_, err = minimize.Solve(context.Background(), reg, "seed", []minimize.SeedRange{{Start: 79, Count: 14}, r})
	assert.ErrorIs(t, err, minimize.ErrRangeOverflow)

	// The last representable value is still reachable.
	out, err := minimize.Range(context.Background(), reg, "seed", minimize.SeedRange{Start: math.MaxInt64 - 5, Count: 5})
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, int64(math.MaxInt64-5), out.Min)
}

// TestRange_IdentityGap shows why runs are keyed by segment: with the plain
// path key the inputs left and right of [5,10) share path [0] and the search
// jumps over the interval holding the minimum.
func TestRange_IdentityGap(t *testing.T) {
	reg := build(t, []chain.Block{{
		From: "a", To: "b",
		Intervals: []interval.Interval{{Start: 5, End: 10, Base: 0}},
	}})
	r := minimize.SeedRange{Start: 1, Count: 19}

	exact, err := minimize.Range(context.Background(), reg, "a", r)
	require.NoError(t, err)
	assert.Equal(t, int64(0), exact.Min)
	assert.Equal(t, int64(5), exact.ArgMin)
	assert.Equal(t, 3, exact.Runs)

	byPath, err := minimize.Range(context.Background(), reg, "a", r, minimize.WithRunKey(minimize.KeyPath))
	require.NoError(t, err)
	assert.Equal(t, int64(1), byPath.Min)
	assert.GreaterOrEqual(t, byPath.Min, exact.Min)
}

// TestRuns_PartitionAndBruteForce checks runs against per-value tracing on random chains.
func TestRuns_PartitionAndBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for round := 0; round < 30; round++ {
		reg := build(t, fixture.RandomBlocks(rng, 1+rng.Intn(5), 6, 120))
		start := rng.Int63n(60) - 20
		end := start + 1 + rng.Int63n(200)

		runs, err := minimize.Runs(context.Background(), reg, "c0", start, end)
		require.NoError(t, err)
		require.NotEmpty(t, runs)
		require.Equal(t, start, runs[0].Start)
		require.Equal(t, end, runs[len(runs)-1].End)

		best := int64(1 << 62)
		for i, run := range runs {
			require.Less(t, run.Start, run.End)
			if i > 0 {
				require.Equal(t, runs[i-1].End, run.Start, "runs must be contiguous")
			}
			for x := run.Start; x < run.End; x++ {
				tr, err := reg.Trace("c0", x)
				require.NoError(t, err)
				require.Equal(t, run.FinalAt(x), tr.Final, "round %d x %d", round, x)
				require.True(t, run.Path.Equal(tr.Path))
				best = min(best, tr.Final)
			}
		}

		out, err := minimize.Range(context.Background(), reg, "c0", minimize.SeedRange{Start: start, Count: end - start})
		require.NoError(t, err)
		require.Equal(t, best, out.Min, "round %d", round)
		require.Equal(t, len(runs), out.Runs)
	}
}

// TestRange_HugeRangeFewTraces covers a billion-wide range with few traces.
func TestRange_HugeRangeFewTraces(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	c := &counter{}
	out, err := minimize.Range(context.Background(), reg, "seed",
		minimize.SeedRange{Start: 0, Count: 4_000_000_000}, minimize.WithObserver(c))
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, int64(0), out.Min)
	assert.Less(t, c.traces.Load(), int64(5000))
	assert.Equal(t, int64(out.Runs), c.runs.Load())
	assert.Equal(t, int64(1), c.ranges.Load())
}

// TestRange_StructuralViolation skips runs that stop before the terminal.
func TestRange_StructuralViolation(t *testing.T) {
	reg := build(t, []chain.Block{{From: "seed", To: "soil"}})
	c := &counter{}
	out, err := minimize.Range(context.Background(), reg, "seed", minimize.SeedRange{Start: 0, Count: 10},
		minimize.WithTerminal("location"), minimize.WithObserver(c))
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, int64(1), c.skipped.Load())

	_, err = minimize.Solve(context.Background(), reg, "seed", []minimize.SeedRange{{Start: 0, Count: 10}},
		minimize.WithTerminal("location"))
	assert.ErrorIs(t, err, minimize.ErrNoCandidate)
}

func TestSolve_CycleError(t *testing.T) {
	reg := build(t, []chain.Block{{From: "a", To: "b"}, {From: "b", To: "a"}}, chain.WithAllowCycles())
	_, err := minimize.Solve(context.Background(), reg, "a", []minimize.SeedRange{{Start: 0, Count: 5}})
	assert.ErrorIs(t, err, chain.ErrChainCycle)
}

func TestSolve_Cancelled(t *testing.T) {
	reg := build(t, fixture.ExampleBlocks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := minimize.Solve(ctx, reg, "seed", exampleRanges())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	reg := build(t, fixture.RandomBlocks(rng, 6, 8, 10_000))
	ranges := make([]minimize.SeedRange, 16)
	for i := range ranges {
		ranges[i] = minimize.SeedRange{Start: rng.Int63n(10_000), Count: 1 + rng.Int63n(5_000)}
	}

	seq, err := minimize.Solve(context.Background(), reg, "c0", ranges, minimize.WithWorkers(1))
	require.NoError(t, err)
	par, err := minimize.Solve(context.Background(), reg, "c0", ranges, minimize.WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestOutcome_Merge(t *testing.T) {
	a := minimize.Outcome{Min: 10, ArgMin: 4, Found: true, Runs: 2}
	b := minimize.Outcome{Min: 10, ArgMin: 1, Found: true, Runs: 3, Skipped: 1}
	m := a.Merge(b)
	assert.Equal(t, minimize.Outcome{Min: 10, ArgMin: 1, Found: true, Runs: 5, Skipped: 1}, m)

	none := minimize.Outcome{Runs: 1}
	assert.Equal(t, int64(10), none.Merge(a).Min)
	assert.Equal(t, a.Min, a.Merge(minimize.Outcome{Min: -5}).Min, "not-found outcomes never win")
}

func TestParseRunKey(t *testing.T) {
	k, err := minimize.ParseRunKey("path")
	require.NoError(t, err)
	assert.Equal(t, minimize.KeyPath, k)
	assert.Equal(t, "path", k.String())

	k, err = minimize.ParseRunKey("")
	require.NoError(t, err)
	assert.Equal(t, minimize.KeySegments, k)

	_, err = minimize.ParseRunKey("bogus")
	assert.Error(t, err)
}
