package almanac_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/almanac"
	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/internal/fixture"
	"github.com/katalvlaran/almanac/interval"
	"github.com/katalvlaran/almanac/minimize"
)

func TestParseKeyValues(t *testing.T) {
	input := "key0: value0\n\nkey1:\nvalue1\nvalue2\n\nkey2:\nvalue3\n"

	got := almanac.ParseKeyValues(input)
	require.Len(t, got, 3)

	want := []struct {
		key    string
		values []string
		line   int
	}{
		{"key0", []string{"value0"}, 1},
		{"key1", []string{"value1", "value2"}, 3},
		{"key2", []string{"value3"}, 7},
	}
	for i, w := range want {
		assert.Equal(t, w.key, got[i].Key)
		assert.Equal(t, w.values, got[i].Values)
		assert.Equal(t, w.line, got[i].Line)
	}
	assert.Equal(t, []int{4, 5}, got[1].ValueLines)
}

func TestParseKeyValues_Lenient(t *testing.T) {
	input := "stray line\n  spaced key :  a b  \n  next  \r\n\norphan\n"
	got := almanac.ParseKeyValues(input)
	require.Len(t, got, 1)
	assert.Equal(t, "spaced key", got[0].Key)
	assert.Equal(t, []string{"a b", "next"}, got[0].Values)

	assert.Empty(t, almanac.ParseKeyValues(""))
}

func TestParseKeyValues_EmptyBlock(t *testing.T) {
	got := almanac.ParseKeyValues("a-to-b map:\n\nb-to-c map:\n1 2 3\n\nlast:")
	require.Len(t, got, 3)

	assert.Equal(t, "a-to-b map", got[0].Key)
	assert.Nil(t, got[0].Values)
	assert.Nil(t, got[0].ValueLines)
	assert.Equal(t, []string{"1 2 3"}, got[1].Values)
	assert.Equal(t, "last", got[2].Key)
	assert.Nil(t, got[2].Values)
}

func TestParse_Example(t *testing.T) {
	a, err := almanac.Parse(strings.NewReader(fixture.ExampleText))
	require.NoError(t, err)
	assert.Equal(t, fixture.ExampleSeeds, a.Seeds)
	assert.Equal(t, 1, a.SeedsLine)
	assert.Equal(t, fixture.ExampleBlocks(), a.Blocks)

	reg, err := a.Registry()
	require.NoError(t, err)

	ranges, err := a.SeedRanges()
	require.NoError(t, err)
	assert.Equal(t, []minimize.SeedRange{{Start: 79, Count: 14}, {Start: 55, Count: 13}}, ranges)

	out, err := minimize.Solve(context.Background(), reg, "seed", ranges, minimize.WithTerminal("location"))
	require.NoError(t, err)
	assert.Equal(t, int64(46), out.Min)

	out, err = minimize.Solve(context.Background(), reg, "seed", a.SeedValues(), minimize.WithTerminal("location"))
	require.NoError(t, err)
	assert.Equal(t, int64(35), out.Min)
}

func TestParse_Flexible(t *testing.T) {
	input := "seeds:\n1 2\n3 4\n\nx-to-y map: 10 0 5\n20 5 5\n\ny-to-z map:\n"
	a, err := almanac.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, a.Seeds)
	require.Len(t, a.Blocks, 2)
	assert.Equal(t, chain.Block{From: "x", To: "y", Intervals: []interval.Interval{
		{Start: 0, End: 5, Base: 10},
		{Start: 5, End: 10, Base: 20},
	}}, a.Blocks[0])
	assert.Equal(t, "y-to-z", a.Blocks[1].Name())
	assert.Empty(t, a.Blocks[1].Intervals)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		err   error
	}{
		{"bad seed", "seeds: 1 x 3\n", 1, almanac.ErrMalformedNumber},
		{"bad rule number", "seeds: 1\n\na-to-b map:\n1 2 3\n1 z 3\n", 5, almanac.ErrMalformedNumber},
		{"short rule", "seeds: 1\n\na-to-b map:\n1 2\n", 4, almanac.ErrMalformedNumber},
		{"bad header", "seeds: 1\n\na to b map:\n1 2 3\n", 3, almanac.ErrMalformedHeader},
		{"stray line", "seeds: 1\n\n1 2 3\n", 3, almanac.ErrMalformedHeader},
		{"second seeds", "seeds: 1\n\nseeds: 2\n", 3, almanac.ErrMalformedHeader},
		{"zero length", "seeds: 1\n\na-to-b map:\n1 2 0\n", 4, interval.ErrEmptyInterval},
		{"image overflow", "seeds: 0 2\n\na-to-b map:\n9223372036854775807 0 10\n", 4, almanac.ErrMalformedNumber},
		{"end overflow", "seeds: 0 2\n\na-to-b map:\n1 2 3\n0 9223372036854775800 100\n", 5, almanac.ErrMalformedNumber},
		{"no seeds", "a-to-b map:\n1 2 3\n", 0, almanac.ErrMissingSeeds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := almanac.Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.err)

			var pe *almanac.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestSeedRanges_Errors(t *testing.T) {
	a := &almanac.Almanac{Seeds: []int64{1, 2, 3}, SeedsLine: 4}
	_, err := a.SeedRanges()
	assert.ErrorIs(t, err, almanac.ErrOddSeeds)
	assert.Contains(t, err.Error(), "line 4")

	a.Seeds = []int64{5, -1}
	_, err = a.SeedRanges()
	assert.ErrorIs(t, err, almanac.ErrMalformedNumber)

	a.Seeds = []int64{1 << 62, 1 << 62}
	_, err = a.SeedRanges()
	assert.ErrorIs(t, err, almanac.ErrMalformedNumber)

	assert.Len(t, a.SeedValues(), 2)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixture.ExampleText), 0o600))

	a, err := almanac.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, a.Blocks, 7)

	_, err = almanac.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
