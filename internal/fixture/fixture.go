// SPDX-License-Identifier: MIT
// Package fixture provides chain data shared by tests across packages:
// the reference almanac and random chains for brute-force comparisons.
package fixture

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/almanac/chain"
	"github.com/katalvlaran/almanac/interval"
)

// ExampleSeeds are the seeds of the reference almanac.
var ExampleSeeds = []int64{79, 14, 55, 13}

// ExampleCategories lists the reference chain from source to terminal.
var ExampleCategories = []string{
	"seed", "soil", "fertilizer", "water", "light", "temperature", "humidity", "location",
}

// exampleTables holds "dst src len" rows per edge of the reference chain.
var exampleTables = [][][3]int64{
	{{50, 98, 2}, {52, 50, 48}},
	{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}},
	{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}},
	{{88, 18, 7}, {18, 25, 70}},
	{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}},
	{{0, 69, 1}, {1, 0, 69}},
	{{60, 56, 37}, {56, 93, 4}},
}

// ExampleText is the reference almanac in its textual form.
const ExampleText = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

// ExampleBlocks returns the reference chain as blocks.
func ExampleBlocks() []chain.Block {
	blocks := make([]chain.Block, len(exampleTables))
	for i, rows := range exampleTables {
		blocks[i] = chain.Block{From: ExampleCategories[i], To: ExampleCategories[i+1]}
		for _, row := range rows {
			iv, err := interval.FromRange(row[0], row[1], row[2])
			if err != nil {
				panic(err)
			}
			blocks[i].Intervals = append(blocks[i].Intervals, iv)
		}
	}

	return blocks
}

// RandomBlocks returns a chain c0 → c1 → … → c<depth> whose maps hold up to
// maxIntervals possibly overlapping intervals inside [0, span).
func RandomBlocks(rng *rand.Rand, depth, maxIntervals int, span int64) []chain.Block {
	blocks := make([]chain.Block, depth)
	for d := 0; d < depth; d++ {
		blocks[d] = chain.Block{From: fmt.Sprintf("c%d", d), To: fmt.Sprintf("c%d", d+1)}
		n := rng.Intn(maxIntervals + 1)
		for i := 0; i < n; i++ {
			s := rng.Int63n(span)
			l := 1 + rng.Int63n(span/4+1)
			blocks[d].Intervals = append(blocks[d].Intervals,
				interval.Interval{Start: s, End: s + l, Base: rng.Int63n(span)})
		}
	}

	return blocks
}
