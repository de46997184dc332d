// SPDX-License-Identifier: MIT
// Package dfs implements cycle detection on directed core.Graphs.
// DetectCycles enumerates back-edge cycles with three-color marking. Each
// cycle is rotated so that its smallest vertex comes first, and the final list
// is sorted for deterministic output.
//
// Complexity:
//
//   - Time:   O(V + E + C·L)   (C=#cycles, L=avg cycle length)
//   - Memory: O(V + L_max)
package dfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/almanac/core"
)

// DetectCycles inspects g for cycles reachable by back-edges.
// Returns (true, cycles, nil) if any are found, (false, nil, nil) otherwise.
// Each cycle is closed: its first vertex is repeated at the end.
// A nil graph is treated as cycle-free.
func DetectCycles(g *core.Graph) (bool, [][]string, error) {
	// 1) Nil graph is cycle-free
	if g == nil {
		return false, nil, nil
	}

	// 2) Visitation state
	verts := g.Vertices()
	d := &cycleDetector{
		graph: g,
		state: make(map[string]int, len(verts)),
		path:  make([]string, 0, len(verts)),
		seen:  make(map[string]struct{}),
	}

	// 3) Launch from each unvisited vertex
	for _, v := range verts {
		if d.state[v] == White {
			if err := d.visit(v); err != nil {
				return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
			}
		}
	}

	// 4) Deterministic order
	sort.Slice(d.cycles, func(i, j int) bool {
		return strings.Join(d.cycles[i], ",") < strings.Join(d.cycles[j], ",")
	})
	if len(d.cycles) == 0 {
		return false, nil, nil
	}

	return true, d.cycles, nil
}

// cycleDetector holds the DFS state of one DetectCycles run.
type cycleDetector struct {
	graph  *core.Graph
	state  map[string]int
	path   []string            // current DFS stack
	seen   map[string]struct{} // canonical signatures already recorded
	cycles [][]string
}

// visit marks id Gray, explores successors and records Gray→Gray back-edges.
func (d *cycleDetector) visit(id string) error {
	d.state[id] = Gray
	d.path = append(d.path, id)

	succ, err := d.graph.SuccessorIDs(id)
	if err != nil {
		return fmt.Errorf("SuccessorIDs(%q): %w", id, err)
	}
	for _, nbr := range succ {
		switch d.state[nbr] {
		case White:
			if err = d.visit(nbr); err != nil {
				return err
			}
		case Gray:
			d.record(nbr)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.state[id] = Black

	return nil
}

// record extracts the cycle starting at start from the current stack,
// canonicalizes it and stores it once.
func (d *cycleDetector) record(start string) {
	idx := indexOf(d.path, start)
	cyc := canonical(d.path[idx:])
	sig := strings.Join(cyc, ",")
	if _, dup := d.seen[sig]; dup {
		return
	}
	d.seen[sig] = struct{}{}
	d.cycles = append(d.cycles, cyc)
}

// canonical rotates an open cycle so its smallest vertex is first and closes it.
// Directed cycles keep their orientation.
func canonical(open []string) []string {
	minAt := 0
	for i, v := range open {
		if v < open[minAt] {
			minAt = i
		}
	}
	out := make([]string, 0, len(open)+1)
	out = append(out, open[minAt:]...)
	out = append(out, open[:minAt]...)

	return append(out, out[0])
}

// indexOf returns the first index of val in s, or -1.
func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}
