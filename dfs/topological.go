// SPDX-License-Identifier: MIT
// Package dfs provides topological sort on directed graphs.
//
// TopologicalSort computes a linear ordering of vertices such that for every
// edge u→v, u appears before v. If the graph contains a cycle,
// ErrCycleDetected is returned.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/almanac/core"
)

// TopoOption configures optional behavior for TopologicalSort.
type TopoOption func(*topoOptions)

// topoOptions holds settings for TopologicalSort, currently only cancellation.
type topoOptions struct {
	ctx context.Context
}

// WithCancelContext sets the cancellation context. A nil ctx is ignored.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// topoSorter encapsulates state for a topological sort traversal.
type topoSorter struct {
	graph *core.Graph
	opts  topoOptions
	state map[string]int
	order []string // post-order
}

// TopologicalSort orders all vertices of g. Roots are tried in sorted order,
// so the result is deterministic for a fixed graph.
func TopologicalSort(g *core.Graph, options ...TopoOption) ([]string, error) {
	// 1. Validate graph pointer
	if g == nil {
		return nil, ErrGraphNil
	}
	// 2. Apply optional settings
	opts := topoOptions{ctx: context.Background()}
	for _, opt := range options {
		opt(&opts)
	}
	// 3. Initialize sorter state
	verts := g.Vertices()
	t := &topoSorter{
		graph: g,
		opts:  opts,
		state: make(map[string]int, len(verts)),
		order: make([]string, 0, len(verts)),
	}
	// 4. Drive DFS from every unvisited vertex
	for _, v := range verts {
		if t.state[v] == White {
			if err := t.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// 5. Reverse post-order
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

// visit performs a DFS from id, marking states and detecting cycles.
func (t *topoSorter) visit(id string) error {
	// 1. Cancellation check
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	// 2. Gray again means a back-edge
	switch t.state[id] {
	case Gray:
		return fmt.Errorf("%w: at %q", ErrCycleDetected, id)
	case Black:
		return nil
	}
	t.state[id] = Gray

	// 3. Explore successors
	succ, err := t.graph.SuccessorIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, nid := range succ {
		if err = t.visit(nid); err != nil {
			return err
		}
	}

	// 4. Finish
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}
