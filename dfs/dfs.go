// SPDX-License-Identifier: MIT
// Package dfs implements depth-first search, cycle detection and topological
// sort on a directed core.Graph.
//
// Complexity:
//
//   - Time:   O(V + E) plus the cost of hooks.
//   - Memory: O(V) for the recursion stack and result maps.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - ErrStartVertexNotFound    if startID is missing.
//   - context.Canceled          if ctx is done.
//   - any error returned by OnVisit or OnExit.
package dfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/almanac/core"
)

// walker encapsulates state during DFS.
type walker struct {
	graph *core.Graph
	opts  Options
	res   *Result
}

// DFS performs a depth-first search on g from startID following outgoing edges.
// On error the partial result is returned with Order cleared.
func DFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Verify start
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	// 4. Initialize result
	n := g.VertexCount()
	res := &Result{
		Order:   make([]string, 0, n),
		Depth:   make(map[string]int, n),
		Parent:  make(map[string]string, n),
		Visited: make(map[string]bool, n),
	}
	w := &walker{graph: g, opts: o, res: res}

	// 5. Traverse
	if err := w.traverse(startID, 0); err != nil {
		res.Order = nil

		return res, err
	}

	return res, nil
}

// traverse visits id at depth, recursing into successors.
func (w *walker) traverse(id string, depth int) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Depth limit
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	// 3. Mark visited and record depth
	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	// 4. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id, depth); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
		}
	}

	// 5. Explore successors
	succ, err := w.graph.SuccessorIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighborFetch, id, err)
	}
	for _, nid := range succ {
		if w.res.Visited[nid] {
			continue
		}
		w.res.Parent[nid] = id
		if err = w.traverse(nid, depth+1); err != nil {
			return err
		}
	}

	// 6. Post-order hook
	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(id); err != nil {
			return fmt.Errorf("dfs: OnExit hook for %q: %w", id, err)
		}
	}

	// 7. Record finish order
	w.res.Order = append(w.res.Order, id)

	return nil
}

// Reachable reports whether to can be reached from from along outgoing edges.
// Unknown vertices are unreachable.
func Reachable(g *core.Graph, from, to string) (bool, error) {
	res, err := DFS(g, from)
	if err != nil {
		if errors.Is(err, ErrStartVertexNotFound) {
			return false, nil
		}

		return false, err
	}

	return res.Visited[to], nil
}
