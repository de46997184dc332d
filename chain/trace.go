// SPDX-License-Identifier: MIT

package chain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Path is the ordered list of 1-based interval indices used while tracing one
// value; 0 marks an edge where no interval matched and identity was applied.
// Values sharing a Path are moved by the same slope-1 affine transform.
type Path []int

// Equal reports whether p and q are element-wise equal.
func (p Path) Equal(q Path) bool { return slices.Equal(p, q) }

// String renders p as "[1 0 2]".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// Trace is the outcome of following the chain for one value.
type Trace struct {
	// Origin and Start are the category and value the trace began with.
	Origin string
	Start  int64

	// Category is where the trace stopped; Final is the value there.
	Category string
	Final    int64

	// Path holds the interval index applied on each edge.
	Path Path

	// Segments holds, per edge, the ordinal of the index segment the value
	// fell into. Equal Segments imply equal Path, and the set of inputs that
	// share Segments is always contiguous.
	Segments []int
}

// Trace follows the chain from category starting at value until it reaches a
// category with no outgoing edge.
//
// Contract: the chain reachable from category must be acyclic. Build enforces
// this unless WithAllowCycles was used; in that case Trace stops after
// EdgeCount() steps (more than any acyclic chain can take) and returns
// ErrChainCycle together with the partial trace.
//
// A category absent from the registry returns (value, empty path) unchanged.
//
// Complexity: O(C · log n), C = chain depth, n = intervals per edge.
func (r *Registry) Trace(category string, value int64) (Trace, error) {
	tr := Trace{
		Origin:   category,
		Start:    value,
		Category: category,
		Final:    value,
		Path:     Path{},
		Segments: []int{},
	}

	for step := 0; ; step++ {
		// 1) Terminal category ends the trace.
		e, ok := r.edges[tr.Category]
		if !ok {
			return tr, nil
		}
		// 2) Depth cap.
		if step == len(r.edges) {
			return tr, fmt.Errorf("%w: still at %q after %d steps from %q", ErrChainCycle, tr.Category, step, category)
		}
		// 3) Apply the edge.
		v, idx, seg := e.Index.Lookup(tr.Final)
		tr.Path = append(tr.Path, idx)
		tr.Segments = append(tr.Segments, seg)
		tr.Category = e.Next
		tr.Final = v
	}
}

// Final is Trace reduced to the final value.
func (r *Registry) Final(category string, value int64) (int64, error) {
	tr, err := r.Trace(category, value)

	return tr.Final, err
}
