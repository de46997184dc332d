// SPDX-License-Identifier: MIT
// Package dfs defines types and options for depth-first search over a
// core.Graph: cancellation, pre-/post-order hooks and depth limiting.
package dfs

import (
	"context"
	"errors"
)

// Visitation states of a vertex.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is on the recursion stack.
	Black        // Black: the vertex and all its descendants are fully explored.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS or TopologicalSort.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex does not exist.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected indicates that a cycle was encountered during TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve successors from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// Option configures optional behavior of DFS traversal.
type Option func(*Options)

// Options holds configurable parameters for DFS traversal.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked when a vertex is discovered (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(id string, depth int) error

	// OnExit, if non-nil, is invoked after all descendants of a vertex have
	// been explored (post-order). Returning an error aborts traversal.
	OnExit func(id string) error

	// MaxDepth, if non-negative, limits recursion depth. 0 visits only the start.
	MaxDepth int
}

// DefaultOptions returns Background context, no hooks and no depth limit.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// Result captures the outcome of a depth-first traversal.
type Result struct {
	// Order records vertices in the sequence they finished (post-order).
	Order []string

	// Depth maps each reached vertex to its distance (#edges) from the start.
	Depth map[string]int

	// Parent maps each vertex to the vertex it was discovered from.
	// The start vertex has no entry.
	Parent map[string]string

	// Visited flags which vertices were reached.
	Visited map[string]bool
}

// PathTo rebuilds the start → id path from Parent links, or nil if id was not reached.
func (r *Result) PathTo(id string) []string {
	if !r.Visited[id] {
		return nil
	}
	var rev []string
	for cur, ok := id, true; ok; cur, ok = r.Parent[cur] {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}

	return rev
}
