// SPDX-License-Identifier: MIT
// Package chain assembles named offset maps into an immutable category chain
// and traces values through it.
//
// A Registry holds at most one outgoing Edge per category: the category it
// feeds (Next) and the OffsetMap applied on the way. A category with no edge
// is terminal. Registries are produced by Build from parsed blocks and are
// never mutated afterwards, so any number of goroutines may trace through one
// registry concurrently.
//
// Errors:
//
//	ErrEmptyCategory - a block names an empty source or destination category.
//	ErrChainCycle    - the chain loops back on itself.
package chain

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/almanac/core"
	"github.com/katalvlaran/almanac/dfs"
	"github.com/katalvlaran/almanac/interval"
)

var (
	// ErrEmptyCategory indicates a block with an empty From or To.
	ErrEmptyCategory = errors.New("chain: empty category name")

	// ErrChainCycle indicates a chain that never reaches a terminal category.
	ErrChainCycle = errors.New("chain: cycle detected")
)

// Block is one parsed "<From>-to-<To> map" section: its intervals in line order.
type Block struct {
	From      string
	To        string
	Intervals []interval.Interval
}

// Name renders the block header, e.g. "seed-to-soil".
func (b Block) Name() string { return b.From + "-to-" + b.To }

// Edge is the single outgoing transition of a category.
type Edge struct {
	// From is the category the edge leaves.
	From string

	// Next is the category the edge enters.
	Next string

	// Map is the offset map applied along the edge.
	Map *interval.OffsetMap

	// Index is the compiled form of Map used by Trace.
	Index *interval.Index
}

// Registry is an immutable category → Edge mapping.
type Registry struct {
	graph *core.Graph
	edges map[string]Edge
	order []string // categories, source first when acyclic
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	allowCycles bool
}

// WithLogger sets the logger that reports dropped duplicate blocks.
// A nil logger is ignored; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAllowCycles skips the acyclicity check. Trace still refuses to loop
// forever and reports ErrChainCycle instead.
func WithAllowCycles() Option {
	return func(o *options) { o.allowCycles = true }
}

// Build assembles a Registry from blocks.
//
// Steps:
//  1. Validate category names, drop a block whose From is already
//     registered (first writer wins), then validate the kept block's intervals.
//  2. Register From→To in a single-successor category graph.
//  3. Compile each kept map into its Index.
//  4. Reject cycles unless WithAllowCycles, then fix the category order.
//
// Build does not retain blocks: every map is copied.
func Build(blocks []Block, opts ...Option) (*Registry, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	gopts := []core.GraphOption{core.WithSingleSuccessor()}
	if o.allowCycles {
		gopts = append(gopts, core.WithLoops())
	}
	r := &Registry{
		graph: core.NewGraph(gopts...),
		edges: make(map[string]Edge, len(blocks)),
	}

	for i, b := range blocks {
		// 1) Validation. A dropped duplicate is never validated.
		if b.From == "" || b.To == "" {
			return nil, fmt.Errorf("%w: block %d (%q)", ErrEmptyCategory, i, b.Name())
		}
		if kept, dup := r.edges[b.From]; dup {
			o.logger.Warn("chain: duplicate source category, block dropped",
				slog.String("block", b.Name()),
				slog.String("kept", kept.Next))
			continue
		}
		m, err := interval.NewOffsetMap(b.Intervals...)
		if err != nil {
			return nil, fmt.Errorf("chain: block %q: %w", b.Name(), err)
		}

		// 2) Graph registration
		if _, err = r.graph.AddEdge(b.From, b.To); err != nil {
			switch {
			case errors.Is(err, core.ErrLoopNotAllowed):
				return nil, fmt.Errorf("%w: %s maps onto itself", ErrChainCycle, b.From)
			default:
				return nil, fmt.Errorf("chain: block %q: %w", b.Name(), err)
			}
		}

		// 3) Compile
		r.edges[b.From] = Edge{From: b.From, Next: b.To, Map: m, Index: m.Compile()}
	}

	// 4) Cycles and order
	if !o.allowCycles {
		has, cycles, err := dfs.DetectCycles(r.graph)
		if err != nil {
			return nil, fmt.Errorf("chain: %w", err)
		}
		if has {
			return nil, fmt.Errorf("%w: %s: %w", ErrChainCycle, strings.Join(cycles[0], " -> "), dfs.ErrCycleDetected)
		}
		order, err := dfs.TopologicalSort(r.graph)
		if err != nil {
			return nil, fmt.Errorf("chain: %w", err)
		}
		r.order = order
	} else {
		r.order = r.graph.Vertices()
	}

	o.logger.Debug("chain: registry built",
		slog.Int("categories", r.graph.VertexCount()),
		slog.Int("edges", len(r.edges)))

	return r, nil
}

// Edge returns the outgoing edge of category; ok is false for terminal categories.
func (r *Registry) Edge(category string) (Edge, bool) {
	e, ok := r.edges[category]

	return e, ok
}

// Next returns the category fed by category.
func (r *Registry) Next(category string) (string, bool) {
	return r.graph.Successor(category)
}

// EdgeCount returns the number of registered edges.
func (r *Registry) EdgeCount() int { return len(r.edges) }

// Categories returns every known category. For an acyclic chain the order is
// topological: a category always precedes the one it feeds.
func (r *Registry) Categories() []string {
	return append([]string(nil), r.order...)
}

// IsTerminal reports whether category has no outgoing edge.
func (r *Registry) IsTerminal(category string) bool {
	_, ok := r.edges[category]

	return !ok
}

// Terminal follows the chain from category to the category where traversal stops.
// It returns ErrChainCycle if the chain never ends.
func (r *Registry) Terminal(category string) (string, error) {
	cur := category
	for step := 0; ; step++ {
		e, ok := r.edges[cur]
		if !ok {
			return cur, nil
		}
		if step == len(r.edges) {
			return "", fmt.Errorf("%w: from %q", ErrChainCycle, category)
		}
		cur = e.Next
	}
}

// Sources returns the categories no block feeds, in category order. Every
// chain starts at one of them.
func (r *Registry) Sources() []string {
	var out []string
	for _, c := range r.order {
		if in, err := r.graph.InDegree(c); err == nil && in == 0 {
			out = append(out, c)
		}
	}

	return out
}

// Route returns the categories from category to its terminal, both included.
// An unknown category is its own route. It returns ErrChainCycle if the chain
// never ends.
func (r *Registry) Route(category string) ([]string, error) {
	if !r.graph.HasVertex(category) {
		return []string{category}, nil
	}

	// The first category to finish is the deepest one reached.
	var last string
	res, err := dfs.DFS(r.graph, category,
		dfs.WithMaxDepth(len(r.edges)),
		dfs.WithOnExit(func(id string) error {
			if last == "" {
				last = id
			}

			return nil
		}))
	if err != nil {
		return nil, fmt.Errorf("chain: route from %q: %w", category, err)
	}
	if out, _ := r.graph.OutDegree(last); out > 0 {
		return nil, fmt.Errorf("%w: from %q", ErrChainCycle, category)
	}

	return res.PathTo(last), nil
}

// Reaches reports whether to is reachable from from.
func (r *Registry) Reaches(from, to string) bool {
	if from == to {
		return true
	}
	ok, err := dfs.Reachable(r.graph, from, to)

	return err == nil && ok
}

// Graph returns a copy of the underlying category graph.
func (r *Registry) Graph() *core.Graph { return r.graph.Clone() }
