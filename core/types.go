// SPDX-License-Identifier: MIT
// Package core defines the Graph, Vertex and Edge types, construction options
// and sentinel errors.
//
// Errors:
//
//	ErrEmptyVertexID    - vertex ID is the empty string.
//	ErrVertexNotFound   - requested vertex does not exist.
//	ErrLoopNotAllowed   - self-transition when loops are disabled.
//	ErrSuccessorExists  - second outgoing edge under WithSingleSuccessor.
//	ErrDuplicateEdge    - the exact from→to edge already exists.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrSuccessorExists indicates a vertex already has its single outgoing edge.
	ErrSuccessorExists = errors.New("core: vertex already has a successor")

	// ErrDuplicateEdge indicates the from→to edge is already present.
	ErrDuplicateEdge = errors.New("core: duplicate edge")
)

// Vertex is a category in the chain.
type Vertex struct {
	// ID is the category name, unique within its Graph.
	ID string
}

// Edge is a directed transition From → To.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", …).
	ID string

	// From is the source category.
	From string

	// To is the destination category.
	To string

	// seq is the insertion sequence number backing ID; used for ordering.
	seq uint64
}

// GraphOption configures a Graph before creation.
type GraphOption func(g *Graph)

// WithSingleSuccessor limits every vertex to at most one outgoing edge.
func WithSingleSuccessor() GraphOption {
	return func(g *Graph) { g.singleSuccessor = true }
}

// WithLoops permits self-loops.
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a directed in-memory graph of categories.
//
// muVert protects vertices; muEdgeAdj protects edges, out and in.
// nextEdgeID is an atomic counter for Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	// Configuration flags
	singleSuccessor bool // at most one outgoing edge per vertex
	allowLoops      bool // allow self-loops

	// Storage
	nextEdgeID uint64             // atomic edge ID generator
	vertices   map[string]*Vertex // vertex ID → Vertex
	edges      map[string]*Edge   // edge ID → Edge

	// out[from][to] = edge ID; in[to][from] = edge ID
	out map[string]map[string]string
	in  map[string]map[string]string
}

// NewGraph creates an empty directed Graph with the given options.
// By default, a vertex may have many successors and loops are rejected.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices: make(map[string]*Vertex),
		edges:    make(map[string]*Edge),
		out:      make(map[string]map[string]string),
		in:       make(map[string]map[string]string),
	}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// SingleSuccessor reports whether the graph enforces one outgoing edge per vertex.
func (g *Graph) SingleSuccessor() bool { return g.singleSuccessor }

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool { return g.allowLoops }
