// SPDX-License-Identifier: MIT
// Package core provides the thread-safe directed graph that records which
// category feeds which in a remapping chain.
//
// The Graph G = (V,E) is always directed. Vertices are category names, edges
// are category transitions ("seed" → "soil"). Two policies shape it:
//
//   - WithSingleSuccessor(): every vertex has at most one outgoing edge.
//     A second AddEdge from the same vertex returns ErrSuccessorExists and
//     leaves the graph untouched, which gives callers first-writer-wins.
//   - WithLoops(): permits self-transitions (from == to); rejected otherwise.
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error            // O(1), idempotent
//	HasVertex(id string) bool             // O(1)
//	Vertices() []string                   // O(V·log V), sorted
//	VertexCount() int                     // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to string) (string, error) // O(1), auto-adds endpoints
//	HasEdge(from, to string) bool            // O(1)
//	Edges() []*Edge                          // O(E·log E), insertion order
//	EdgeCount() int                          // O(1)
//
//	// Neighborhood
//	Successors(id string) ([]*Edge, error)   // outgoing edges, insertion order
//	SuccessorIDs(id string) ([]string, error)
//	Successor(id string) (string, bool)      // single-successor shortcut
//	OutDegree(id) / InDegree(id)
//
//	// Cloning
//	Clone() *Graph
//
// Concurrency: muVert guards the vertex catalog, muEdgeAdj guards edges and
// adjacency. Lock order is always muVert → muEdgeAdj.
package core
