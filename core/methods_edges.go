// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edges/EdgeCount, plus nextEdgeID().
// Determinism:
//   - Edges() returns edges in insertion order.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// AddEdge creates the directed edge from → to and returns its ID.
//
// Steps:
//  1. Validate IDs and the loop policy.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj; reject duplicates and, under WithSingleSuccessor,
//     a second outgoing edge (ErrSuccessorExists).
//  4. Generate the ID, store the edge, link out/in adjacency.
//
// A rejected edge leaves the graph unchanged apart from the endpoint vertices.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	// 2) Ensure vertices exist
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	// 3) Insert edge under lock
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, dup := g.out[from][to]; dup {
		return "", ErrDuplicateEdge
	}
	if g.singleSuccessor && len(g.out[from]) > 0 {
		return "", ErrSuccessorExists
	}

	// 4) Store and link adjacency
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	e := &Edge{ID: edgeID(n), From: from, To: to, seq: n}
	g.edges[e.ID] = e
	link(g.out, from, to, e.ID)
	link(g.in, to, from, e.ID)

	return e.ID, nil
}

// HasEdge reports whether the edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.out[from][to]

	return ok
}

// Edges returns all edges in insertion order.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortBySeq(out)

	return out
}

// EdgeCount returns the total number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// edgeID renders sequence number n as "e<n>" without fmt.
func edgeID(n uint64) string {
	buf := make([]byte, 0, 1+20) // "e" + up to 20 digits for uint64
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// link records adj[a][b] = eid, allocating the inner map on demand.
func link(adj map[string]map[string]string, a, b, eid string) {
	inner, ok := adj[a]
	if !ok {
		inner = make(map[string]string)
		adj[a] = inner
	}
	inner[b] = eid
}

// sortBySeq orders edges by insertion.
func sortBySeq(es []*Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].seq < es[j].seq })
}
