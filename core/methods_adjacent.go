// SPDX-License-Identifier: MIT
// File: methods_adjacent.go
// Role: Neighborhood APIs (Successors, SuccessorIDs, Successor) and Clone.
// Determinism:
//   - Successors() and SuccessorIDs() follow edge insertion order.
// Concurrency:
//   - Reads hold muVert then muEdgeAdj read locks.

package core

// Successors returns the outgoing edges of id in insertion order.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist.
//
// Complexity: O(d log d), d = out-degree.
func (g *Graph) Successors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	// Same lock order as mutators: muVert -> muEdgeAdj.
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	out := make([]*Edge, 0, len(g.out[id]))
	for _, eid := range g.out[id] {
		out = append(out, g.edges[eid])
	}
	sortBySeq(out)

	return out, nil
}

// SuccessorIDs returns the destination IDs of id's outgoing edges in insertion order.
func (g *Graph) SuccessorIDs(id string) ([]string, error) {
	es, err := g.Successors(id)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.To
	}

	return ids, nil
}

// Successor returns the first successor of id. ok is false for unknown or
// terminal vertices. Meant for graphs built WithSingleSuccessor.
func (g *Graph) Successor(id string) (string, bool) {
	ids, err := g.SuccessorIDs(id)
	if err != nil || len(ids) == 0 {
		return "", false
	}

	return ids[0], true
}

// Clone returns a deep copy: configuration, vertices, edges and adjacency.
// The edge ID sequence carries over, so new edges on the clone never collide.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	c := NewGraph()
	c.singleSuccessor = g.singleSuccessor
	c.allowLoops = g.allowLoops
	c.nextEdgeID = g.nextEdgeID
	for id := range g.vertices {
		c.vertices[id] = &Vertex{ID: id}
	}
	for eid, e := range g.edges {
		cp := *e
		c.edges[eid] = &cp
		link(c.out, e.From, e.To, eid)
		link(c.in, e.To, e.From, eid)
	}

	return c
}
