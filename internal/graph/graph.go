// Package graph holds an undirected graph as a flat edge list and the
// union-find algorithms that run over it: cycle detection during edge
// insertion and counting vertex pairs split across connected components.
package graph

import (
	"fmt"

	"github.com/papapumpkin/unionfind/internal/dsu"
)

// Edge connects two vertices. Src and Dest carry no direction.
type Edge struct {
	Src  int
	Dest int
}

// Graph is an immutable undirected graph over the vertices 0..V-1.
type Graph struct {
	v     int
	edges []Edge
}

// New creates a Graph with v vertices and a copy of edges. Returns
// dsu.ErrInvalidSize if v is negative and dsu.ErrOutOfRange if any edge
// endpoint is outside [0, v).
func New(v int, edges []Edge) (*Graph, error) {
	if v < 0 {
		return nil, fmt.Errorf("%w: vertex count %d", dsu.ErrInvalidSize, v)
	}
	for i, e := range edges {
		if e.Src < 0 || e.Src >= v || e.Dest < 0 || e.Dest >= v {
			return nil, fmt.Errorf("%w: edge %d (%d, %d) with %d vertices",
				dsu.ErrOutOfRange, i, e.Src, e.Dest, v)
		}
	}
	return &Graph{
		v:     v,
		edges: append([]Edge(nil), edges...),
	}, nil
}

// V returns the number of vertices.
func (g *Graph) V() int { return g.v }

// E returns the number of edges.
func (g *Graph) E() int { return len(g.edges) }

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}
