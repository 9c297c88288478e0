package graph

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/unionfind/internal/dsu"
)

// ErrSizeMismatch is returned when a DisjointUnionSets has fewer elements
// than the graph has vertices.
var ErrSizeMismatch = errors.New("disjoint set smaller than graph")

func checkCapacity(g *Graph, d *dsu.DisjointUnionSets) error {
	if d.Len() < g.V() {
		return fmt.Errorf("%w: %d elements for %d vertices", ErrSizeMismatch, d.Len(), g.V())
	}
	return nil
}

// HasCycle reports whether inserting the edges of g in order ever joins two
// vertices that are already connected. It stops at the first such edge, so
// d reflects only the unions performed up to that point.
func HasCycle(g *Graph, d *dsu.DisjointUnionSets) (bool, error) {
	if err := checkCapacity(g, d); err != nil {
		return false, err
	}
	for _, e := range g.edges {
		same, err := d.Connected(e.Src, e.Dest)
		if err != nil {
			return false, err
		}
		if same {
			return true, nil
		}
		if err := d.Union(e.Src, e.Dest); err != nil {
			return false, err
		}
	}
	return false, nil
}

// ComponentSizes unions every edge of g into d and returns the number of
// vertices under each root, keyed by root.
func ComponentSizes(g *Graph, d *dsu.DisjointUnionSets) (map[int]int, error) {
	if err := checkCapacity(g, d); err != nil {
		return nil, err
	}
	for _, e := range g.edges {
		if err := d.Union(e.Src, e.Dest); err != nil {
			return nil, err
		}
	}
	sizes := make(map[int]int)
	for u := 0; u < g.v; u++ {
		root, err := d.Find(u)
		if err != nil {
			return nil, err
		}
		sizes[root]++
	}
	return sizes, nil
}

// CountCrossComponentPairs unions every edge of g into d, cycles included,
// and returns how many unordered vertex pairs end up in different
// components.
func CountCrossComponentPairs(g *Graph, d *dsu.DisjointUnionSets) (int64, error) {
	sizes, err := ComponentSizes(g, d)
	if err != nil {
		return 0, err
	}
	v := int64(g.v)
	total := v * (v - 1) / 2
	var within int64
	for _, s := range sizes {
		n := int64(s)
		within += n * (n - 1) / 2
	}
	return total - within, nil
}
