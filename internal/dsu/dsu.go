// Package dsu provides a fixed-size disjoint-set (union-find) structure over
// the integers [0, n). Find applies path compression and Union merges the
// smaller set under the larger one, so any sequence of operations runs in
// amortized near-constant time per call.
package dsu

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a negative element count is requested.
var ErrInvalidSize = errors.New("invalid size")

// ErrOutOfRange is returned when an element index lies outside [0, n).
var ErrOutOfRange = errors.New("index out of range")

// DisjointUnionSets partitions the elements 0..n-1 into disjoint sets.
// The zero value is an empty structure; use New to size it.
//
// A DisjointUnionSets is not safe for concurrent use. Find rewrites parent
// pointers, so even lookups must be serialized by the caller.
type DisjointUnionSets struct {
	parent []int
	// rank holds the number of elements in the set rooted at i. Only
	// meaningful when i is a root.
	rank  []int
	count int
}

// New creates a DisjointUnionSets of n singleton sets. Returns
// ErrInvalidSize if n is negative. n == 0 yields a valid empty structure.
func New(n int) (*DisjointUnionSets, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	d := &DisjointUnionSets{
		parent: make([]int, n),
		rank:   make([]int, n),
		count:  n,
	}
	for i := range d.parent {
		d.parent[i] = i
		d.rank[i] = 1
	}
	return d, nil
}

// Len returns the number of elements the structure was created with.
func (d *DisjointUnionSets) Len() int {
	return len(d.parent)
}

// Count returns the number of disjoint sets currently held.
func (d *DisjointUnionSets) Count() int {
	return d.count
}

func (d *DisjointUnionSets) check(u int) error {
	if u < 0 || u >= len(d.parent) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, u, len(d.parent))
	}
	return nil
}

// Find returns the representative of the set containing u. Every element
// visited on the way to the root is re-pointed directly at it.
func (d *DisjointUnionSets) Find(u int) (int, error) {
	if err := d.check(u); err != nil {
		return 0, err
	}
	return d.find(u), nil
}

// find assumes u is in range.
func (d *DisjointUnionSets) find(u int) int {
	root := u
	for d.parent[root] != root {
		root = d.parent[root]
	}
	// Compress the path.
	for u != root {
		u, d.parent[u] = d.parent[u], root
	}
	return root
}

// Union merges the sets containing u and v. The root of the smaller set is
// attached under the root of the larger one; on a tie v's root goes under
// u's. Both indices are validated before anything is modified.
func (d *DisjointUnionSets) Union(u, v int) error {
	if err := d.check(u); err != nil {
		return err
	}
	if err := d.check(v); err != nil {
		return err
	}
	d.union(u, v)
	return nil
}

// union assumes u and v are in range.
func (d *DisjointUnionSets) union(u, v int) {
	ru, rv := d.find(u), d.find(v)
	if ru == rv {
		return
	}
	if d.rank[ru] < d.rank[rv] {
		d.parent[ru] = rv
		d.rank[rv] += d.rank[ru]
	} else {
		d.parent[rv] = ru
		d.rank[ru] += d.rank[rv]
	}
	d.count--
}

// Connected reports whether u and v belong to the same set.
func (d *DisjointUnionSets) Connected(u, v int) (bool, error) {
	if err := d.check(u); err != nil {
		return false, err
	}
	if err := d.check(v); err != nil {
		return false, err
	}
	return d.find(u) == d.find(v), nil
}

// Size returns the number of elements in the set containing u.
func (d *DisjointUnionSets) Size(u int) (int, error) {
	if err := d.check(u); err != nil {
		return 0, err
	}
	return d.rank[d.find(u)], nil
}

// Components returns the disjoint sets as a map from each set's
// representative to its members in ascending order.
func (d *DisjointUnionSets) Components() map[int][]int {
	groups := make(map[int][]int, d.count)
	for i := range d.parent {
		root := d.find(i)
		groups[root] = append(groups[root], i)
	}
	return groups
}
