// Package graphfile reads and writes graphs stored as TOML documents and
// watches such files for changes.
//
// A graph file names its vertex count and lists edges as an array of tables:
//
//	vertices = 5
//
//	[[edges]]
//	src = 0
//	dest = 1
package graphfile

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/unionfind/internal/graph"
)

// Sentinel errors for graph file loading.
var (
	// ErrNoGraphFile indicates the graph file does not exist.
	ErrNoGraphFile = errors.New("graph file not found")
	// ErrNoVertices indicates the document has no vertices key.
	ErrNoVertices = errors.New("graph file missing vertices")
	// ErrTooManyVertices indicates the vertex count exceeds MaxVertices.
	ErrTooManyVertices = errors.New("graph file has too many vertices")
)

// MaxVertices is the largest vertex count a graph file may declare. Each
// vertex costs two words in the disjoint-set structure built over it.
const MaxVertices = 1 << 24

// Document is the TOML shape of a graph file.
type Document struct {
	Vertices *int       `toml:"vertices"`
	Edges    []EdgeSpec `toml:"edges"`
}

// EdgeSpec is one [[edges]] table.
type EdgeSpec struct {
	Src  int `toml:"src"`
	Dest int `toml:"dest"`
}

// Parse decodes a TOML graph document and builds the graph it describes.
func Parse(data []byte) (*graph.Graph, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph file: %w", err)
	}
	if doc.Vertices == nil {
		return nil, ErrNoVertices
	}
	if *doc.Vertices > MaxVertices {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyVertices, *doc.Vertices, MaxVertices)
	}

	edges := make([]graph.Edge, len(doc.Edges))
	for i, e := range doc.Edges {
		edges[i] = graph.Edge{Src: e.Src, Dest: e.Dest}
	}
	g, err := graph.New(*doc.Vertices, edges)
	if err != nil {
		return nil, fmt.Errorf("building graph: %w", err)
	}
	return g, nil
}

// Load reads the graph file at path.
func Load(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoGraphFile, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Encode renders g as a TOML graph document that Parse accepts.
func Encode(g *graph.Graph) ([]byte, error) {
	v := g.V()
	doc := Document{Vertices: &v}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeSpec{Src: e.Src, Dest: e.Dest})
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding graph file: %w", err)
	}
	return data, nil
}
