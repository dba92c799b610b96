package sketch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidEdgeEndpoint is returned when a serialized graph contains an
// edge referencing a node that is not in the node list.
var ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

// GraphJSON is the canonical serialization format for sketches.
// Used for files, API responses, caching, and the snapshot store.
// Node and edge order is meaningful and preserved on round-trip.
type GraphJSON struct {
	Nodes []NodeJSON `json:"nodes" bson:"nodes"`
	Edges []EdgeJSON `json:"edges" bson:"edges"`
}

// NodeJSON is the wire form of a node, including its final position.
type NodeJSON struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	Kind  Kind    `json:"kind,omitempty" bson:"kind,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// EdgeJSON is the wire form of a directed edge.
type EdgeJSON struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Export converts a Graph to its serialization format, preserving order.
func Export(g *Graph) GraphJSON {
	out := GraphJSON{
		Nodes: make([]NodeJSON, g.NodeCount()),
		Edges: make([]EdgeJSON, g.EdgeCount()),
	}
	for i, n := range g.Nodes() {
		out.Nodes[i] = NodeJSON{ID: n.ID, Label: n.Label, Kind: n.Kind, X: n.X, Y: n.Y}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = EdgeJSON{From: e.From, To: e.To}
	}
	return out
}

// Import converts serialized form back into a Graph.
// Missing labels are re-derived from the ID and missing kinds are
// re-classified, so hand-written files only need ids and edges.
// Returns ErrInvalidEdgeEndpoint if an edge references an unknown node.
func Import(gj GraphJSON) (*Graph, error) {
	g := NewGraph()
	for _, nj := range gj.Nodes {
		label := nj.Label
		if label == "" {
			label = TitleCase(nj.ID)
		}
		kind := nj.Kind
		if kind == "" {
			kind = Classify(nj.ID)
		}
		g.Add(Node{ID: nj.ID, Label: label, Kind: kind, X: nj.X, Y: nj.Y})
	}
	for _, ej := range gj.Edges {
		if _, ok := g.Node(ej.From); !ok {
			return nil, fmt.Errorf("edge %s→%s: %w", ej.From, ej.To, ErrInvalidEdgeEndpoint)
		}
		if _, ok := g.Node(ej.To); !ok {
			return nil, fmt.Errorf("edge %s→%s: %w", ej.From, ej.To, ErrInvalidEdgeEndpoint)
		}
		g.AddEdge(ej.From, ej.To)
	}
	return g, nil
}

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph writes a Graph as JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Export(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r.
func ReadGraph(r io.Reader) (*Graph, error) {
	var gj GraphJSON
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Import(gj)
}

// WriteGraphFile writes a Graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
