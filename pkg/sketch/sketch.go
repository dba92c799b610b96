package sketch

import (
	"strings"
)

// Node represents one architecture component with a stable identity,
// a display label, a semantic category, and a mutable 2D position.
//
// ID is the normalized source phrase that first introduced the node and is
// the sole identity key. X and Y are written by the layout engine and by
// interactive dragging; they start at the origin until layout runs.
type Node struct {
	ID    string  // normalized identity key
	Label string  // title-cased display name (derived, non-identity)
	Kind  Kind    // semantic category, assigned once at creation
	X, Y  float64 // position in canvas units
}

// Edge is a directed relationship between two node identities.
// Edges store plain ID pairs rather than node pointers; consumers resolve
// endpoints through [Graph.Node] at render time.
type Edge struct {
	From string
	To   string
}

// Graph holds nodes in insertion order plus an append-only edge list.
// Insertion order is significant: it determines the initial circular
// placement and therefore the final layout.
//
// The zero value is not usable - use NewGraph.
type Graph struct {
	nodes []*Node
	index map[string]*Node
	edges []Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*Node)}
}

// NormalizeID converts a raw phrase into a node identity key: trimmed,
// lowercased, with whitespace runs collapsed to single spaces.
// Returns "" for phrases that are empty after trimming.
func NormalizeID(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, " ")
}

// Ensure returns the node for name, creating it if this is its first
// mention. Identity resolution happens on the normalized phrase, so
// differently-cased or differently-spaced mentions map to one node.
// Returns nil if name is empty after trimming.
//
// New nodes are classified once at creation; the kind is never recomputed.
func (g *Graph) Ensure(name string) *Node {
	id := NormalizeID(name)
	if id == "" {
		return nil
	}
	if n, ok := g.index[id]; ok {
		return n
	}
	n := &Node{
		ID:    id,
		Label: TitleCase(id),
		Kind:  Classify(id),
	}
	g.nodes = append(g.nodes, n)
	g.index[id] = n
	return n
}

// Add inserts a fully-specified node, keeping the index consistent.
// Existing nodes with the same ID are left untouched and returned.
// This is the deserialization path; extraction uses Ensure.
func (g *Graph) Add(n Node) *Node {
	if n.ID == "" {
		return nil
	}
	if existing, ok := g.index[n.ID]; ok {
		return existing
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.index[node.ID] = node
	return node
}

// AddEdge appends a directed edge between two node IDs.
// Endpoints are not validated here; the extractor only registers edges
// between nodes it has ensured, and deserialization validates separately.
func (g *Graph) AddEdge(from, to string) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

// SetEdges replaces the edge list. Used by the extractor's final
// deduplication pass; order of the provided slice is preserved.
func (g *Graph) SetEdges(edges []Edge) {
	g.edges = edges
}

// Node looks up a node by its identity key.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns the node sequence in insertion order.
// The returned slice is the graph's own backing store; callers must not
// append to it, though mutating node positions through it is the intended
// path for the layout engine and drag interaction.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edge sequence in discovery order.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// TitleCase renders an identity key as a display label: split on
// whitespace, hyphens and underscores, capitalize the first letter of
// each word, join with single spaces. "api-gateway" becomes "Api Gateway".
func TitleCase(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_'
	})
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
