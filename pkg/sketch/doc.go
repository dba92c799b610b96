// Package sketch defines the architecture graph model shared by the
// extractor, the layout engine, and the rendering surfaces.
//
// # Core Types
//
//   - [Graph]: insertion-ordered set of nodes plus a directed edge list
//   - [Node]: one architecture component with identity, label, kind, position
//   - [Edge]: a directed (from, to) pair of node identifiers
//   - [Kind]: the closed set of semantic categories used for color coding
//
// # Identity
//
// A node's identity is its normalized source phrase: trimmed, lowercased,
// with whitespace runs collapsed. Two mentions of "API Gateway" and
// "api gateway" resolve to the same node. The display label is a
// title-cased rendering of the identity and carries no identity itself.
//
// # Serialization
//
// Graphs use a node-link JSON format that round-trips positions and kinds:
//
//	{
//	  "nodes": [{"id": "api gateway", "label": "Api Gateway", "kind": "api", "x": 400, "y": 90}],
//	  "edges": [{"from": "api gateway", "to": "database"}]
//	}
//
// Common operations:
//
//	g, _ := sketch.ReadGraphFile("sketch.json")   // File → Graph
//	sketch.WriteGraphFile(g, "out.json")          // Graph → File
//	data, _ := sketch.MarshalGraph(g)             // Graph → []byte
//
// Node and edge order is preserved exactly: insertion order drives the
// circular placement of the layout engine, so serialization never sorts.
//
// # Concurrency
//
// A Graph has one writer at a time by construction: the extractor builds
// it, the layout engine mutates coordinates in place, then read-only
// consumers take over. No internal locking is performed.
package sketch
