package sketch

import (
	"errors"
	"path/filepath"
	"testing"
)

func buildTestGraph() *Graph {
	g := NewGraph()
	g.Ensure("api gateway")
	g.Ensure("auth service")
	g.Ensure("database")
	g.AddEdge("api gateway", "auth service")
	g.AddEdge("api gateway", "database")
	for i, n := range g.Nodes() {
		n.X = float64(100 + 10*i)
		n.Y = float64(200 + 10*i)
	}
	return g
}

func TestRoundTripPreservesOrder(t *testing.T) {
	g := buildTestGraph()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	back, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	want := g.Nodes()
	got := back.Nodes()
	if len(got) != len(want) {
		t.Fatalf("NodeCount = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("nodes[%d].ID = %q, want %q (order must survive round-trip)", i, got[i].ID, want[i].ID)
		}
		if got[i].X != want[i].X || got[i].Y != want[i].Y {
			t.Errorf("nodes[%d] position = (%g,%g), want (%g,%g)", i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
		if got[i].Kind != want[i].Kind {
			t.Errorf("nodes[%d].Kind = %q, want %q", i, got[i].Kind, want[i].Kind)
		}
	}

	if len(back.Edges()) != len(g.Edges()) {
		t.Fatalf("EdgeCount = %d, want %d", len(back.Edges()), len(g.Edges()))
	}
	for i, e := range back.Edges() {
		if e != g.Edges()[i] {
			t.Errorf("edges[%d] = %+v, want %+v", i, e, g.Edges()[i])
		}
	}
}

func TestImportDerivesLabelAndKind(t *testing.T) {
	g, err := Import(GraphJSON{
		Nodes: []NodeJSON{{ID: "auth service", X: 1, Y: 2}},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	n, ok := g.Node("auth service")
	if !ok {
		t.Fatal("node missing after import")
	}
	if n.Label != "Auth Service" {
		t.Errorf("Label = %q, want %q", n.Label, "Auth Service")
	}
	if n.Kind != Classify("auth service") {
		t.Errorf("Kind = %q, want %q", n.Kind, Classify("auth service"))
	}
}

func TestImportRejectsDanglingEdge(t *testing.T) {
	_, err := Import(GraphJSON{
		Nodes: []NodeJSON{{ID: "a"}},
		Edges: []EdgeJSON{{From: "a", To: "ghost"}},
	})
	if !errors.Is(err, ErrInvalidEdgeEndpoint) {
		t.Errorf("err = %v, want ErrInvalidEdgeEndpoint", err)
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := buildTestGraph()
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	back, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if back.NodeCount() != g.NodeCount() || back.EdgeCount() != g.EdgeCount() {
		t.Errorf("round-trip counts = (%d,%d), want (%d,%d)",
			back.NodeCount(), back.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
