package sketch

import (
	"testing"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "api gateway", "api gateway"},
		{"trims", "  api gateway  ", "api gateway"},
		{"lowercases", "API Gateway", "api gateway"},
		{"collapses runs", "api    gateway", "api gateway"},
		{"tabs", "api\tgateway", "api gateway"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "api gateway", "Api Gateway"},
		{"hyphen", "api-gateway", "Api Gateway"},
		{"underscore", "auth_service", "Auth Service"},
		{"single word", "database", "Database"},
		{"mixed separators", "user-data_store", "User Data Store"},
		{"unicode", "über service", "Über Service"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureIdentity(t *testing.T) {
	g := NewGraph()

	a := g.Ensure("API Gateway")
	b := g.Ensure("api gateway")
	c := g.Ensure("api   gateway")

	if a == nil {
		t.Fatal("Ensure returned nil for valid name")
	}
	if a != b || a != c {
		t.Error("differently-cased and differently-spaced mentions should resolve to one node")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
	if a.ID != "api gateway" {
		t.Errorf("ID = %q, want %q", a.ID, "api gateway")
	}
	if a.Label != "Api Gateway" {
		t.Errorf("Label = %q, want %q", a.Label, "Api Gateway")
	}
}

func TestEnsureEmpty(t *testing.T) {
	g := NewGraph()
	if n := g.Ensure("   "); n != nil {
		t.Errorf("Ensure on blank input = %+v, want nil", n)
	}
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", g.NodeCount())
	}
}

func TestEnsureClassifiesOnce(t *testing.T) {
	g := NewGraph()
	n := g.Ensure("auth service")
	if n.Kind != KindAPI && n.Kind != KindAuth {
		t.Fatalf("unexpected kind %q", n.Kind)
	}
	want := n.Kind

	// A second mention must not recompute or change the kind.
	again := g.Ensure("auth service")
	if again.Kind != want {
		t.Errorf("kind changed on re-ensure: %q -> %q", want, again.Kind)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := NewGraph()
	names := []string{"gamma", "alpha", "beta"}
	for _, n := range names {
		g.Ensure(n)
	}

	got := g.Nodes()
	if len(got) != len(names) {
		t.Fatalf("NodeCount = %d, want %d", len(got), len(names))
	}
	for i, n := range got {
		if n.ID != names[i] {
			t.Errorf("nodes[%d].ID = %q, want %q (insertion order must hold)", i, n.ID, names[i])
		}
	}
}

func TestAddKeepsExisting(t *testing.T) {
	g := NewGraph()
	first := g.Add(Node{ID: "db", Label: "Db", Kind: KindDB, X: 10, Y: 20})
	second := g.Add(Node{ID: "db", Label: "Other", X: 99, Y: 99})

	if first != second {
		t.Error("Add with duplicate ID should return the existing node")
	}
	if first.X != 10 || first.Label != "Db" {
		t.Error("Add with duplicate ID must not overwrite the existing node")
	}
}

func TestNodeLookup(t *testing.T) {
	g := NewGraph()
	g.Ensure("web app")

	if _, ok := g.Node("web app"); !ok {
		t.Error("Node should find an ensured id")
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node should miss an unknown id")
	}
}

func TestEdges(t *testing.T) {
	g := NewGraph()
	g.Ensure("a")
	g.Ensure("b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "b") // duplicates are the extractor's problem, not the graph's

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}

	g.SetEdges([]Edge{{From: "a", To: "b"}})
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount after SetEdges = %d, want 1", g.EdgeCount())
	}
}
