package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

func testDiagram(id string, updated time.Time) *Diagram {
	return &Diagram{
		ID:   id,
		Name: "diagram " + id,
		Text: "api -> db",
		Graph: sketch.GraphJSON{
			Nodes: []sketch.NodeJSON{
				{ID: "api", Kind: sketch.KindAPI, X: 100, Y: 100},
				{ID: "db", Kind: sketch.KindDB, X: 200, Y: 200},
			},
			Edges: []sketch.EdgeJSON{{From: "api", To: "db"}},
		},
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestMemoryStoreSaveGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := testDiagram("d1", time.Now())
	if err := s.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != d.Name || got.Text != d.Text {
		t.Errorf("Get = %+v, want %+v", got, d)
	}
	if len(got.Graph.Nodes) != 2 || len(got.Graph.Edges) != 1 {
		t.Errorf("graph snapshot = %d nodes %d edges", len(got.Graph.Nodes), len(got.Graph.Edges))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Save(ctx, testDiagram("d1", time.Now()))
	updated := testDiagram("d1", time.Now())
	updated.Name = "renamed"
	_ = s.Save(ctx, updated)

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", got.Name)
	}
	if all, _ := s.List(ctx); len(all) != 1 {
		t.Errorf("List length = %d, want 1 after replace", len(all))
	}
}

func TestMemoryStoreListOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	_ = s.Save(ctx, testDiagram("old", base.Add(-2*time.Hour)))
	_ = s.Save(ctx, testDiagram("new", base))
	_ = s.Save(ctx, testDiagram("middle", base.Add(-time.Hour)))

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"new", "middle", "old"}
	if len(got) != len(want) {
		t.Fatalf("List length = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List[%d].ID = %q, want %q (most recent first)", i, got[i].ID, id)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Save(ctx, testDiagram("d1", time.Now()))
	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Error("deleted diagram should be gone")
	}
	if err := s.Delete(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCopiesOnReadAndWrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	d := testDiagram("d1", time.Now())
	_ = s.Save(ctx, d)
	d.Name = "mutated after save"

	got, _ := s.Get(ctx, "d1")
	if got.Name == "mutated after save" {
		t.Error("store must copy on save, not alias the caller's value")
	}

	got.Name = "mutated after get"
	again, _ := s.Get(ctx, "d1")
	if again.Name == "mutated after get" {
		t.Error("store must copy on read")
	}
}
