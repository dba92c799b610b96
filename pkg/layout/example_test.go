package layout_test

import (
	"fmt"

	"github.com/tillvoss/archsketch/pkg/extract"
	"github.com/tillvoss/archsketch/pkg/layout"
)

func ExampleLayout() {
	g := extract.Extract("web app -> api\napi -> db")
	layout.Layout(g, 800, 600)

	// Positions are deterministic for a fixed graph and canvas, and
	// every node ends up inside the canvas bounds.
	for _, n := range g.Nodes() {
		inside := n.X > 0 && n.X < 800 && n.Y > 0 && n.Y < 600
		fmt.Printf("%s inside canvas: %v\n", n.ID, inside)
	}
	// Output:
	// web app inside canvas: true
	// api inside canvas: true
	// db inside canvas: true
}

func ExampleLayoutWithConfig() {
	g := extract.Extract("a -> b")

	cfg := layout.DefaultConfig()
	cfg.Iterations = 0 // circular placement only

	layout.LayoutWithConfig(g, 800, 600, cfg)

	// With two nodes the circle degenerates to the vertical diameter:
	// first node at the top, second at the bottom.
	a := g.Nodes()[0]
	b := g.Nodes()[1]
	fmt.Printf("a: (%.0f, %.0f)\n", a.X, a.Y)
	fmt.Printf("b: (%.0f, %.0f)\n", b.X, b.Y)
	// Output:
	// a: (400, 90)
	// b: (400, 510)
}
