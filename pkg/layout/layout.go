package layout

import (
	"math"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

// Config holds the layout tuning constants. All fields are in canvas
// units unless noted.
type Config struct {
	// RestLength is the target distance between two nodes joined by an
	// edge. Longer edges pull their endpoints together, shorter edges
	// push them apart.
	RestLength float64

	// Spring scales the per-iteration correction applied to an edge's
	// endpoints, as a fraction of the deviation from RestLength.
	Spring float64

	// Iterations is the exact number of relaxation passes. There is no
	// convergence check; the loop always runs to completion.
	Iterations int

	// RadiusFactor sizes the initial placement circle as a fraction of
	// the smaller canvas dimension.
	RadiusFactor float64

	// Centering is the per-iteration drift of every node toward the
	// canvas center. Keeps disconnected components on screen over many
	// iterations.
	Centering float64
}

// DefaultConfig returns the tuning the renderers are calibrated for.
func DefaultConfig() Config {
	return Config{
		RestLength:   140,
		Spring:       0.02,
		Iterations:   80,
		RadiusFactor: 0.35,
		Centering:    0.001,
	}
}

// Layout positions the graph's nodes in place using the default tuning.
// Deterministic: identical topology, insertion order, and canvas size
// produce bit-identical coordinates.
func Layout(g *sketch.Graph, width, height float64) {
	LayoutWithConfig(g, width, height, DefaultConfig())
}

// LayoutWithConfig positions the graph's nodes in place using explicit
// tuning. Mutates node coordinates only; nodes and edges are never added
// or removed.
func LayoutWithConfig(g *sketch.Graph, width, height float64, cfg Config) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return
	}

	placeCircle(nodes, width, height, cfg.RadiusFactor)
	relax(g, width, height, cfg)
}

// placeCircle spreads nodes evenly on a circle around the canvas center,
// first node at the top (angle -π/2), proceeding clockwise in insertion
// order.
func placeCircle(nodes []*sketch.Node, width, height, radiusFactor float64) {
	cx, cy := width/2, height/2
	r := radiusFactor * math.Min(width, height)
	n := float64(len(nodes))

	for i, node := range nodes {
		a := 2*math.Pi*float64(i)/n - math.Pi/2
		node.X = cx + r*math.Cos(a)
		node.Y = cy + r*math.Sin(a)
	}
}

// relax runs the fixed spring iteration loop. Edge corrections within one
// pass use coordinates already updated earlier in the same pass; with the
// deterministic edge order this keeps results reproducible.
func relax(g *sketch.Graph, width, height float64, cfg Config) {
	for i := 0; i < cfg.Iterations; i++ {
		for _, e := range g.Edges() {
			a, okA := g.Node(e.From)
			b, okB := g.Node(e.To)
			if !okA || !okB {
				continue
			}

			dx, dy := b.X-a.X, b.Y-a.Y
			d := math.Hypot(dx, dy)
			if d == 0 {
				d = 1 // coincident endpoints, avoid dividing by zero
			}
			ux, uy := dx/d, dy/d

			k := cfg.Spring * (d - cfg.RestLength)
			a.X += k * ux
			a.Y += k * uy
			b.X -= k * ux
			b.Y -= k * uy
		}

		// Weak centering drift applies to every node, connected or not.
		for _, n := range g.Nodes() {
			n.X += (width/2 - n.X) * cfg.Centering
			n.Y += (height/2 - n.Y) * cfg.Centering
		}
	}
}
