// Package layout arranges sketch graphs on a 2D canvas.
//
// The engine runs two phases. Nodes are first placed evenly on a circle
// around the canvas center, first node at the top, in insertion order.
// A fixed number of spring relaxation iterations then nudges connected
// nodes toward a target rest distance while weakly re-centering the whole
// graph so it cannot drift off-canvas.
//
// The iteration count is fixed - there is no convergence check and no
// early exit - so runtime and results are fully deterministic for a given
// graph topology, insertion order, and canvas size. Callers needing
// responsiveness on very large graphs should run Layout off the
// interactive goroutine.
//
// Tuning constants live in [Config]; [DefaultConfig] matches the values
// the renderers are calibrated for.
package layout
