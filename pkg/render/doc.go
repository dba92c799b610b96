// Package render draws laid-out sketch graphs.
//
// Two rendering paths are provided:
//
//   - [SVG]: a hand-written SVG sink that honors the layout engine's
//     coordinates exactly. Nodes are filled circles colored by kind with
//     a labeled background rect above, edges are arrow-terminated line
//     segments shortened by the node radius at each end.
//   - [ToDOT] plus [RenderSVG]/[RenderPNG]: Graphviz output with node
//     positions pinned, for interoperability with DOT tooling.
//
// Both paths consume the graph read-only; run the layout engine first or
// every node renders at the origin.
package render
