// Package pkg provides the core libraries for archsketch.
//
// # Overview
//
// Archsketch turns loosely structured architecture descriptions into
// labeled, color-coded diagrams. The pkg directory is organized around
// the data flow:
//
//	Raw text
//	     ↓
//	[extract] package (lexical rules → graph)
//	     ↓
//	[sketch] package (graph model + serialization)
//	     ↓
//	[layout] package (circular placement + spring relaxation)
//	     ↓
//	[render] package (SVG / DOT / PNG output)
//
// [pipeline] orchestrates the three stages with per-stage caching
// ([cache]), [store] persists diagram snapshots for the HTTP API, and
// [config], [errors], [observability] and [buildinfo] carry the
// application plumbing.
//
// # Quick Start
//
//	g := extract.Extract("frontend ui -> api gateway\napi gateway -> database")
//	layout.Layout(g, 800, 600)
//	svg := render.SVG(g, 800, 600)
package pkg
