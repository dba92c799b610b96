// Package extract converts free-form architecture text into a sketch graph.
//
// The extractor is heuristic, not a language parser: an ordered list of
// fixed lexical rules is tried per line, first match wins.
//
//  1. Arrow form: lines containing "->", "→", or the standalone word "to"
//     split into a source and one or more destinations. A trailing
//     connector verb on the source side is stripped.
//  2. Verb form: "<source> <verb> to <destinations>" for a fixed verb set.
//  3. Orphan: anything else becomes a single node with no edges.
//
// Destination lists split on commas and the word "and", so
//
//	api gateway -> auth service, database and cache
//
// produces three edges from one source. Node identity resolves through
// [sketch.Graph.Ensure]; repeated mentions of a phrase in any casing or
// spacing are one node. Self-loops are dropped and duplicate (from, to)
// pairs collapse to their first occurrence.
//
// Extract never fails: malformed lines degrade to orphan nodes, empty
// lines contribute nothing, and empty text yields an empty graph.
package extract
