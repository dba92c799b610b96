package extract

import (
	"regexp"
	"strings"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

var (
	// lineRe splits input on one-or-more newlines.
	lineRe = regexp.MustCompile(`\n+`)

	// spaceRe collapses whitespace runs after comma normalization.
	spaceRe = regexp.MustCompile(`\s+`)

	// arrowRe matches the connector tokens of the arrow form. "to" only
	// counts as a connector when it stands alone as a word.
	arrowRe = regexp.MustCompile(`(?i)->|→|\bto\b`)

	// stripVerbRe removes a trailing connector verb from the source side
	// of an arrow-form line ("api gateway connects -> db").
	stripVerbRe = regexp.MustCompile(`(?i)\s*(connects?|talks?|calls?|publish(?:es)?|reads|writes)\s*$`)

	// verbFormRe matches whole lines of the shape "<source> <verb> to
	// <destinations>". The verb set differs from stripVerbRe by "sends",
	// which only appears in natural phrasing.
	verbFormRe = regexp.MustCompile(`(?i)^(.+?)\s+(connects?|talks?|calls?|publish(?:es)?|sends|reads|writes)\s+to\s+(.+)$`)

	// destRe splits a destination list on commas and the word "and".
	destRe = regexp.MustCompile(`(?i),|\band\b`)
)

// Extract builds a fresh graph from raw architecture text.
// The returned graph carries no positions; run the layout engine next.
// Extract has no failure mode: any input yields a valid (possibly empty)
// graph.
func Extract(text string) *sketch.Graph {
	g := sketch.NewGraph()

	for _, raw := range lineRe.Split(text, -1) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = normalizeCommas(line)

		if extractArrow(g, line) {
			continue
		}
		if extractVerb(g, line) {
			continue
		}
		// Orphan line: the whole phrase is one node.
		g.Ensure(line)
	}

	dedupeEdges(g)
	return g
}

// normalizeCommas pads commas with spaces and collapses whitespace runs,
// so "a,b" and "a , b" tokenize identically.
func normalizeCommas(line string) string {
	line = strings.ReplaceAll(line, ",", " , ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
}

// extractArrow handles the arrow form. It reports whether the line split
// into at least two parts; with fewer parts the caller falls through to
// the next rule.
func extractArrow(g *sketch.Graph, line string) bool {
	if !arrowRe.MatchString(line) {
		return false
	}
	parts := arrowRe.Split(line, -1)
	if len(parts) < 2 {
		return false
	}

	src := stripVerbRe.ReplaceAllString(parts[0], "")
	// Pieces beyond the first split point belong to the destination side;
	// rejoin them before splitting the destination list.
	right := strings.Join(parts[1:], " to ")
	addEdges(g, src, right)
	return true
}

// extractVerb handles natural phrasing without arrow tokens.
func extractVerb(g *sketch.Graph, line string) bool {
	m := verbFormRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	addEdges(g, m[1], m[3])
	return true
}

// addEdges ensures the source and every destination in the comma/"and"
// separated list, registering one directed edge per destination.
func addEdges(g *sketch.Graph, src, destList string) {
	from := g.Ensure(src)
	for _, d := range destRe.Split(destList, -1) {
		to := g.Ensure(d)
		if from != nil && to != nil {
			g.AddEdge(from.ID, to.ID)
		}
	}
}

// dedupeEdges drops self-loops and keeps only the first occurrence of
// each ordered (from, to) pair, preserving discovery order.
func dedupeEdges(g *sketch.Graph) {
	type pair struct{ from, to string }
	seen := make(map[pair]bool)
	edges := g.Edges()
	kept := edges[:0]
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		p := pair{e.From, e.To}
		if seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, e)
	}
	g.SetEdges(kept)
}
