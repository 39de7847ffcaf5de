// Package encoding serializes dependency graphs into diagram notations.
package encoding

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.interactor.dev/cfndep"
	"go.interactor.dev/cfndep/dynref"
)

// Direction is orientation of the rendered Mermaid graph.
type Direction string

// Supported orientations.
const (
	LeftToRight Direction = "LR"
	BottomToTop Direction = "BT"
)

// ParseDirection validates a direction flag value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case LeftToRight, BottomToTop:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unsupported direction: %q, must be %q or %q", s, LeftToRight, BottomToTop)
	}
}

const header = "# CFn template dependency\n\n```mermaid"

// BuildMermaid renders the edge list as Mermaid flowchart text. Edge lines are
// sorted by their full rendered text, so output is byte-identical for the same
// graph no matter in which order templates were scanned. Dynamic references
// are rendered as cylindrical nodes to mark them as external resources rather
// than templates.
//
// https://mermaid.js.org/syntax/flowchart.html#cylindrical-shape
func BuildMermaid(g *cfndep.Graph, direction Direction) string {
	lines := []string{header, "graph " + string(direction)}

	edgeLines := make([]string, 0, len(g.Edges))
	for _, edge := range g.Edges {
		edgeLines = append(edgeLines, renderEdge(edge))
	}
	sort.Strings(edgeLines)

	lines = append(lines, edgeLines...)
	lines = append(lines, "```\n")
	return strings.Join(lines, "\n")
}

func renderEdge(e cfndep.Edge) string {
	src := shortName(e.Src)
	if e.Kind == cfndep.EdgeDynamic {
		label, node := dynamicParts(e.Label)
		return fmt.Sprintf("    %s-->|%s|%s[(%s)]", src, label, node, node)
	}

	return fmt.Sprintf("    %s-->|%s|%s", src, e.Label, shortName(e.Dst))
}

// dynamicParts picks the edge label and node name for a dynamic reference.
// Markers with an unrecognized service tag fall back to the generic label with
// the whole normalized marker as node name.
func dynamicParts(marker string) (label, node string) {
	if ref, ok := dynref.Parse(marker); ok {
		return ref.Service, dynref.NormalizeKey(ref.Key)
	}

	return "dynamic", dynref.NormalizeKey(marker)
}

// shortName reduces a template path to its file name. The unknown-producer
// sentinel is rendered verbatim.
func shortName(identity string) string {
	if identity == cfndep.UnknownTarget {
		return identity
	}
	return filepath.Base(identity)
}
