package encoding

import (
	"fmt"

	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"go.interactor.dev/cfndep"
)

// BuildDOTGraph returns the dependency graph in Graphviz DOT format. Unlike
// the Mermaid output it is meant for piping into graphviz tooling rather than
// embedding into Markdown. Node names match the Mermaid rendering: template
// file names, the unknown-producer sentinel and normalized dynamic reference
// keys.
func BuildDOTGraph(g *cfndep.Graph) ([]byte, error) {
	directed := multi.NewDirectedGraph()

	nodeByName := mapNodes(g)
	for _, node := range nodeByName {
		directed.AddNode(node)
	}

	for _, edge := range g.Edges {
		src, dst := endpointNames(edge)
		if src == dst {
			// gonum graphs reject self loops; the self-reference checker
			// reports these separately
			continue
		}
		directed.SetLine(directed.NewLine(nodeByName[src], nodeByName[dst]))
	}

	bytes, err := dot.MarshalMulti(directed, "cfndep", "", "")
	if err != nil {
		return nil, fmt.Errorf("marshaling multigraph: %w", err)
	}

	return bytes, nil
}

// mapNodes returns map where key is the rendered node name of each edge endpoint
func mapNodes(g *cfndep.Graph) map[string]graphNode {
	out := make(map[string]graphNode)
	for _, edge := range g.Edges {
		src, dst := endpointNames(edge)
		for _, name := range []string{src, dst} {
			if _, ok := out[name]; !ok {
				out[name] = graphNode{id: int64(len(out)), name: name}
			}
		}
	}

	return out
}

// endpointNames returns the rendered node names of both ends of the edge.
func endpointNames(e cfndep.Edge) (src, dst string) {
	src = shortName(e.Src)
	if e.Kind == cfndep.EdgeDynamic {
		_, node := dynamicParts(e.Label)
		return src, node
	}

	return src, shortName(e.Dst)
}

type graphNode struct {
	id   int64
	name string
}

// ID implements graph.Node
func (n graphNode) ID() int64 {
	return n.id
}

// DOTID implements dot.Node
func (n graphNode) DOTID() string {
	return n.name
}
