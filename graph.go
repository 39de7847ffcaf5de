package cfndep

import "sort"

// EdgeKind distinguishes cross-template imports from dynamic references.
type EdgeKind string

const (
	// EdgeImport is a reference to another template's export.
	EdgeImport EdgeKind = "import"
	// EdgeDynamic is a reference to an external secret or parameter store.
	EdgeDynamic EdgeKind = "dynamic"
)

// UnknownTarget marks an import whose producer is not among the scanned
// templates. Rendering it keeps dangling references visible instead of
// silently dropping them.
const UnknownTarget = "(unknown)"

// Edge is a directed dependency between a template and the entity it references.
type Edge struct {
	// Src is path of the referencing template
	Src string
	// Dst is path of the producing template, [UnknownTarget], or the marker
	// itself for [EdgeDynamic] edges
	Dst string
	// Label is the referenced export name or the dynamic marker
	Label string
	Kind  EdgeKind
}

// Graph is the dependency graph built from all scanned templates.
type Graph struct {
	// Producers maps an exported name to the template which publishes it
	Producers map[string]string
	// Edges lists every reference. Two templates importing the same name
	// produce two edges.
	Edges []Edge
}

// BuildGraph aggregates scan results into a producer index and an edge list.
// When two templates export the same name, the later one in sorted path order
// silently wins. Templates and their reference sets are iterated in sorted
// order so edge generation never depends on map iteration order.
func BuildGraph(results map[string]*ScanResult) *Graph {
	paths := sortedKeys(results)

	producers := make(map[string]string)
	for _, path := range paths {
		for _, name := range sortedKeys(results[path].Exports) {
			producers[name] = path
		}
	}

	var edges []Edge
	for _, path := range paths {
		res := results[path]
		for _, name := range sortedKeys(res.Imports) {
			dst, ok := producers[name]
			if !ok {
				dst = UnknownTarget
			}
			edges = append(edges, Edge{Src: path, Dst: dst, Label: name, Kind: EdgeImport})
		}

		// a dynamic reference points at an external resource with no owning
		// template, so the marker is its own target
		for _, marker := range sortedKeys(res.Dynamics) {
			edges = append(edges, Edge{Src: path, Dst: marker, Label: marker, Kind: EdgeDynamic})
		}
	}

	return &Graph{Producers: producers, Edges: edges}
}

// SelfReference reports a template importing one of its own exports.
type SelfReference struct {
	Path string
	Name string
}

// CheckSelfReferences returns one entry per template and name where the
// template's imports overlap its exports. Advisory only; the graph is built
// regardless.
func CheckSelfReferences(results map[string]*ScanResult) []SelfReference {
	var refs []SelfReference
	for _, path := range sortedKeys(results) {
		res := results[path]
		for _, name := range sortedKeys(res.Imports) {
			if _, ok := res.Exports[name]; ok {
				refs = append(refs, SelfReference{Path: path, Name: name})
			}
		}
	}

	return refs
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
