package cfndep

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"go.interactor.dev/cfndep/decode"
	"go.interactor.dev/cfndep/dynref"
)

// ScanResult holds the references extracted from a single template.
// All three sets contain only non-empty strings; duplicates within one
// template collapse.
type ScanResult struct {
	// Exports are names the template publishes via Outputs.*.Export.Name
	Exports map[string]struct{}
	// Imports are names the template consumes via Fn::ImportValue
	Imports map[string]struct{}
	// Dynamics are raw {{resolve:...}} markers found in string scalars
	Dynamics map[string]struct{}
}

func newScanResult() *ScanResult {
	return &ScanResult{
		Exports:  map[string]struct{}{},
		Imports:  map[string]struct{}{},
		Dynamics: map[string]struct{}{},
	}
}

// Scanner can scan the directories looking for CloudFormation templates
type Scanner struct {
	log      *slog.Logger
	skipDirs map[string]struct{}
}

// NewScanner returns initialized instance of Scanner
func NewScanner(log *slog.Logger, opts ...ScannerOpt) *Scanner {
	s := &Scanner{log: log, skipDirs: defaultSkips}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ScannerOpt is used by [NewScanner] to customize behaviour of created Scanner
type ScannerOpt func(*Scanner)

// WithSkipDirs replaces the default set of directory names excluded from discovery
func WithSkipDirs(dirs map[string]struct{}) ScannerOpt {
	return func(s *Scanner) {
		s.skipDirs = dirs
	}
}

var defaultSkips = map[string]struct{}{".git": {}, ".idea": {}, ".vscode": {}}

// Discover recursively searches root for CloudFormation templates (.yml, .yaml).
// Returned paths are sorted so the scan order is stable between runs.
func (s *Scanner) Discover(root string) ([]string, error) {
	if err := checkIfDirExists(root); err != nil {
		return nil, err
	}

	var templates []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if _, ok := s.skipDirs[d.Name()]; ok {
				return fs.SkipDir
			}
			return nil
		}

		if isTemplate(d.Name()) {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Strings(templates)
	return templates, nil
}

func isTemplate(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}

// ScanFiles decodes each template and extracts its references. It fails on the
// first template which cannot be decoded, returning the [decode.ParseError]; no
// partial result is produced for that run.
func (s *Scanner) ScanFiles(paths []string) (map[string]*ScanResult, error) {
	results := make(map[string]*ScanResult, len(paths))
	for _, path := range paths {
		s.log.Debug("loading template", slog.String("path", path))

		doc, err := decode.File(path)
		if err != nil {
			return nil, err
		}

		res := Extract(doc)
		s.log.Debug("extracted references",
			slog.String("path", path),
			slog.Int("exports", len(res.Exports)),
			slog.Int("imports", len(res.Imports)),
			slog.Int("dynamics", len(res.Dynamics)))
		results[path] = res
	}

	return results, nil
}

// Scan recursively scans the root directory and extracts references from every
// template found
func (s *Scanner) Scan(root string) (map[string]*ScanResult, error) {
	templates, err := s.Discover(root)
	if err != nil {
		return nil, err
	}

	return s.ScanFiles(templates)
}

// importKey is the long form of the import intrinsic; decode rewrites the
// !ImportValue short form into it.
const importKey = "Fn::ImportValue"

// Extract walks a decoded template tree and collects exported names, imported
// names and dynamic reference markers.
func Extract(doc *yaml.Node) *ScanResult {
	res := newScanResult()
	root := unwrapDocument(doc)
	if root == nil {
		return res
	}

	collectExports(root, res)
	walk(root, res)
	return res
}

func unwrapDocument(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return n.Content[0]
	}
	return n
}

// collectExports reads Outputs.*.Export.Name entries. A missing or malformed
// Outputs section yields no exports, not an error.
func collectExports(root *yaml.Node, res *ScanResult) {
	outputs := mappingValue(root, "Outputs")
	if outputs == nil || outputs.Kind != yaml.MappingNode {
		return
	}

	for i := 1; i < len(outputs.Content); i += 2 {
		export := mappingValue(outputs.Content[i], "Export")
		if export == nil {
			continue
		}

		name := mappingValue(export, "Name")
		if name != nil && name.Kind == yaml.ScalarNode && name.Value != "" {
			res.Exports[name.Value] = struct{}{}
		}
	}
}

// walk visits every node of the tree: mapping values contribute imports when
// keyed by Fn::ImportValue, string scalars contribute dynamic markers.
// Traversal enters every mapping value and sequence element regardless of
// depth, including the value of an Fn::ImportValue key itself.
func walk(n *yaml.Node, res *ScanResult) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			walk(c, res)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.ScalarNode && key.Value == importKey &&
				value.Kind == yaml.ScalarNode && value.Value != "" {
				res.Imports[value.Value] = struct{}{}
			}
			walk(value, res)
		}
	case yaml.ScalarNode:
		for _, marker := range dynref.FindAll(n.Value) {
			res.Dynamics[marker] = struct{}{}
		}
	case yaml.AliasNode:
		walk(n.Alias, res)
	}
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func checkIfDirExists(path string) error {
	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("path does not exist: %s", path)
	case err != nil:
		return err
	}

	if !stat.IsDir() {
		return fmt.Errorf("it is not directory: %s", path)
	}
	return nil
}
