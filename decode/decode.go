// Package decode loads CloudFormation templates into yaml.Node trees and
// rewrites short-form intrinsics (!ImportValue, !Ref, !GetAtt, ...) into their
// long Fn:: form, so the rest of the pipeline deals with a single spelling.
package decode

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError is returned when a template cannot be read or decoded.
type ParseError struct {
	// Path of the offending template
	Path string
	Err  error
}

// Error implements error
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse YAML in %s : %v", e.Path, e.Err)
}

// Unwrap exposes the underlying decoder error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// File reads and decodes a single template. The returned node is the document
// root with all short-form intrinsics normalized.
func File(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return Bytes(path, data)
}

// Bytes decodes template content. path is used for error reporting only.
func Bytes(path string, data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	normalize(&doc)
	return &doc, nil
}

// normalize rewrites short-form intrinsic tags in place, depth first, e.g.
// `!ImportValue Shared` becomes the mapping {Fn::ImportValue: Shared} and
// `!GetAtt Res.Attr` becomes {Fn::GetAtt: [Res, Attr]}.
func normalize(n *yaml.Node) {
	for _, c := range n.Content {
		normalize(c)
	}

	key, ok := intrinsicKey(n.Tag)
	if !ok {
		return
	}

	value := *n
	switch value.Kind {
	case yaml.ScalarNode:
		value.Tag = "!!str"
	case yaml.MappingNode:
		value.Tag = "!!map"
	case yaml.SequenceNode:
		value.Tag = "!!seq"
	}
	if key == "Fn::GetAtt" && value.Kind == yaml.ScalarNode {
		value = *attrSequence(value.Value)
	}

	*n = yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{scalar(key), &value},
	}
}

// intrinsicKey maps a short-form tag to its long-form function name. Standard
// !! tags and custom tags not matching the intrinsic convention pass through.
func intrinsicKey(tag string) (string, bool) {
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") {
		return "", false
	}

	name := strings.TrimPrefix(tag, "!")
	switch name {
	case "":
		return "", false
	case "Ref", "Condition":
		// the only intrinsics spelled without the Fn:: prefix in long form
		return name, true
	}

	if name[0] < 'A' || name[0] > 'Z' {
		return "", false
	}
	return "Fn::" + name, true
}

// attrSequence splits the dotted !GetAtt shorthand into resource name and
// attribute, the attribute keeps any further dots.
func attrSequence(dotted string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, part := range strings.SplitN(dotted, ".", 2) {
		seq.Content = append(seq.Content, scalar(part))
	}
	return seq
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
