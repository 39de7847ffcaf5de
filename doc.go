// Package cfndep scans directories containing CloudFormation templates and builds
// a dependency graph between them.
//
// Templates publish values for cross-template consumption through the Outputs
// section (Export.Name) and consume them with [Fn::ImportValue]. They may also
// point at external secret or parameter stores with [dynamic references]. cfndep
// extracts all three kinds of references, resolves producers to consumers and
// renders the resulting graph as a Mermaid flowchart, or as Graphviz DOT via the
// encoding package.
//
// [Fn::ImportValue]: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/intrinsic-function-reference-importvalue.html
// [dynamic references]: https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/dynamic-references.html
package cfndep
