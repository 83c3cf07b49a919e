// Package document holds the in-memory form of an OpenAPI 3.x document that
// oassamples annotates.
//
// A [Document] keeps two views of the same source:
//
//   - Root: the order-preserving yaml.Node tree decoded from the source bytes.
//     This is the tree that is spliced and written back out, so unknown fields,
//     vendor extensions and key order survive untouched.
//   - Model: the validated, dereferenced kin-openapi model. Every $ref is resolved,
//     so request shaping never has to chase references.
//
// # Operation Model
//
// [Document.Operations] returns operations in declared order: paths in the order
// they appear under the paths object, then methods in the order they appear in each
// path item. Re-running on unchanged input always yields the same sequence.
//
//	for _, op := range doc.Operations() {
//		sets := op.RequestBodyExamples()
//		fmt.Println(op.Method, op.Path, len(sets))
//	}
//
// # Writing
//
// [Document.Marshal] serializes the tree as indented JSON or block-style YAML with
// the original key order. JSON scalars keep their source spelling where possible.
package document
