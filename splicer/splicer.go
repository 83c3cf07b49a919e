// Package splicer writes assembled code samples back into a document tree.
package splicer

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/oaserrors"
)

// ExtensionKey is the operation extension that holds the code samples.
const ExtensionKey = "x-codeSamples"

// Splice sets ExtensionKey on every operation named by dir to its ordered
// snippet list, replacing any previous value. Nothing else in the tree changes.
//
// Every key is checked before the first mutation: if any (path, method) is
// missing from doc, or resolves to the same operation node as an earlier key,
// a *oaserrors.SpliceError is returned and doc is untouched.
func Splice(doc *document.Document, dir *assembler.Directory) error {
	if doc == nil || doc.RootMapping() == nil {
		return &oaserrors.ConfigError{Option: "document", Message: "cannot be nil or empty"}
	}
	if dir == nil {
		return nil
	}

	type target struct {
		node     *yaml.Node
		snippets []assembler.Snippet
	}
	targets := make([]target, 0, dir.Len())
	owner := make(map[*yaml.Node]string, dir.Len())
	err := dir.Each(func(path, method string, snippets []assembler.Snippet) error {
		if _, ok := doc.LookupPathItem(path); !ok {
			return &oaserrors.SpliceError{Path: path, Method: method, MissingPath: true}
		}
		node, ok := doc.LookupOperation(path, method)
		if !ok {
			return &oaserrors.SpliceError{Path: path, Method: method}
		}
		if first, ok := owner[node]; ok {
			return &oaserrors.SpliceError{Path: path, Method: method, SharedWith: first}
		}
		owner[node] = path
		targets = append(targets, target{node: node, snippets: snippets})
		return nil
	})
	if err != nil {
		return err
	}

	for _, t := range targets {
		document.SetMappingValue(t.node, ExtensionKey, SamplesNode(t.snippets))
	}
	return nil
}

// SamplesNode builds the sequence of {lang, label, source} mappings.
func SamplesNode(snippets []assembler.Snippet) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range snippets {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Tag:  "!!map",
			Content: []*yaml.Node{
				document.StringNode("lang"), document.StringNode(s.Lang),
				document.StringNode("label"), document.StringNode(s.Label),
				document.StringNode("source"), document.StringNode(s.Source),
			},
		})
	}
	return seq
}

// Strip removes ExtensionKey from every operation and returns how many
// operations carried it.
func Strip(doc *document.Document) int {
	n := 0
	for _, op := range doc.Operations() {
		for i := 0; i+1 < len(op.Node.Content); i += 2 {
			if op.Node.Content[i].Value == ExtensionKey {
				op.Node.Content = append(op.Node.Content[:i], op.Node.Content[i+2:]...)
				n++
				break
			}
		}
	}
	return n
}
