package jsonpath

import (
	"go.yaml.in/yaml/v4"
)

// Match is one node selected by a Path, with its position in the parent.
type Match struct {
	// Parent is the mapping or sequence holding Node; nil for the root.
	Parent *yaml.Node
	// Key is the mapping key when Parent is a mapping.
	Key string
	// Index is the position in Parent.Content: the value index for mappings,
	// the element index for sequences.
	Index int
	// Node is the matched value.
	Node *yaml.Node
}

// Find evaluates the path against root and returns every match in document
// order. A DocumentNode root is unwrapped.
func (p *Path) Find(root *yaml.Node) []Match {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	current := []Match{{Node: root}}
	for _, seg := range p.segments {
		var next []Match
		for _, m := range current {
			next = append(next, apply(m.Node, seg)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Get returns the matched nodes in document order.
func (p *Path) Get(root *yaml.Node) []*yaml.Node {
	matches := p.Find(root)
	if len(matches) == 0 {
		return nil
	}
	nodes := make([]*yaml.Node, 0, len(matches))
	for _, m := range matches {
		nodes = append(nodes, m.Node)
	}
	return nodes
}

// Remove deletes every matched node from its parent and returns the number
// removed. The root cannot be removed.
func (p *Path) Remove(root *yaml.Node) int {
	matches := p.Find(root)
	// Back to front so earlier indexes stay valid within a parent.
	removed := 0
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.Parent == nil {
			continue
		}
		switch m.Parent.Kind {
		case yaml.MappingNode:
			m.Parent.Content = append(m.Parent.Content[:m.Index-1], m.Parent.Content[m.Index+1:]...)
		case yaml.SequenceNode:
			m.Parent.Content = append(m.Parent.Content[:m.Index], m.Parent.Content[m.Index+1:]...)
		default:
			continue
		}
		removed++
	}
	return removed
}

func apply(node *yaml.Node, seg segment) []Match {
	switch seg.kind {
	case kindChild:
		if node.Kind != yaml.MappingNode {
			return nil
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == seg.key {
				return []Match{{Parent: node, Key: seg.key, Index: i + 1, Node: node.Content[i+1]}}
			}
		}
		return nil

	case kindIndex:
		if node.Kind != yaml.SequenceNode {
			return nil
		}
		idx := seg.index
		if idx < 0 {
			idx += len(node.Content)
		}
		if idx < 0 || idx >= len(node.Content) {
			return nil
		}
		return []Match{{Parent: node, Index: idx, Node: node.Content[idx]}}

	case kindWildcard, kindFilter:
		return children(node, seg.filter)
	}
	return nil
}

// children returns the values of a mapping or the elements of a sequence,
// keeping those that satisfy f when f is non-nil.
func children(node *yaml.Node, f *filter) []Match {
	var out []Match
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if f == nil || f.match(node.Content[i+1]) {
				out = append(out, Match{Parent: node, Key: node.Content[i].Value, Index: i + 1, Node: node.Content[i+1]})
			}
		}
	case yaml.SequenceNode:
		for i, elem := range node.Content {
			if f == nil || f.match(elem) {
				out = append(out, Match{Parent: node, Index: i, Node: elem})
			}
		}
	}
	return out
}
