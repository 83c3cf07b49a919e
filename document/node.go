package document

import (
	"net/url"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// maxRefHops bounds local $ref chains so a reference cycle cannot loop forever.
const maxRefHops = 32

// MappingValue returns the value node stored under key in a mapping node,
// or nil if node is not a mapping or has no such key.
func MappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// MappingKeys returns the keys of a mapping node in declared order.
func MappingKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// SetMappingValue stores value under key in a mapping node. An existing key keeps
// its position and has its value replaced; a new key is appended.
func SetMappingValue(node *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1] = value
			return
		}
	}
	node.Content = append(node.Content, StringNode(key), value)
}

// StringNode builds a plain string scalar. Multi-line values use literal block
// style so generated source stays readable in YAML output.
func StringNode(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if strings.Contains(value, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

// ResolveLocalRef follows "#/..." $ref chains and YAML aliases within the
// document and returns the target node. Nodes without either are returned
// unchanged. External or broken references yield nil.
func (d *Document) ResolveLocalRef(node *yaml.Node) *yaml.Node {
	for range maxRefHops {
		node = resolveAlias(node)
		ref := MappingValue(node, "$ref")
		if ref == nil || ref.Kind != yaml.ScalarNode {
			return node
		}
		if !strings.HasPrefix(ref.Value, "#/") {
			return nil
		}
		node = d.pointer(ref.Value[2:])
		if node == nil {
			return nil
		}
	}
	return nil
}

// resolveAlias returns the anchored node an alias points at.
func resolveAlias(node *yaml.Node) *yaml.Node {
	for hops := 0; node != nil && node.Kind == yaml.AliasNode; hops++ {
		if hops == maxRefHops {
			return nil
		}
		node = node.Alias
	}
	return node
}

// pointer evaluates an RFC 6901 JSON pointer (without the leading "#/") against
// the root mapping.
func (d *Document) pointer(ptr string) *yaml.Node {
	node := d.RootMapping()
	for _, raw := range strings.Split(ptr, "/") {
		token, err := url.PathUnescape(raw)
		if err != nil {
			token = raw
		}
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")

		switch {
		case node == nil:
			return nil
		case node.Kind == yaml.MappingNode:
			node = resolveAlias(MappingValue(node, token))
		case node.Kind == yaml.SequenceNode:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node.Content) {
				return nil
			}
			node = resolveAlias(node.Content[i])
		default:
			return nil
		}
	}
	return node
}
