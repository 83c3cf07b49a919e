package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

// Marshal serializes the document tree in the given format, preserving key order.
// SourceFormatUnknown (or empty) uses the document's source format, falling back
// to YAML.
func (d *Document) Marshal(format SourceFormat) ([]byte, error) {
	if d.Root == nil {
		return nil, fmt.Errorf("document: nothing to marshal")
	}
	if format == "" || format == SourceFormatUnknown {
		format = d.Format
	}

	switch {
	case format == SourceFormatJSON:
		return MarshalNodeJSON(d.Root)
	case d.Format == SourceFormatJSON:
		// JSON decodes as flow collections and double-quoted strings.
		return MarshalNodeYAML(blockCopy(d.Root, make(map[*yaml.Node]*yaml.Node)))
	default:
		return MarshalNodeYAML(d.Root)
	}
}

// blockCopy deep-copies node with flow collections turned into block ones and
// double quotes dropped from strings. The encoder re-quotes strings that would
// otherwise read back as another type. Literal and other styles are kept.
func blockCopy(node *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if c, ok := seen[node]; ok {
		return c
	}
	c := *node
	seen[node] = &c
	switch c.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		c.Style &^= yaml.FlowStyle
	case yaml.ScalarNode:
		c.Style &^= yaml.DoubleQuotedStyle
	}
	if c.Alias != nil {
		c.Alias = blockCopy(c.Alias, seen)
	}
	if len(node.Content) > 0 {
		c.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			c.Content[i] = blockCopy(child, seen)
		}
	}
	return &c
}

// Encode writes the marshaled document to w and returns the byte count.
func (d *Document) Encode(w io.Writer, format SourceFormat) (int64, error) {
	data, err := d.Marshal(format)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// MarshalNodeYAML encodes a node tree as YAML with two-space indentation. Node
// styles are honored, so collections decoded from flow syntax stay in flow style.
func MarshalNodeYAML(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("document: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalNodeJSON encodes a node tree as two-space indented JSON, in node order,
// terminated by a newline.
func MarshalNodeJSON(node *yaml.Node) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeNodeJSON(&compact, node, 0); err != nil {
		return nil, fmt.Errorf("document: encoding json: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("document: encoding json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// maxAliasDepth bounds alias expansion so self-referencing anchors cannot recurse forever.
const maxAliasDepth = 64

func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node, aliasDepth int) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, node.Content[0], aliasDepth)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, node.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, node.Content[i+1], aliasDepth); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, child, aliasDepth); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return fmt.Errorf("alias nesting exceeds %d levels", maxAliasDepth)
		}
		return writeNodeJSON(buf, node.Alias, aliasDepth+1)

	default:
		return writeScalarJSON(buf, node)
	}
}

// writeScalarJSON keeps the source spelling of numbers that are already valid
// JSON, so re-serializing a JSON document does not reformat them.
func writeScalarJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!str":
		return writeJSONString(buf, node.Value)
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			buf.WriteString(node.Value)
			return nil
		}
	case "!!null":
		buf.WriteString("null")
		return nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return writeJSONString(buf, node.Value)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return writeJSONString(buf, node.Value)
	}
	buf.Write(data)
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}
