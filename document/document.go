package document

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"
)

// SourceFormat represents the serialization format of a document.
type SourceFormat string

const (
	// SourceFormatYAML indicates a YAML document
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates a JSON document
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Dialect identifies the family of API description a document declares.
type Dialect string

const (
	// DialectOpenAPI is declared by an "openapi" root field (OAS 3.x and later).
	DialectOpenAPI Dialect = "openapi"
	// DialectSwagger is declared by a "swagger" root field (OAS 2.0).
	DialectSwagger Dialect = "swagger"
)

// Document is an OpenAPI document owned by a single annotation run.
type Document struct {
	// SourcePath is the file path, URL or synthetic name the document was read from.
	SourcePath string
	// Format is the source serialization format.
	Format SourceFormat
	// Dialect is the detected dialect.
	Dialect Dialect
	// Version is the declared dialect version (e.g., "3.0.3").
	Version string
	// Root is the order-preserving node tree; its first child is the root mapping.
	Root *yaml.Node
	// Model is the validated, dereferenced model. It may be nil for documents
	// that were decoded without validation.
	Model *openapi3.T
}

// Decode parses source bytes into a yaml.Node tree. JSON is a subset of YAML, so
// both formats decode through the same path.
func Decode(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping, got %s", kindName(root.Content[0].Kind))
	}
	return &root, nil
}

// RootMapping returns the top-level mapping node, or nil if the tree is empty.
func (d *Document) RootMapping() *yaml.Node {
	if d == nil || d.Root == nil {
		return nil
	}
	if d.Root.Kind == yaml.DocumentNode {
		if len(d.Root.Content) == 0 {
			return nil
		}
		return d.Root.Content[0]
	}
	return d.Root
}

// PathsNode returns the paths mapping node, or nil if the document declares no paths.
func (d *Document) PathsNode() *yaml.Node {
	paths := MappingValue(d.RootMapping(), "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return nil
	}
	return paths
}

// LookupPathItem returns the path item mapping for path, following a local $ref.
func (d *Document) LookupPathItem(path string) (*yaml.Node, bool) {
	item := MappingValue(d.PathsNode(), path)
	if item == nil {
		return nil, false
	}
	item = d.ResolveLocalRef(item)
	if item == nil || item.Kind != yaml.MappingNode {
		return nil, false
	}
	return item, true
}

// LookupOperation returns the operation mapping for (path, method).
// method must be the lower-case path item key.
func (d *Document) LookupOperation(path, method string) (*yaml.Node, bool) {
	item, ok := d.LookupPathItem(path)
	if !ok {
		return nil, false
	}
	op := resolveAlias(MappingValue(item, method))
	if op == nil || op.Kind != yaml.MappingNode {
		return nil, false
	}
	return op, true
}

// Stats summarizes the shape of a document.
type Stats struct {
	PathCount      int
	OperationCount int
}

// Stats counts declared paths and operations.
func (d *Document) Stats() Stats {
	var s Stats
	if paths := d.PathsNode(); paths != nil {
		s.PathCount = len(paths.Content) / 2
	}
	s.OperationCount = len(d.Operations())
	return s
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
