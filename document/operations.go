package document

import (
	"slices"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/internal/httputil"
)

// Operation is one (path, method) entry of a document.
type Operation struct {
	// Path is the path template as declared (e.g., "/pets/{petId}").
	Path string
	// Method is the lower-case path item key (e.g., "get").
	Method string
	// OperationID is the declared operationId, or empty.
	OperationID string
	// Node is the operation mapping in the document tree.
	Node *yaml.Node
	// Model is the dereferenced operation, or nil when the document has no model
	// or the method is not representable in it.
	Model *openapi3.Operation
	// PathItem is the dereferenced owning path item, or nil.
	PathItem *openapi3.PathItem
	// SharedWith is the earlier path whose operation node this one reuses.
	// It is only set on entries returned by SharedOperations.
	SharedWith string

	doc *Document
}

// Document returns the document the operation belongs to.
func (o *Operation) Document() *Document {
	return o.doc
}

// Operations returns every operation in declared path order, then declared
// method order within each path item. Non-operation keys such as parameters,
// summary, servers and extensions are skipped.
//
// A path item reached through $ref or a YAML alias can share its operation
// nodes with another path. Each node is returned once, for the first path that
// reaches it; the later ones are reported by SharedOperations.
func (d *Document) Operations() []*Operation {
	ops, _ := d.walkOperations()
	return ops
}

// SharedOperations returns the (path, method) pairs left out of Operations
// because their node belongs to an earlier path. SharedWith names that path.
func (d *Document) SharedOperations() []*Operation {
	_, shared := d.walkOperations()
	return shared
}

func (d *Document) walkOperations() (ops, shared []*Operation) {
	paths := d.PathsNode()
	if paths == nil {
		return nil, nil
	}

	owner := make(map[*yaml.Node]string)
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		item := d.ResolveLocalRef(paths.Content[i+1])
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}

		pathItem := d.modelPathItem(path)
		for j := 0; j+1 < len(item.Content); j += 2 {
			method := item.Content[j].Value
			opNode := resolveAlias(item.Content[j+1])
			if !httputil.IsOperationMethod(method) || opNode == nil || opNode.Kind != yaml.MappingNode {
				continue
			}
			op := &Operation{
				Path:     path,
				Method:   method,
				Node:     opNode,
				PathItem: pathItem,
				Model:    modelOperation(pathItem, method),
				doc:      d,
			}
			if id := MappingValue(opNode, "operationId"); id != nil {
				op.OperationID = id.Value
			}
			if first, ok := owner[opNode]; ok {
				op.SharedWith = first
				shared = append(shared, op)
				continue
			}
			owner[opNode] = path
			ops = append(ops, op)
		}
	}
	return ops, shared
}

func (d *Document) modelPathItem(path string) *openapi3.PathItem {
	if d.Model == nil || d.Model.Paths == nil {
		return nil
	}
	return d.Model.Paths.Value(path)
}

// modelOperation maps a path item key onto the kin-openapi field holding it.
// Methods the model has no field for (query) return nil.
func modelOperation(item *openapi3.PathItem, method string) *openapi3.Operation {
	if item == nil {
		return nil
	}
	switch method {
	case httputil.MethodGet:
		return item.Get
	case httputil.MethodPut:
		return item.Put
	case httputil.MethodPost:
		return item.Post
	case httputil.MethodDelete:
		return item.Delete
	case httputil.MethodOptions:
		return item.Options
	case httputil.MethodHead:
		return item.Head
	case httputil.MethodPatch:
		return item.Patch
	case httputil.MethodTrace:
		return item.Trace
	default:
		return nil
	}
}

// Example is a single authored request body example.
type Example struct {
	// Name is the key under "examples", or empty for a media type's "example" field.
	Name string
	// Value is the decoded example value.
	Value any
}

// ExampleSet groups the examples declared for one request body media type.
type ExampleSet struct {
	MediaType string
	Examples  []Example
}

// RequestBodyExamples returns the request body example sets in declared media type
// order. Within a set the singular "example" comes first, followed by "examples"
// entries in declared order. Entries without an inline value (externalValue only)
// are omitted, as are media types with no examples at all.
//
// Values come from the dereferenced model when available, so $ref'd examples are
// resolved; ordering comes from the document tree.
func (o *Operation) RequestBodyExamples() []ExampleSet {
	if o.Model != nil {
		return o.modelExamples()
	}
	return o.nodeExamples()
}

func (o *Operation) modelExamples() []ExampleSet {
	if o.Model.RequestBody == nil || o.Model.RequestBody.Value == nil {
		return nil
	}
	content := o.Model.RequestBody.Value.Content

	var sets []ExampleSet
	for _, mediaType := range orderedKeys(o.contentNode(), content) {
		mt := content[mediaType]
		if mt == nil {
			continue
		}
		set := ExampleSet{MediaType: mediaType}
		if mt.Example != nil {
			set.Examples = append(set.Examples, Example{Value: mt.Example})
		}
		examplesNode := MappingValue(MappingValue(o.contentNode(), mediaType), "examples")
		for _, name := range orderedKeys(examplesNode, mt.Examples) {
			ref := mt.Examples[name]
			if ref == nil || ref.Value == nil || ref.Value.Value == nil {
				continue
			}
			set.Examples = append(set.Examples, Example{Name: name, Value: ref.Value.Value})
		}
		if len(set.Examples) > 0 {
			sets = append(sets, set)
		}
	}
	return sets
}

// nodeExamples reads examples straight from the tree for documents without a model.
func (o *Operation) nodeExamples() []ExampleSet {
	content := o.contentNode()
	var sets []ExampleSet
	for i := 0; content != nil && i+1 < len(content.Content); i += 2 {
		mtNode := content.Content[i+1]
		set := ExampleSet{MediaType: content.Content[i].Value}
		if ex := MappingValue(mtNode, "example"); ex != nil {
			if v, ok := decodeValue(ex); ok {
				set.Examples = append(set.Examples, Example{Value: v})
			}
		}
		examples := MappingValue(mtNode, "examples")
		for j := 0; examples != nil && j+1 < len(examples.Content); j += 2 {
			exNode := o.doc.ResolveLocalRef(examples.Content[j+1])
			if v, ok := decodeValue(MappingValue(exNode, "value")); ok {
				set.Examples = append(set.Examples, Example{Name: examples.Content[j].Value, Value: v})
			}
		}
		if len(set.Examples) > 0 {
			sets = append(sets, set)
		}
	}
	return sets
}

// contentNode returns the request body content mapping, following a local $ref
// on the request body.
func (o *Operation) contentNode() *yaml.Node {
	body := MappingValue(o.Node, "requestBody")
	if body == nil {
		return nil
	}
	if o.doc != nil {
		body = o.doc.ResolveLocalRef(body)
	}
	content := MappingValue(body, "content")
	if content == nil || content.Kind != yaml.MappingNode {
		return nil
	}
	return content
}

// orderedKeys returns the keys of m in the order declared by node. Keys present
// in m but absent from node (external refs) are appended sorted.
func orderedKeys[V any](node *yaml.Node, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range MappingKeys(node) {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func decodeValue(node *yaml.Node) (any, bool) {
	if node == nil {
		return nil, false
	}
	var v any
	if err := node.Decode(&v); err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// RequestMediaTypes returns the request body media types in declared order.
func (o *Operation) RequestMediaTypes() []string {
	return MappingKeys(o.contentNode())
}

// ResponseMediaType returns the first media type declared by the first success
// (2xx or 2XX) response, or "" when there is none.
func (o *Operation) ResponseMediaType() string {
	responses := MappingValue(o.Node, "responses")
	if responses == nil || responses.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(responses.Content); i += 2 {
		code := responses.Content[i].Value
		if !httputil.IsSuccessStatusCode(code) {
			continue
		}
		resp := responses.Content[i+1]
		if o.doc != nil {
			resp = o.doc.ResolveLocalRef(resp)
		}
		if keys := MappingKeys(MappingValue(resp, "content")); len(keys) > 0 {
			return keys[0]
		}
	}
	return ""
}
