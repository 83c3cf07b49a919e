package jsonpath

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// filter is a single comparison of a child field against a literal.
type filter struct {
	field string
	op    string
	value any // string, float64, bool or nil
}

// String returns the filter expression.
func (f *filter) String() string {
	return fmt.Sprintf("@.%s %s %v", f.field, f.op, f.value)
}

func (f *filter) match(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	var field *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == f.field {
			field = node.Content[i+1]
			break
		}
	}
	return compare(scalarValue(field), f.op, f.value)
}

// scalarValue converts a scalar node to a comparable value. Missing fields and
// non-scalar nodes compare as nil.
func scalarValue(node *yaml.Node) any {
	if node == nil || node.Kind != yaml.ScalarNode {
		return nil
	}
	switch node.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return node.Value
		}
		return b
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return node.Value
		}
		return f
	}
	return node.Value
}

func compare(left any, op string, right any) bool {
	if left == nil || right == nil {
		equal := left == nil && right == nil
		switch op {
		case "==", "<=", ">=":
			return equal
		case "!=":
			return !equal
		}
		return false
	}

	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case "<":
		return less(left, right)
	case "<=":
		return less(left, right) || left == right
	case ">":
		return less(right, left)
	case ">=":
		return less(right, left) || left == right
	}
	return false
}

func less(left, right any) bool {
	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		return ok && l < r
	case string:
		r, ok := right.(string)
		return ok && l < r
	}
	return false
}
