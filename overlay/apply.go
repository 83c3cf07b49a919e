package overlay

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/httputil"
	"github.com/erraggy/oassamples/internal/jsonpath"
)

var targetPattern = regexp.MustCompile(`^\$\.paths\['((?:[^'\\]|\\.)*)'\]\.([a-z]+)$`)

// ParseTarget splits an operation target of the form $.paths['<path>'].<method>,
// as produced by Target. Other JSONPath expressions are rejected.
func ParseTarget(target string) (path, method string, err error) {
	m := targetPattern.FindStringSubmatch(target)
	if m == nil {
		return "", "", fmt.Errorf("not an operation target %q: expected $.paths['<path>'].<method>", target)
	}
	if !httputil.IsOperationMethod(m[2]) {
		return "", "", fmt.Errorf("not an operation target %q: %q is not an HTTP method", target, m[2])
	}
	path = strings.NewReplacer(`\'`, `'`, `\\`, `\`).Replace(m[1])
	return path, m[2], nil
}

// Change records what one action did.
type Change struct {
	ActionIndex int
	Target      string
	// Operation is "update" or "remove".
	Operation  string
	MatchCount int
}

// ApplyResult summarizes an overlay application.
type ApplyResult struct {
	// ActionsApplied counts actions whose target matched at least one node.
	ActionsApplied int
	// ActionsSkipped counts actions whose target matched nothing.
	ActionsSkipped int
	// Changes lists the applied actions in order.
	Changes []Change
}

// Apply applies o to the document tree in action order.
//
// Targets are JSONPath expressions evaluated against the current tree, so
// later actions see the effect of earlier ones. An update merges into every
// matched node: mappings merge key by key (nested mappings recursively,
// sequences by appending), and a matched sequence gets the update appended.
// A remove deletes every matched node. Targets that match nothing are skipped.
//
// The overlay is validated first and nothing is changed if it is invalid.
func Apply(doc *document.Document, o *Overlay) (*ApplyResult, error) {
	if errs := Validate(o); len(errs) > 0 {
		return nil, errs[0]
	}
	root := doc.RootMapping()
	if root == nil {
		return nil, fmt.Errorf("overlay: document has no root mapping")
	}

	res := &ApplyResult{}
	for i, action := range o.Actions {
		path, err := jsonpath.Parse(action.Target)
		if err != nil {
			return res, &ApplyError{ActionIndex: i, Target: action.Target, Cause: err}
		}

		matches := path.Find(root)
		if len(matches) == 0 {
			res.ActionsSkipped++
			continue
		}

		change := Change{ActionIndex: i, Target: action.Target, MatchCount: len(matches)}
		if action.Remove {
			change.Operation = "remove"
			path.Remove(root)
		} else {
			change.Operation = "update"
			for _, m := range matches {
				// Each match gets its own copy of the update.
				var update yaml.Node
				if err := update.Encode(action.Update); err != nil {
					return res, &ApplyError{ActionIndex: i, Target: action.Target, Cause: err}
				}
				if err := merge(m.Node, &update); err != nil {
					return res, &ApplyError{ActionIndex: i, Target: action.Target, Cause: err}
				}
			}
		}
		res.ActionsApplied++
		res.Changes = append(res.Changes, change)
	}
	return res, nil
}

func merge(target, update *yaml.Node) error {
	switch target.Kind {
	case yaml.MappingNode:
		if update.Kind != yaml.MappingNode {
			return fmt.Errorf("update must be a mapping")
		}
		for j := 0; j+1 < len(update.Content); j += 2 {
			key, value := update.Content[j].Value, update.Content[j+1]
			existing := document.MappingValue(target, key)
			switch {
			case existing != nil && existing.Kind == yaml.MappingNode && value.Kind == yaml.MappingNode:
				if err := merge(existing, value); err != nil {
					return err
				}
			case existing != nil && existing.Kind == yaml.SequenceNode && value.Kind == yaml.SequenceNode:
				existing.Content = append(existing.Content, value.Content...)
			default:
				document.SetMappingValue(target, key, value)
			}
		}
		return nil
	case yaml.SequenceNode:
		target.Content = append(target.Content, update)
		return nil
	default:
		return fmt.Errorf("cannot update a scalar value")
	}
}
