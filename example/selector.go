// Package example chooses the request body value used to shape a code sample.
package example

import (
	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/internal/httputil"
)

// Selection is a chosen request body example.
type Selection struct {
	// Value is the decoded example value.
	Value any
	// MediaType is the media type the example was declared under.
	MediaType string
	// Name is the key under "examples", or empty for a media type's "example".
	Name string
}

// Selector picks the example for an operation. The boolean is false when the
// operation has no usable example, in which case the request carries no body.
type Selector interface {
	Select(op *document.Operation) (Selection, bool)
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(op *document.Operation) (Selection, bool)

// Select implements Selector.
func (f SelectorFunc) Select(op *document.Operation) (Selection, bool) {
	return f(op)
}

// First selects the first example of the first example set declared on the
// request body. It never merges or synthesizes values.
type First struct{}

// Select implements Selector.
func (First) Select(op *document.Operation) (Selection, bool) {
	if op == nil {
		return Selection{}, false
	}
	sets := op.RequestBodyExamples()
	if len(sets) == 0 || len(sets[0].Examples) == 0 {
		return Selection{}, false
	}
	ex := sets[0].Examples[0]
	return Selection{Value: ex.Value, MediaType: sets[0].MediaType, Name: ex.Name}, true
}

// PreferMediaType selects the first example declared under the first listed
// media type the operation has examples for. Media types are compared without
// parameters. Operations matching none of them fall back to First.
func PreferMediaType(mediaTypes ...string) Selector {
	return SelectorFunc(func(op *document.Operation) (Selection, bool) {
		if op == nil {
			return Selection{}, false
		}
		sets := op.RequestBodyExamples()
		for _, want := range mediaTypes {
			want = httputil.BaseMediaType(want)
			for _, set := range sets {
				if httputil.BaseMediaType(set.MediaType) == want && len(set.Examples) > 0 {
					ex := set.Examples[0]
					return Selection{Value: ex.Value, MediaType: set.MediaType, Name: ex.Name}, true
				}
			}
		}
		return First{}.Select(op)
	})
}
