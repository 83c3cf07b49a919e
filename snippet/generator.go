package snippet

import (
	"context"

	"github.com/erraggy/oassamples/document"
)

// Values carries the parameter and body values used to shape a request.
// Missing entries fall back to examples declared in the document.
type Values struct {
	// Body is the request body value, or nil for no body.
	Body any
	// BodyMediaType is the media type Body was authored for. When empty, the
	// first declared request body media type is used.
	BodyMediaType string
	// Header, Path, Query and Cookie map parameter names to values.
	Header map[string]any
	Path   map[string]any
	Query  map[string]any
	Cookie map[string]any
}

// Auth maps security scheme names to credentials. A nil Auth adds no
// credentials to the request.
type Auth map[string]string

// Generator renders one operation as source code for one language target.
//
// Returning an empty string with a nil error means the generator declines the
// combination (unknown target, unsupported body). That is an expected outcome,
// not a failure. A non-nil error means the generator itself failed.
type Generator interface {
	Generate(ctx context.Context, doc *document.Document, op *document.Operation, values Values, auth Auth, target string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, doc *document.Document, op *document.Operation, values Values, auth Auth, target string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, doc *document.Document, op *document.Operation, values Values, auth Auth, target string) (string, error) {
	return f(ctx, doc, op, values, auth, target)
}
