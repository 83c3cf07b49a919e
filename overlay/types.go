package overlay

// Overlay represents an OpenAPI Overlay document (v1.0.0).
type Overlay struct {
	// Version is the overlay specification version (e.g., "1.0.0").
	Version string `yaml:"overlay" json:"overlay"`

	// Info contains metadata about the overlay.
	Info Info `yaml:"info" json:"info"`

	// Extends is an optional URI reference to the target OpenAPI document.
	Extends string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Actions is the ordered list of transformation actions.
	Actions []Action `yaml:"actions" json:"actions"`
}

// Info contains metadata about an overlay document.
type Info struct {
	Title   string `yaml:"title" json:"title"`
	Version string `yaml:"version" json:"version"`
}

// Action represents a single transformation action in an overlay.
type Action struct {
	// Target is a JSONPath expression selecting the node to operate on.
	Target string `yaml:"target" json:"target"`

	// Description is an optional human-readable explanation of the action.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Update is merged into the selected node.
	Update any `yaml:"update,omitempty" json:"update,omitempty"`

	// Remove, when true, removes the target from its parent.
	Remove bool `yaml:"remove,omitempty" json:"remove,omitempty"`
}
