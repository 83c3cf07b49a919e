package overlay

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/document"
)

// Parse parses an overlay document from YAML or JSON bytes.
func Parse(data []byte) (*Overlay, error) {
	var o Overlay
	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, &ParseError{Cause: err}
	}
	return &o, nil
}

// Marshal serializes o as two-space indented YAML, or JSON when format is
// document.SourceFormatJSON.
func Marshal(o *Overlay, format document.SourceFormat) ([]byte, error) {
	if format == document.SourceFormatJSON {
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("overlay: encoding json: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("overlay: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("overlay: encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
