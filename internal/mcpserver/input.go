package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/pipeline"
)

// inlineSourceName labels documents passed as inline content.
const inlineSourceName = "inline"

// specInput represents the three ways an OAS document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

func (s specInput) check() error {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASSAMPLES_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// pipelineOptions returns the pipeline source options for the input.
func (s specInput) pipelineOptions() ([]pipeline.Option, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	switch {
	case s.File != "":
		return []pipeline.Option{pipeline.WithSpecPath(s.File)}, nil
	case s.URL != "":
		opts := []pipeline.Option{pipeline.WithSpecPath(s.URL)}
		// Inject SSRF-safe HTTP client for URL resolution unless private IPs are allowed.
		if !cfg.AllowPrivateIPs {
			opts = append(opts, pipeline.WithHTTPClient(newSafeHTTPClient()))
		}
		return opts, nil
	default:
		return []pipeline.Option{pipeline.WithSpecReader(strings.NewReader(s.Content), inlineSourceName)}, nil
	}
}

// load reads and validates the document without annotating it.
func (s specInput) load(ctx context.Context) (*document.Document, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	var opts []loader.Option
	switch {
	case s.File != "":
		opts = append(opts, loader.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, loader.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, loader.WithHTTPClient(newSafeHTTPClient()))
		}
	default:
		opts = append(opts, loader.WithBytes([]byte(s.Content)), loader.WithSourceName(inlineSourceName))
	}
	return loader.Load(ctx, opts...)
}
