package pipeline

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/erraggy/oassamples"
	"github.com/erraggy/oassamples/example"
	"github.com/erraggy/oassamples/internal/options"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/oaserrors"
	"github.com/erraggy/oassamples/snippet"
)

// OutputFormat selects how the result is serialized.
type OutputFormat string

const (
	// FormatSource keeps the input document's format.
	FormatSource OutputFormat = "source"
	// FormatJSON writes two-space indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML writes two-space indented YAML.
	FormatYAML OutputFormat = "yaml"
	// FormatOverlay writes an OpenAPI Overlay holding only the samples.
	FormatOverlay OutputFormat = "overlay"
)

// ParseOutputFormat maps a user supplied name to an OutputFormat.
// The empty string means FormatSource.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSource, nil
	case FormatSource, FormatJSON, FormatYAML, FormatOverlay:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", &oaserrors.ConfigError{
		Option:  "output format",
		Value:   s,
		Message: "must be one of source, json, yaml, overlay",
	}
}

// Option is a function that configures a pipeline run
type Option func(*config) error

type config struct {
	// Input source (exactly one must be set)
	specPath   *string
	specBytes  []byte
	specReader io.Reader
	sourceName string

	// Output destination (at most one)
	outputPath   string
	outputWriter io.Writer
	outputFormat OutputFormat

	languages     []string
	generator     snippet.Generator
	selector      example.Selector
	concurrency   int
	skipErrors    bool
	stripExisting bool

	logger       loader.Logger
	httpClient   *http.Client
	userAgent    string
	externalRefs bool
	lenient      bool
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		outputFormat: FormatSource,
		userAgent:    oassamples.UserAgent(),
		logger:       loader.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("input",
		options.Source{Name: "WithSpecPath", Set: cfg.specPath != nil},
		options.Source{Name: "WithSpecReader", Set: cfg.specReader != nil},
		options.Source{Name: "WithSpecBytes", Set: cfg.specBytes != nil},
	); err != nil {
		return nil, err
	}
	if err := options.AtMostOne("output",
		options.Source{Name: "WithOutputPath", Set: cfg.outputPath != ""},
		options.Source{Name: "WithOutputWriter", Set: cfg.outputWriter != nil},
	); err != nil {
		return nil, err
	}
	if cfg.generator == nil {
		cfg.generator = snippet.NewRegistry()
	}

	return cfg, nil
}

// WithSpecPath reads the document from a file path or http(s) URL.
func WithSpecPath(path string) Option {
	return func(cfg *config) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "spec path", Message: "cannot be empty"}
		}
		cfg.specPath = &path
		return nil
	}
}

// WithSpecBytes reads the document from memory.
func WithSpecBytes(data []byte) Option {
	return func(cfg *config) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "spec bytes", Message: "cannot be nil"}
		}
		cfg.specBytes = data
		return nil
	}
}

// WithSpecReader reads the document from r. name identifies it in errors and
// may be empty.
func WithSpecReader(r io.Reader, name string) Option {
	return func(cfg *config) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "spec reader", Message: "cannot be nil"}
		}
		cfg.specReader = r
		cfg.sourceName = name
		return nil
	}
}

// WithOutputPath writes the result to a file.
func WithOutputPath(path string) Option {
	return func(cfg *config) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "output path", Message: "cannot be empty"}
		}
		cfg.outputPath = path
		return nil
	}
}

// WithOutputWriter writes the result to w.
func WithOutputWriter(w io.Writer) Option {
	return func(cfg *config) error {
		if w == nil {
			return &oaserrors.ConfigError{Option: "output writer", Message: "cannot be nil"}
		}
		cfg.outputWriter = w
		return nil
	}
}

// WithOutputFormat selects the output serialization. Defaults to FormatSource.
func WithOutputFormat(format OutputFormat) Option {
	return func(cfg *config) error {
		f, err := ParseOutputFormat(string(format))
		if err != nil {
			return err
		}
		cfg.outputFormat = f
		return nil
	}
}

// WithLanguages sets the ordered language targets. Empty uses the defaults.
func WithLanguages(languages ...string) Option {
	return func(cfg *config) error {
		cfg.languages = languages
		return nil
	}
}

// WithGenerator replaces the built-in snippet registry.
func WithGenerator(gen snippet.Generator) Option {
	return func(cfg *config) error {
		if gen == nil {
			return &oaserrors.ConfigError{Option: "generator", Message: "cannot be nil"}
		}
		cfg.generator = gen
		return nil
	}
}

// WithSelector replaces the first-example selector.
func WithSelector(sel example.Selector) Option {
	return func(cfg *config) error {
		cfg.selector = sel
		return nil
	}
}

// WithConcurrency bounds parallel generator calls. Values <= 1 run sequentially.
func WithConcurrency(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "cannot be negative"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithSkipGeneratorErrors skips pairs whose generator fails instead of
// aborting the run.
func WithSkipGeneratorErrors(enabled bool) Option {
	return func(cfg *config) error {
		cfg.skipErrors = enabled
		return nil
	}
}

// WithStripExisting removes x-codeSamples from every operation before
// splicing, so operations that no longer produce samples lose stale ones.
func WithStripExisting(enabled bool) Option {
	return func(cfg *config) error {
		cfg.stripExisting = enabled
		return nil
	}
}

// WithLogger sets the structured logger used by every stage.
func WithLogger(l loader.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = loader.OrNop(l)
		return nil
	}
}

// WithHTTPClient sets the client used to fetch URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header for URL fetches.
func WithUserAgent(ua string) Option {
	return func(cfg *config) error {
		if ua == "" {
			return fmt.Errorf("pipeline: user agent cannot be empty")
		}
		cfg.userAgent = ua
		return nil
	}
}

// WithExternalRefs allows $ref values pointing at other files or URLs.
func WithExternalRefs(enabled bool) Option {
	return func(cfg *config) error {
		cfg.externalRefs = enabled
		return nil
	}
}

// WithLenientValidation continues past validation failures with a warning.
func WithLenientValidation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.lenient = enabled
		return nil
	}
}
