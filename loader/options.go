package loader

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oassamples"
	"github.com/erraggy/oassamples/internal/options"
	"github.com/erraggy/oassamples/oaserrors"
)

// DefaultMaxFileSize is the largest source document accepted by default (64 MiB).
const DefaultMaxFileSize int64 = 64 << 20

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	externalRefs bool
	lenient      bool
	userAgent    string
	httpClient   *http.Client
	logger       Logger
	maxFileSize  int64
	sourceName   *string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		userAgent:   oassamples.UserAgent(),
		maxFileSize: DefaultMaxFileSize,
		logger:      NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("input",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL (http:// or https://) as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "file path", Message: "cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "reader", Message: "cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "bytes", Message: "cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithExternalRefs allows $ref values pointing at other files or URLs.
// Local references (#/...) are always resolved. Disabled by default.
func WithExternalRefs(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.externalRefs = enabled
		return nil
	}
}

// WithLenientValidation downgrades OpenAPI validation failures to warnings.
// Decoding failures and unsupported dialects are still fatal.
func WithLenientValidation(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.lenient = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent header for URL fetches.
func WithUserAgent(ua string) Option {
	return func(cfg *loadConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets the client used to fetch URL sources.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *loadConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(cfg *loadConfig) error {
		cfg.logger = OrNop(l)
		return nil
	}
}

// WithMaxFileSize limits the size of the source document in bytes.
func WithMaxFileSize(size int64) Option {
	return func(cfg *loadConfig) error {
		if size <= 0 {
			return &oaserrors.ConfigError{Option: "max file size", Value: size, Message: "must be positive"}
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName names a reader or byte source in errors and results.
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		if name == "" {
			return fmt.Errorf("loader: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
