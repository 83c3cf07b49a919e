package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/oaserrors"
)

// Default source names for inputs that have no path.
const (
	readerSourceName = "Reader"
	bytesSourceName  = "Bytes"
)

// Load reads, decodes, dialect-checks, validates and dereferences an OpenAPI
// document.
//
// Swagger 2.0 documents (and any openapi version below 3) are rejected with a
// *oaserrors.DialectError before validation. Validation failures are returned as
// *oaserrors.ValidationError unless WithLenientValidation is set.
//
// Example:
//
//	doc, err := loader.Load(ctx, loader.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Version, len(doc.Operations()))
func Load(ctx context.Context, opts ...Option) (*document.Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}
	log := cfg.logger

	start := time.Now()
	src, err := cfg.read(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		src.name = *cfg.sourceName
	}
	log.Debug("source read", "source", src.name, "bytes", len(src.data), "elapsed", time.Since(start))

	root, err := document.Decode(src.data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: src.name, Line: yamlErrorLine(err), Message: "decoding document", Cause: err}
	}

	doc := &document.Document{
		SourcePath: src.name,
		Format:     src.format,
		Root:       root,
	}
	if doc.Format == document.SourceFormatUnknown {
		doc.Format = detectFormatFromContent(src.data)
	}

	doc.Dialect, doc.Version, err = DetectDialect(doc)
	if err != nil {
		return nil, err
	}
	if err := checkDialect(doc); err != nil {
		return nil, err
	}
	log.Debug("dialect detected", "dialect", doc.Dialect, "version", doc.Version)

	model, err := cfg.loadModel(ctx, src)
	if err != nil {
		return nil, &oaserrors.ValidationError{Path: src.name, Message: "resolving document", Cause: err}
	}
	if err := model.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		if !cfg.lenient {
			return nil, &oaserrors.ValidationError{Path: src.name, Cause: err}
		}
		log.Warn("document failed validation, continuing", "source", src.name, "error", err)
	}
	doc.Model = model

	log.Info("document loaded",
		"source", src.name,
		"version", doc.Version,
		"format", doc.Format,
		"elapsed", time.Since(start),
	)
	return doc, nil
}

// DetectDialect reads the dialect and version from the document root.
// It returns a *oaserrors.ParseError if neither "openapi" nor "swagger" is declared.
func DetectDialect(doc *document.Document) (document.Dialect, string, error) {
	root := doc.RootMapping()
	if v := document.MappingValue(root, "openapi"); v != nil && v.Kind == yaml.ScalarNode {
		return document.DialectOpenAPI, v.Value, nil
	}
	if v := document.MappingValue(root, "swagger"); v != nil && v.Kind == yaml.ScalarNode {
		return document.DialectSwagger, v.Value, nil
	}
	return "", "", &oaserrors.ParseError{
		Path:    doc.SourcePath,
		Message: `unable to detect OpenAPI version: document must declare 'openapi: "3.x.x"' at the root level`,
	}
}

// checkDialect rejects everything that is not OpenAPI 3.0 or later.
func checkDialect(doc *document.Document) error {
	if doc.Dialect == document.DialectOpenAPI {
		if major, ok := majorVersion(doc.Version); ok && major >= 3 {
			return nil
		}
	}
	return &oaserrors.DialectError{Path: doc.SourcePath, Dialect: string(doc.Dialect), Version: doc.Version}
}

func majorVersion(v string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(v), "v"), ".")
	major, err := strconv.Atoi(head)
	return major, err == nil
}

// source is a fully read input.
type source struct {
	name     string
	data     []byte
	format   document.SourceFormat
	location *url.URL // base for relative external refs; nil for reader/bytes
}

func (cfg *loadConfig) read(ctx context.Context) (*source, error) {
	switch {
	case cfg.filePath != nil && isURL(*cfg.filePath):
		return cfg.fetchURL(ctx, *cfg.filePath)
	case cfg.filePath != nil:
		return cfg.readFile(*cfg.filePath)
	case cfg.reader != nil:
		data, err := readLimited(cfg.reader, cfg.maxFileSize)
		if err != nil {
			return nil, fmt.Errorf("loader: reading input: %w", err)
		}
		return &source{name: readerSourceName, data: data, format: detectFormatFromContent(data)}, nil
	default:
		if int64(len(cfg.bytes)) > cfg.maxFileSize {
			return nil, fmt.Errorf("loader: input of %d bytes exceeds limit of %d bytes", len(cfg.bytes), cfg.maxFileSize)
		}
		return &source{name: bytesSourceName, data: cfg.bytes, format: detectFormatFromContent(cfg.bytes)}, nil
	}
}

func (cfg *loadConfig) readFile(path string) (*source, error) {
	f, err := os.Open(path) //nolint:gosec // G304 - path is user-provided input (CLI tool)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := readLimited(f, cfg.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read file %s: %w", path, err)
	}

	src := &source{name: path, data: data, format: detectFormatFromPath(path)}
	if abs, err := filepath.Abs(path); err == nil {
		src.location = &url.URL{Path: filepath.ToSlash(abs)}
	}
	return src, nil
}

// fetchURL fetches a document over HTTP(S).
func (cfg *loadConfig) fetchURL(ctx context.Context, urlStr string) (*source, error) {
	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.userAgent)

	resp, err := client.Do(req) //nolint:gosec // G704 - URL is user-provided input (CLI tool)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := readLimited(resp.Body, cfg.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read response body: %w", err)
	}

	src := &source{name: urlStr, data: data, format: detectFormatFromURL(urlStr, resp.Header.Get("Content-Type"))}
	if loc, err := url.Parse(urlStr); err == nil {
		src.location = loc
	}
	return src, nil
}

// loadModel builds the dereferenced kin-openapi model from the source bytes.
func (cfg *loadConfig) loadModel(ctx context.Context, src *source) (*openapi3.T, error) {
	l := openapi3.NewLoader()
	l.Context = ctx
	l.IsExternalRefsAllowed = cfg.externalRefs

	if cfg.externalRefs && src.location != nil {
		return l.LoadFromDataWithPath(src.data, src.location)
	}
	return l.LoadFromData(src.data)
}

var errTooLarge = errors.New("input exceeds maximum size")

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", errTooLarge, limit)
	}
	return data, nil
}

// yamlErrorLine extracts the line number from a yaml decoding error, or 0.
func yamlErrorLine(err error) int {
	msg := err.Error()
	_, rest, ok := strings.Cut(msg, "line ")
	if !ok {
		return 0
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(rest)
	}
	line, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return line
}
