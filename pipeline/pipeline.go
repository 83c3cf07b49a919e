package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/erraggy/oassamples/assembler"
	"github.com/erraggy/oassamples/document"
	"github.com/erraggy/oassamples/loader"
	"github.com/erraggy/oassamples/overlay"
	"github.com/erraggy/oassamples/splicer"
)

// Result summarizes a pipeline run.
type Result struct {
	// SourcePath identifies the input document.
	SourcePath string
	// Dialect and Version are the detected document dialect and version.
	Dialect document.Dialect
	Version string
	// Document is the spliced document. For FormatOverlay it is unmodified.
	Document *document.Document
	// Directory holds every generated snippet.
	Directory *assembler.Directory
	// Format is the resolved output format (json, yaml or overlay).
	Format OutputFormat
	// Output is the serialized result.
	Output []byte
	// Destination is the output path, or empty for writers and in-memory runs.
	Destination string
	// BytesWritten is the number of bytes written to the destination.
	BytesWritten int64

	OperationCount      int
	AnnotatedOperations int
	SnippetCount        int
	DeclinedCount       int
	SkippedCount        int
}

// Run loads a document, generates code samples for every operation and
// language, splices them into the document and writes the result.
//
// Swagger 2.0 input is rejected before any generator call. Without an output
// path or writer the serialized result is only returned in Result.Output.
//
// Example:
//
//	res, err := pipeline.Run(ctx,
//		pipeline.WithSpecPath("openapi.yaml"),
//		pipeline.WithOutputPath("openapi.samples.json"),
//		pipeline.WithOutputFormat(pipeline.FormatJSON),
//		pipeline.WithLanguages("shell", "python"),
//	)
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid options: %w", err)
	}
	log := cfg.logger
	start := time.Now()

	if cfg.specPath != nil && cfg.outputPath != "" {
		if err := checkOutputPath(*cfg.specPath, cfg.outputPath); err != nil {
			return nil, err
		}
	}

	doc, err := loader.Load(ctx, cfg.loaderOptions()...)
	if err != nil {
		return nil, err
	}

	a := &assembler.Assembler{
		Languages:   cfg.languages,
		Generator:   cfg.generator,
		Selector:    cfg.selector,
		Concurrency: cfg.concurrency,
		SkipErrors:  cfg.skipErrors,
		Logger:      log,
	}
	dir, err := a.Assemble(ctx, doc)
	if err != nil {
		return nil, err
	}

	res := &Result{
		SourcePath:          doc.SourcePath,
		Dialect:             doc.Dialect,
		Version:             doc.Version,
		Document:            doc,
		Directory:           dir,
		OperationCount:      len(doc.Operations()),
		AnnotatedOperations: dir.Len(),
		SnippetCount:        dir.SnippetCount(),
		DeclinedCount:       dir.Declined(),
		SkippedCount:        dir.Skipped(),
	}

	res.Format, res.Output, err = cfg.render(doc, dir)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.outputPath != "":
		if err := writeFile(cfg.outputPath, res.Output); err != nil {
			return nil, err
		}
		res.Destination = cfg.outputPath
		res.BytesWritten = int64(len(res.Output))
	case cfg.outputWriter != nil:
		n, err := writeTo(cfg.outputWriter, res.Output)
		res.BytesWritten = n
		if err != nil {
			return nil, err
		}
	}

	log.Info("pipeline complete",
		"source", res.SourcePath,
		"format", res.Format,
		"operations", res.OperationCount,
		"annotated", res.AnnotatedOperations,
		"snippets", res.SnippetCount,
		"bytes", len(res.Output),
		"elapsed", time.Since(start),
	)
	return res, nil
}

func (cfg *config) loaderOptions() []loader.Option {
	opts := []loader.Option{
		loader.WithExternalRefs(cfg.externalRefs),
		loader.WithLenientValidation(cfg.lenient),
		loader.WithUserAgent(cfg.userAgent),
		loader.WithHTTPClient(cfg.httpClient),
		loader.WithLogger(cfg.logger),
	}
	switch {
	case cfg.specPath != nil:
		opts = append(opts, loader.WithFilePath(*cfg.specPath))
	case cfg.specReader != nil:
		opts = append(opts, loader.WithReader(cfg.specReader))
	default:
		opts = append(opts, loader.WithBytes(cfg.specBytes))
	}
	if cfg.sourceName != "" {
		opts = append(opts, loader.WithSourceName(cfg.sourceName))
	}
	return opts
}

// render splices (or builds the overlay) and serializes the result.
func (cfg *config) render(doc *document.Document, dir *assembler.Directory) (OutputFormat, []byte, error) {
	if cfg.outputFormat == FormatOverlay {
		o := overlay.FromDirectory(dir, overlayInfo(doc), cfg.extends())
		data, err := overlay.Marshal(o, doc.Format)
		if err != nil {
			return "", nil, fmt.Errorf("pipeline: %w", err)
		}
		return FormatOverlay, data, nil
	}

	if cfg.stripExisting {
		if n := splicer.Strip(doc); n > 0 {
			cfg.logger.Debug("removed existing code samples", "operations", n)
		}
	}
	if err := splicer.Splice(doc, dir); err != nil {
		return "", nil, err
	}

	format := document.SourceFormatYAML
	switch cfg.outputFormat {
	case FormatJSON:
		format = document.SourceFormatJSON
	case FormatSource:
		if doc.Format == document.SourceFormatJSON {
			format = document.SourceFormatJSON
		}
	}
	data, err := doc.Marshal(format)
	if err != nil {
		return "", nil, err
	}
	return OutputFormat(format), data, nil
}

func (cfg *config) extends() string {
	if cfg.specPath != nil {
		return *cfg.specPath
	}
	return ""
}

func overlayInfo(doc *document.Document) overlay.Info {
	info := overlay.Info{Title: "Code samples", Version: "1.0.0"}
	if doc.Model != nil && doc.Model.Info != nil {
		if doc.Model.Info.Title != "" {
			info.Title = "Code samples for " + doc.Model.Info.Title
		}
		if doc.Model.Info.Version != "" {
			info.Version = doc.Model.Info.Version
		}
	}
	return info
}
