package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/erraggy/oassamples/example"
	"github.com/erraggy/oassamples/internal/cliutil"
	"github.com/erraggy/oassamples/pipeline"
)

// AnnotateFlags contains flags for the annotate command
type AnnotateFlags struct {
	Output       string
	Languages    string
	Format       string
	Concurrency  int
	SkipErrors   bool
	ExternalRefs bool
	Lenient      bool
	Strip        bool
	MediaType    string
	Verbose      bool
	Quiet        bool
}

// SetupAnnotateFlags creates and configures a FlagSet for the annotate command.
// Returns the FlagSet and an AnnotateFlags struct with bound flag variables.
func SetupAnnotateFlags() (*flag.FlagSet, *AnnotateFlags) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	flags := &AnnotateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Languages, "l", "", "comma-separated languages (default: go,python,shell,java,kotlin,swift)")
	fs.StringVar(&flags.Languages, "languages", "", "comma-separated languages (default: go,python,shell,java,kotlin,swift)")
	fs.StringVar(&flags.Format, "f", string(pipeline.FormatSource), "output format: source, json, yaml, or overlay")
	fs.StringVar(&flags.Format, "format", string(pipeline.FormatSource), "output format: source, json, yaml, or overlay")
	fs.IntVar(&flags.Concurrency, "j", 1, "number of snippets generated in parallel")
	fs.IntVar(&flags.Concurrency, "concurrency", 1, "number of snippets generated in parallel")
	fs.BoolVar(&flags.SkipErrors, "skip-errors", false, "skip samples whose generation fails instead of aborting")
	fs.BoolVar(&flags.ExternalRefs, "external-refs", false, "allow $ref to external files and URLs")
	fs.BoolVar(&flags.Lenient, "lenient", false, "report validation failures as warnings")
	fs.BoolVar(&flags.Strip, "strip", false, "remove existing x-codeSamples before splicing")
	fs.StringVar(&flags.MediaType, "media-type", "", "prefer request body examples of this media type")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose logging")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only errors, no summary")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only errors, no summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oassamples annotate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate x-codeSamples for every operation of an OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  source (default)  Same serialization as the input\n")
		cliutil.Writef(fs.Output(), "  json              Two-space indented JSON\n")
		cliutil.Writef(fs.Output(), "  yaml              YAML\n")
		cliutil.Writef(fs.Output(), "  overlay           An Overlay 1.0.0 document instead of the annotated spec\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oassamples annotate -o openapi.samples.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oassamples annotate -l shell,python -f json https://example.com/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.json | oassamples annotate -q - > annotated.json\n")
		cliutil.Writef(fs.Output(), "  oassamples annotate -f overlay -o samples.overlay.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Swagger 2.0 documents are rejected\n")
		cliutil.Writef(fs.Output(), "  - Output files are written with restrictive permissions (0600)\n")
	}

	return fs, flags
}

// HandleAnnotate executes the annotate command
func HandleAnnotate(ctx context.Context, args []string, streams Streams) error {
	fs, flags := SetupAnnotateFlags()
	fs.SetOutput(streams.Err)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("annotate command requires exactly one file path, URL, or '-' for stdin")
	}
	specPath := fs.Arg(0)

	format, err := pipeline.ParseOutputFormat(flags.Format)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{
		pipeline.WithOutputFormat(format),
		pipeline.WithLanguages(cliutil.SplitList(flags.Languages)...),
		pipeline.WithConcurrency(flags.Concurrency),
		pipeline.WithSkipGeneratorErrors(flags.SkipErrors),
		pipeline.WithExternalRefs(flags.ExternalRefs),
		pipeline.WithLenientValidation(flags.Lenient),
		pipeline.WithStripExisting(flags.Strip),
		pipeline.WithLogger(NewLogger(streams.Err, flags.Verbose, flags.Quiet)),
	}
	if specPath == StdinFilePath {
		opts = append(opts, pipeline.WithSpecReader(streams.In, FormatSpecPath(specPath)))
	} else {
		opts = append(opts, pipeline.WithSpecPath(specPath))
	}
	if flags.Output != "" {
		opts = append(opts, pipeline.WithOutputPath(flags.Output))
	} else {
		opts = append(opts, pipeline.WithOutputWriter(streams.Out))
	}
	if flags.MediaType != "" {
		opts = append(opts, pipeline.WithSelector(example.PreferMediaType(cliutil.SplitList(flags.MediaType)...)))
	}

	startTime := time.Now()
	res, err := pipeline.Run(ctx, opts...)
	if err != nil {
		return fmt.Errorf("annotating %s: %w", FormatSpecPath(specPath), err)
	}
	totalTime := time.Since(startTime)

	if flags.Quiet {
		return nil
	}
	w := streams.Err
	cliutil.Writef(w, "OpenAPI Code Sample Annotator\n")
	cliutil.Writef(w, "=============================\n\n")
	OutputSpecHeader(w, specPath, res.Version)
	cliutil.Writef(w, "Operations: %d\n", res.OperationCount)
	cliutil.Writef(w, "Annotated: %d\n", res.AnnotatedOperations)
	cliutil.Writef(w, "Code Samples: %d\n", res.SnippetCount)
	if res.DeclinedCount > 0 {
		cliutil.Writef(w, "Declined: %d\n", res.DeclinedCount)
	}
	if res.SkippedCount > 0 {
		cliutil.Writef(w, "Skipped (errors): %d\n", res.SkippedCount)
	}
	cliutil.Writef(w, "Total Time: %v\n\n", totalTime)
	if res.Destination != "" {
		cliutil.Writef(w, "Output written to: %s (%s)\n", res.Destination, res.Format)
	}
	cliutil.Writef(w, "✓ Annotation completed successfully!\n")
	return nil
}
