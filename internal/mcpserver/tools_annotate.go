package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oassamples/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type annotateInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OAS document to annotate"`
	Languages  []string  `json:"languages,omitempty"   jsonschema:"Ordered language targets. Defaults to go, python, shell, java, kotlin, swift."`
	Format     string    `json:"format,omitempty"      jsonschema:"Output format: source, json, yaml, or overlay"`
	Output     string    `json:"output,omitempty"      jsonschema:"File path to write the result. If omitted the result is returned inline."`
	SkipErrors bool      `json:"skip_errors,omitempty" jsonschema:"Skip samples whose generation fails instead of aborting"`
	Strip      bool      `json:"strip,omitempty"       jsonschema:"Remove existing x-codeSamples from every operation before splicing"`
}

type annotatedOperation struct {
	Path      string   `json:"path"`
	Method    string   `json:"method"`
	Languages []string `json:"languages"`
}

type annotateOutput struct {
	Dialect    string               `json:"dialect"`
	Version    string               `json:"version"`
	Format     string               `json:"format"`
	Operations int                  `json:"operations"`
	Annotated  int                  `json:"annotated"`
	Snippets   int                  `json:"snippets"`
	Declined   int                  `json:"declined"`
	Skipped    int                  `json:"skipped,omitempty"`
	Samples    []annotatedOperation `json:"samples,omitempty"`
	WrittenTo  string               `json:"written_to,omitempty"`
	Document   string               `json:"document,omitempty"`
	Summary    string               `json:"summary"`
}

func handleAnnotate(ctx context.Context, _ *mcp.CallToolRequest, input annotateInput) (*mcp.CallToolResult, annotateOutput, error) {
	opts, err := input.Spec.pipelineOptions()
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	format, err := pipeline.ParseOutputFormat(input.Format)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	opts = append(opts,
		pipeline.WithOutputFormat(format),
		pipeline.WithLanguages(input.Languages...),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithSkipGeneratorErrors(input.SkipErrors),
		pipeline.WithStripExisting(input.Strip),
	)
	if input.Output != "" {
		opts = append(opts, pipeline.WithOutputPath(input.Output))
	}

	res, err := pipeline.Run(ctx, opts...)
	if err != nil {
		return errResult(err), annotateOutput{}, nil
	}

	output := annotateOutput{
		Dialect:    string(res.Dialect),
		Version:    res.Version,
		Format:     string(res.Format),
		Operations: res.OperationCount,
		Annotated:  res.AnnotatedOperations,
		Snippets:   res.SnippetCount,
		Declined:   res.DeclinedCount,
		Skipped:    res.SkippedCount,
	}

	output.Samples = makeSlice[annotatedOperation](res.Directory.Len())
	for _, entry := range res.Directory.Entries() {
		langs := make([]string, 0, len(entry.Snippets))
		for _, s := range entry.Snippets {
			langs = append(langs, s.Label)
		}
		output.Samples = append(output.Samples, annotatedOperation{Path: entry.Path, Method: entry.Method, Languages: langs})
	}

	if res.Destination != "" {
		output.WrittenTo = res.Destination
	} else {
		output.Document = string(res.Output)
	}

	output.Summary = fmt.Sprintf("%s across %s of %d.",
		formatCount(res.SnippetCount, "code sample"),
		formatCount(res.AnnotatedOperations, "operation"),
		res.OperationCount)
	if res.SkippedCount > 0 {
		output.Summary += " " + formatCount(res.SkippedCount, "failed sample") + " skipped."
	}

	return nil, output, nil
}
