package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oassamples/internal/cliutil"
	"github.com/erraggy/oassamples/pipeline"
)

// GitHub Action input variables.
const (
	EnvSpecFile  = "INPUT_SPEC_FILE"
	EnvOutFile   = "INPUT_OUT_FILE"
	EnvLanguages = "INPUT_LANGUAGES"
	EnvFormat    = "INPUT_FORMAT"
)

// HandleAction runs the annotate pipeline from GitHub Action inputs. Failures
// are reported as an ::error:: workflow command on streams.Out and returned.
func HandleAction(ctx context.Context, getenv func(string) string, streams Streams) error {
	err := runAction(ctx, getenv, streams)
	if err != nil {
		cliutil.Writef(streams.Out, "::error::%s\n", escapeWorkflowData(err.Error()))
	}
	return err
}

func runAction(ctx context.Context, getenv func(string) string, streams Streams) error {
	specFile := strings.TrimSpace(getenv(EnvSpecFile))
	outFile := strings.TrimSpace(getenv(EnvOutFile))
	if specFile == "" {
		return errors.New("input spec_file is required")
	}
	if outFile == "" {
		return errors.New("input out_file is required")
	}

	format, err := pipeline.ParseOutputFormat(getenv(EnvFormat))
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx,
		pipeline.WithSpecPath(specFile),
		pipeline.WithOutputPath(outFile),
		pipeline.WithOutputFormat(format),
		pipeline.WithLanguages(cliutil.SplitList(getenv(EnvLanguages))...),
		pipeline.WithLogger(NewLogger(streams.Err, false, false)),
	)
	if err != nil {
		return err
	}

	cliutil.Writef(streams.Out, "Wrote %d code samples for %d operations to %s\n",
		res.SnippetCount, res.AnnotatedOperations, res.Destination)
	return nil
}

// escapeWorkflowData escapes a workflow command message.
func escapeWorkflowData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

// ActionUsage describes the action command.
func ActionUsage() string {
	return fmt.Sprintf("Reads %s, %s, %s and optional %s from the environment.", EnvSpecFile, EnvOutFile, EnvLanguages, EnvFormat)
}
